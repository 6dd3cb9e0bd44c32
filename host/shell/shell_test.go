package shell

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"lcdlink/host/command"
	"lcdlink/host/encoder"
)

type nopPort struct{ bytes.Buffer }

func (nopPort) Close() error { return nil }

func TestPromptFollowsPort(t *testing.T) {
	r := command.NewRunner(command.Options{
		Opener:  func(string) (io.WriteCloser, error) { return &nopPort{}, nil },
		Out:     io.Discard,
		Encoder: encoder.Config{},
	})
	require.Equal(t, "[none] > ", Prompt(r))

	require.NoError(t, r.Open("/dev/ttyACM0"))
	require.Equal(t, "[/dev/ttyACM0] > ", Prompt(r))
}
