package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitGlobalFlags(t *testing.T) {
	g, rest := splitGlobalFlags([]string{
		"--port", "COM3", "--config", "lcd.toml", "--clear", "--log-level", "debug", "--message", "HI",
	})
	require.Equal(t, "lcd.toml", g.configPath)
	require.Equal(t, "debug", g.logLevel)
	require.Equal(t, []string{"--port", "COM3", "--clear", "--message", "HI"}, rest)

	// a trailing --config without a value is left for the runner to skip
	g, rest = splitGlobalFlags([]string{"--clear", "--config"})
	require.Empty(t, g.configPath)
	require.Equal(t, []string{"--clear", "--config"}, rest)
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Empty(t, cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestRootKeepsSubcommandNamesAsOperands(t *testing.T) {
	for _, word := range []string{"version", "shell", "bridge", "help"} {
		args := []string{"--port", "COM3", "--clear", "--message", word}
		root := newRootCmd(args)

		cmd, rest, err := root.Find(args)
		require.NoError(t, err)
		require.Same(t, root, cmd, "message %q", word)
		require.Equal(t, args, rest)
	}
}

func TestRootRoutesLeadingSubcommand(t *testing.T) {
	for _, name := range []string{"version", "shell", "bridge"} {
		root := newRootCmd([]string{name})

		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, cmd.Name())
	}
}

func TestRootWithoutArgs(t *testing.T) {
	root := newRootCmd(nil)
	require.False(t, root.HasSubCommands())
}
