package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"lcdlink/core"
	"lcdlink/host/config"
	"lcdlink/protocol"
)

func TestDrawScreen(t *testing.T) {
	s := core.NewScreen()
	s.Print([]byte("HELLO"))

	var out bytes.Buffer
	drawScreen(&out, s, protocol.NewPrint("HELLO"))

	require.Equal(t, "+----------------+\n"+
		"|HELLO           |\n"+
		"|                |\n"+
		"+----------------+ cursor 0,5\n", out.String())
}

func TestDrawScreenShowsNewGlyph(t *testing.T) {
	cg := protocol.CreateGlyph{Index: 9, Bitmap: [8]byte{0x1f, 0x11, 0x11, 0x11, 0x11, 0x11, 0x1f}}
	s := core.NewScreen()
	s.DefineGlyph(cg.Index, cg.Bitmap)

	var out bytes.Buffer
	drawScreen(&out, s, cg)

	require.Contains(t, out.String(), "glyph 1\n  #####\n  #...#\n")
	require.Contains(t, out.String(), "  .....\n+----------------+\n")
}

func TestOpenDisplayScreen(t *testing.T) {
	cfg := config.Default()
	display, render, halt, err := openDisplay(cfg)
	require.NoError(t, err)
	require.IsType(t, &core.Screen{}, display)
	require.NotNil(t, render)
	require.NotPanics(t, halt)
}
