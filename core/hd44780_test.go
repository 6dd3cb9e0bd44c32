package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCGRAMAddress(t *testing.T) {
	testCases := []struct {
		slot uint8
		addr uint8
	}{
		{0, 0x00},
		{1, 0x08},
		{2, 0x10},
		{7, 0x38},
		{8, 0x00},
		{9, 0x08},
		{255, 0x38},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.addr, CGRAMAddress(tc.slot), "slot %d", tc.slot)
	}
}

func TestDisplayRow(t *testing.T) {
	for row, want := range map[uint8]uint8{0: 0, 1: 1, 2: 0, 3: 1, 4: 0, 255: 1} {
		require.Equal(t, want, DisplayRow(row), "row %d", row)
	}

	// folded rows land where the emulated screen puts them
	for _, row := range []uint8{0, 1, 4, 7, 200} {
		s := NewScreen()
		s.SetCursor(row, 0)
		got, _ := s.Cursor()
		require.Equal(t, int(DisplayRow(row)), got, "row %d", row)
	}
}
