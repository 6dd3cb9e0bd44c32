package core

import "lcdlink/protocol"

// HD44780 addressing shared by the display drivers

// CGRAMAddress returns the CGRAM address of the first bitmap row of a
// glyph slot. Slots repeat every 8 codes.
func CGRAMAddress(slot uint8) uint8 {
	return (slot & protocol.GlyphMaxIndex) * protocol.GlyphRows
}

// DisplayRow folds any row onto one of the two controller lines,
// the same way Screen does
func DisplayRow(row uint8) uint8 {
	return row % ScreenRows
}
