package core

import "lcdlink/protocol"

// Visible geometry of the emulated display
const (
	ScreenRows    = 2
	ScreenColumns = 16

	// each HD44780 line holds 40 characters, only the first 16 are visible
	ddramLineLen = 40
)

// Screen emulates an HD44780 style 16x2 character display in memory.
// It implements DisplayDriver and is used by the host daemon and in tests.
//
// Writes past the end of a DDRAM line continue on the other line, as the
// controller does. Rows outside 0-1 and columns outside 0-39 wrap.
type Screen struct {
	ddram [ScreenRows][ddramLineLen]byte
	cgram [protocol.GlyphSlots][protocol.GlyphRows]byte
	row   int
	col   int
}

// NewScreen returns a blank screen with the cursor at the origin
func NewScreen() *Screen {
	s := &Screen{}
	s.Clear()
	return s
}

func (s *Screen) Clear() {
	for r := range s.ddram {
		for c := range s.ddram[r] {
			s.ddram[r][c] = ' '
		}
	}
	s.row, s.col = 0, 0
}

func (s *Screen) SetCursor(row, column uint8) {
	s.row = int(row) % ScreenRows
	s.col = int(column) % ddramLineLen
}

func (s *Screen) Print(text []byte) {
	for _, b := range text {
		s.put(b)
	}
}

func (s *Screen) PrintGlyph(index uint8) {
	s.put(index)
}

// DefineGlyph stores the low 5 bits of each row; slots repeat every 8 codes
func (s *Screen) DefineGlyph(index uint8, bitmap [8]byte) {
	slot := &s.cgram[index%protocol.GlyphSlots]
	for i, row := range bitmap {
		slot[i] = row & 0x1f
	}
}

func (s *Screen) put(b byte) {
	s.ddram[s.row][s.col] = b
	s.col++
	if s.col == ddramLineLen {
		s.col = 0
		s.row = (s.row + 1) % ScreenRows
	}
}

// Cursor returns the current write position
func (s *Screen) Cursor() (row, column int) {
	return s.row, s.col
}

// Line returns the raw visible bytes of a row
func (s *Screen) Line(row int) string {
	return string(s.ddram[row%ScreenRows][:ScreenColumns])
}

// Glyph returns the bitmap stored in a slot
func (s *Screen) Glyph(index uint8) [8]byte {
	return s.cgram[index%protocol.GlyphSlots]
}

// Render returns the visible rows as printable text.
// Glyph codes (0-15) show as '#', other non-ASCII codes as '?'.
func (s *Screen) Render() []string {
	lines := make([]string, ScreenRows)
	for r := range lines {
		buf := make([]byte, ScreenColumns)
		for c := range buf {
			buf[c] = printable(s.ddram[r][c])
		}
		lines[r] = string(buf)
	}
	return lines
}

// RenderGlyph draws a glyph slot as rows of '#' and '.'
func (s *Screen) RenderGlyph(index uint8) []string {
	bitmap := s.Glyph(index)
	rows := make([]string, len(bitmap))
	for i, bits := range bitmap {
		var row [5]byte
		for c := range row {
			row[c] = '.'
			if bits&(0x10>>uint(c)) != 0 {
				row[c] = '#'
			}
		}
		rows[i] = string(row[:])
	}
	return rows
}

func printable(b byte) byte {
	switch {
	case b < 16:
		return '#'
	case b < 0x20 || b >= 0x7f:
		return '?'
	}
	return b
}
