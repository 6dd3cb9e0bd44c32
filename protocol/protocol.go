// Package protocol implements the display link wire format shared by the
// host encoder and the device dispatcher.
//
// Every packet is a tag byte followed by a payload whose size the tag alone
// determines. Print is the only variable-length packet: its length byte
// follows the tag. There is no framing, no checksum and no acknowledgement.
package protocol

// Version represents the lcdlink protocol version
const Version = "1.0.0"

// Tag selects the packet variant.
type Tag uint8

// Packet tags as sent on the wire
const (
	TagIdle        Tag = 0 // no-op filler, ignored by the device
	TagClear       Tag = 1
	TagSetCursor   Tag = 2
	TagPrint       Tag = 3
	TagPrintGlyph  Tag = 4
	TagCreateGlyph Tag = 5
)

// Protocol constants
const (
	TextMax       = 16 // Maximum Print payload (one display row)
	GlyphSlots    = 8  // User-definable glyph slots
	GlyphMaxIndex = GlyphSlots - 1
	GlyphRows     = 8 // Bitmap rows per glyph, 5 bits used per row

	// Serial line parameters, applied once when the port is opened
	Baud     = 9600
	DataBits = 8
	StopBits = 1
)

// PayloadLen returns the fixed payload size following the tag.
// For TagPrint it returns 1, the length byte; the text follows it.
// ok is false for tags the device does not understand.
func (t Tag) PayloadLen() (n int, ok bool) {
	switch t {
	case TagIdle, TagClear:
		return 0, true
	case TagSetCursor:
		return 2, true
	case TagPrint:
		return 1, true
	case TagPrintGlyph:
		return 1, true
	case TagCreateGlyph:
		return 1 + GlyphRows, true
	}
	return 0, false
}

func (t Tag) String() string {
	switch t {
	case TagIdle:
		return "idle"
	case TagClear:
		return "clear"
	case TagSetCursor:
		return "set_cursor"
	case TagPrint:
		return "print"
	case TagPrintGlyph:
		return "print_glyph"
	case TagCreateGlyph:
		return "create_glyph"
	}
	return "unknown(" + itoa(int(t)) + ")"
}

// itoa converts an int to a string without fmt, the device build stays small
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	negative := n < 0
	if negative {
		n = -n
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if negative {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
