package protocol

// Packet is one self-contained protocol message.
type Packet interface {
	// Tag returns the discriminator byte
	Tag() Tag

	// AppendTo appends the wire form (tag and payload) to b
	AppendTo(b []byte) []byte
}

// Idle is the zero tag. The device skips it.
type Idle struct{}

// Clear erases the display and homes the cursor.
type Clear struct{}

// SetCursor moves the write position.
// Range checking is left to the display driver.
type SetCursor struct {
	Row    uint8
	Column uint8
}

// Print writes up to TextMax bytes at the cursor.
// Text is not null terminated; only Text[:Len] is meaningful.
type Print struct {
	Len  uint8
	Text [TextMax]byte
}

// PrintGlyph renders the character with the given code.
// Codes 0-7 address the user-definable glyph slots.
type PrintGlyph struct {
	Index uint8
}

// CreateGlyph redefines a glyph slot with an 8 row bitmap.
type CreateGlyph struct {
	Index  uint8
	Bitmap [GlyphRows]byte
}

func (Idle) Tag() Tag        { return TagIdle }
func (Clear) Tag() Tag       { return TagClear }
func (SetCursor) Tag() Tag   { return TagSetCursor }
func (Print) Tag() Tag       { return TagPrint }
func (PrintGlyph) Tag() Tag  { return TagPrintGlyph }
func (CreateGlyph) Tag() Tag { return TagCreateGlyph }

func (Idle) AppendTo(b []byte) []byte  { return append(b, byte(TagIdle)) }
func (Clear) AppendTo(b []byte) []byte { return append(b, byte(TagClear)) }

func (p SetCursor) AppendTo(b []byte) []byte {
	return append(b, byte(TagSetCursor), p.Row, p.Column)
}

// AppendTo never emits a length above TextMax, whatever Len holds
func (p Print) AppendTo(b []byte) []byte {
	text := p.Bytes()
	b = append(b, byte(TagPrint), uint8(len(text)))
	return append(b, text...)
}

func (p PrintGlyph) AppendTo(b []byte) []byte {
	return append(b, byte(TagPrintGlyph), p.Index)
}

func (p CreateGlyph) AppendTo(b []byte) []byte {
	b = append(b, byte(TagCreateGlyph), p.Index)
	return append(b, p.Bitmap[:]...)
}

// NewPrint builds a Print packet, truncating msg to TextMax bytes.
func NewPrint(msg string) Print {
	var p Print
	p.Len = uint8(copy(p.Text[:], msg))
	return p
}

// Bytes returns the meaningful part of the text.
func (p Print) Bytes() []byte {
	n := int(p.Len)
	if n > TextMax {
		n = TextMax
	}
	return p.Text[:n]
}

func (p Print) String() string {
	return string(p.Bytes())
}

// Header returns the tag and length bytes that precede the text on the wire.
func (p Print) Header() []byte {
	return []byte{byte(TagPrint), uint8(len(p.Bytes()))}
}

// Marshal returns the wire form of p.
func Marshal(p Packet) []byte {
	return p.AppendTo(make([]byte, 0, 2+TextMax))
}
