package core

// DisplayDriver is the abstract character display interface that the
// dispatcher drives. Platform-specific implementations handle the actual
// controller. Range checking of rows, columns and glyph codes is entirely
// up to the implementation.
type DisplayDriver interface {
	// Clear erases all content and homes the write position
	Clear()

	// SetCursor moves the write position
	SetCursor(row, column uint8)

	// Print writes text at the write position
	Print(text []byte)

	// PrintGlyph writes the character with the given code
	PrintGlyph(index uint8)

	// DefineGlyph loads an 8 row bitmap into a glyph slot
	DefineGlyph(index uint8, bitmap [8]byte)
}

// ByteSource is the receive side of the transport.
// TinyGo's *machine.UART satisfies it directly.
type ByteSource interface {
	// Buffered returns the number of bytes ready to be read
	Buffered() int

	// ReadByte returns the next byte; it is only called after Buffered
	// reported data, so an error is treated as a transport failure
	ReadByte() (byte, error)
}
