package protocol

import (
	"errors"
	"io"
)

// ErrShortPacket is returned when the stream ends inside a packet.
var ErrShortPacket = errors.New("protocol: stream ended inside a packet")

// UnknownTagError reports a tag byte that selects no packet variant.
// Only the tag byte has been consumed when it is returned.
type UnknownTagError struct {
	Tag byte
}

func (e *UnknownTagError) Error() string {
	return "protocol: unknown tag " + itoa(int(e.Tag))
}

// ReadPacket reads exactly one packet from r.
//
// A Print length above TextMax is clamped before the text is read, so any
// surplus bytes stay in the stream and are interpreted as the next tag.
func ReadPacket(r io.ByteReader) (Packet, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch tag := Tag(b); tag {
	case TagIdle:
		return Idle{}, nil

	case TagClear:
		return Clear{}, nil

	case TagSetCursor:
		var p SetCursor
		if p.Row, err = readPayload(r); err != nil {
			return nil, err
		}
		if p.Column, err = readPayload(r); err != nil {
			return nil, err
		}
		return p, nil

	case TagPrint:
		var p Print
		if p.Len, err = readPayload(r); err != nil {
			return nil, err
		}
		if p.Len > TextMax {
			p.Len = TextMax
		}
		for i := 0; i < int(p.Len); i++ {
			if p.Text[i], err = readPayload(r); err != nil {
				return nil, err
			}
		}
		return p, nil

	case TagPrintGlyph:
		var p PrintGlyph
		if p.Index, err = readPayload(r); err != nil {
			return nil, err
		}
		return p, nil

	case TagCreateGlyph:
		var p CreateGlyph
		if p.Index, err = readPayload(r); err != nil {
			return nil, err
		}
		for i := range p.Bitmap {
			if p.Bitmap[i], err = readPayload(r); err != nil {
				return nil, err
			}
		}
		return p, nil

	default:
		return nil, &UnknownTagError{Tag: b}
	}
}

func readPayload(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, ErrShortPacket
	}
	return b, err
}
