// Package encoder turns display commands into packets and writes them to
// the serial link.
//
// The link has no acknowledgement, so every send is followed by a fixed
// settle delay that keeps the device's receive buffer and LCD controller
// ahead of the host.
package encoder

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"lcdlink/protocol"
)

// DefaultSettleDelay is the pause after every packet
const DefaultSettleDelay = 50 * time.Millisecond

// ErrNotOpen is returned when a command is sent without a transport
var ErrNotOpen = errors.New("encoder: transport not open")

// Config holds encoder settings
type Config struct {
	// SettleDelay is slept after each packet
	SettleDelay time.Duration
}

// DefaultConfig returns the settings the device firmware expects
func DefaultConfig() Config {
	return Config{SettleDelay: DefaultSettleDelay}
}

// Encoder writes one packet per command to a transport it does not own.
// Commands are strictly sequential; it is not safe for concurrent use.
type Encoder struct {
	w       io.Writer
	cfg     Config
	scratch *protocol.ScratchOutput
	sleep   func(time.Duration)
}

// New creates an encoder writing to w. A nil w yields an encoder whose
// sends all fail with ErrNotOpen.
func New(w io.Writer, cfg Config) *Encoder {
	return &Encoder{
		w:       w,
		cfg:     cfg,
		scratch: protocol.NewScratchOutput(),
		sleep:   time.Sleep,
	}
}

// SendClear erases the display
func (e *Encoder) SendClear() error {
	return e.Send(protocol.Clear{})
}

// SendSetCursor moves the write position. Values are truncated to a
// byte and not range checked; the device's display driver decides.
func (e *Encoder) SendSetCursor(row, column int) error {
	return e.Send(protocol.SetCursor{Row: uint8(row), Column: uint8(column)})
}

// SendPrint writes message at the cursor, truncated to 16 bytes
func (e *Encoder) SendPrint(message string) error {
	return e.Send(protocol.NewPrint(message))
}

// SendGlyph prints the character with the given code; every byte value is forwarded
func (e *Encoder) SendGlyph(index int) error {
	return e.Send(protocol.PrintGlyph{Index: uint8(index)})
}

// SendCreateGlyph redefines a glyph slot from a string of hex bytes.
// index saturates into 0-7: anything above 7 selects slot 7 and negative
// values select slot 0. Malformed tokens are sent as zero rows and logged.
func (e *Encoder) SendCreateGlyph(index int, bitmap string) error {
	slot := glyphSlot(index)

	rows, malformed := ParseBitmap(bitmap)
	if len(malformed) > 0 {
		log.Warn().Strs("tokens", malformed).Uint8("glyph", slot).Msg("malformed hex tokens sent as 00")
	}

	return e.Send(protocol.CreateGlyph{Index: slot, Bitmap: rows})
}

func glyphSlot(index int) uint8 {
	switch {
	case index > protocol.GlyphMaxIndex:
		return protocol.GlyphMaxIndex
	case index < 0:
		return 0
	}
	return uint8(index)
}

// Send writes p and waits for the settle delay.
// Print is written as a header and a payload, two writes for one packet.
func (e *Encoder) Send(p protocol.Packet) error {
	if e.w == nil {
		return ErrNotOpen
	}

	e.scratch.Reset()
	e.scratch.Packet(p)
	wire := e.scratch.Result()

	if pr, ok := p.(protocol.Print); ok {
		header := len(pr.Header())
		if err := e.write(wire[:header]); err != nil {
			return err
		}
		if err := e.write(wire[header:]); err != nil {
			return err
		}
	} else {
		if err := e.write(wire); err != nil {
			return err
		}
	}

	log.Trace().Str("packet", p.Tag().String()).Hex("wire", wire).Msg("sent")

	if e.cfg.SettleDelay > 0 {
		e.sleep(e.cfg.SettleDelay)
	}
	return nil
}

func (e *Encoder) write(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := e.w.Write(b); err != nil {
		return fmt.Errorf("failed to write %d bytes: %w", len(b), err)
	}
	return nil
}
