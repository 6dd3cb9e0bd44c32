package core

import (
	"fmt"
	"strings"

	"lcdlink/protocol"
)

// recordingDisplay is a test DisplayDriver that records every call
type recordingDisplay struct {
	calls []string
}

func (d *recordingDisplay) Clear() {
	d.calls = append(d.calls, "clear()")
}

func (d *recordingDisplay) SetCursor(row, column uint8) {
	d.calls = append(d.calls, fmt.Sprintf("set_cursor(%d,%d)", row, column))
}

func (d *recordingDisplay) Print(text []byte) {
	d.calls = append(d.calls, fmt.Sprintf("print(%q)", text))
}

func (d *recordingDisplay) PrintGlyph(index uint8) {
	d.calls = append(d.calls, fmt.Sprintf("print_glyph(%d)", index))
}

func (d *recordingDisplay) DefineGlyph(index uint8, bitmap [8]byte) {
	d.calls = append(d.calls, fmt.Sprintf("define_glyph(%d,% x)", index, bitmap[:]))
}

func (d *recordingDisplay) String() string {
	return strings.Join(d.calls, " ")
}

// trickleSource releases one pending byte into its FIFO on every yield,
// simulating a slow serial line.
type trickleSource struct {
	*protocol.FifoBuffer
	pending []byte
	yields  int
}

func newTrickleSource(data ...byte) *trickleSource {
	return &trickleSource{FifoBuffer: protocol.NewFifoBuffer(64), pending: data}
}

func (s *trickleSource) yield() {
	s.yields++
	if len(s.pending) > 0 {
		s.Write(s.pending[:1])
		s.pending = s.pending[1:]
	}
}

// sourceOf returns a FIFO preloaded with data
func sourceOf(data ...byte) *protocol.FifoBuffer {
	fifo := protocol.NewFifoBuffer(256)
	fifo.Write(data)
	return fifo
}
