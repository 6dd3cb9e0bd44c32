package protocol

import "errors"

// PacketMax is the largest wire packet: a Print with a full row of text
const PacketMax = 2 + TextMax

// ErrBufferEmpty is returned by ReadByte when no data is queued.
var ErrBufferEmpty = errors.New("protocol: buffer empty")

// ScratchOutput implements a fixed-size scratch buffer for building packets
type ScratchOutput struct {
	buf [PacketMax]byte
	pos int
}

// NewScratchOutput creates a new ScratchOutput
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{pos: 0}
}

// Output appends data, dropping whatever does not fit
func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
}

// Packet appends the wire form of p
func (s *ScratchOutput) Packet(p Packet) {
	var tmp [PacketMax]byte
	s.Output(p.AppendTo(tmp[:0]))
}

// Result returns the accumulated output data
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset clears the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// FifoBuffer is a fixed-capacity byte queue between a transport and the
// dispatcher. It is not safe for concurrent use; callers guard it themselves.
type FifoBuffer struct {
	buf  []byte
	head int // index of the oldest byte
	n    int // bytes queued
}

// NewFifoBuffer creates a FifoBuffer holding up to capacity bytes
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{buf: make([]byte, capacity)}
}

// Write queues as much of data as fits and returns how much that was
func (f *FifoBuffer) Write(data []byte) int {
	if free := len(f.buf) - f.n; len(data) > free {
		data = data[:free]
	}
	for _, b := range data {
		f.buf[(f.head+f.n)%len(f.buf)] = b
		f.n++
	}
	return len(data)
}

// ReadByte pops one byte, mirroring machine.UART
func (f *FifoBuffer) ReadByte() (byte, error) {
	if f.n == 0 {
		return 0, ErrBufferEmpty
	}
	b := f.buf[f.head]
	f.head = (f.head + 1) % len(f.buf)
	f.n--
	return b, nil
}

// Available returns the number of queued bytes
func (f *FifoBuffer) Available() int {
	return f.n
}

// Buffered is Available under the name machine.UART uses
func (f *FifoBuffer) Buffered() int {
	return f.n
}

// IsEmpty reports whether nothing is queued
func (f *FifoBuffer) IsEmpty() bool {
	return f.n == 0
}
