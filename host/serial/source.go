package serial

import (
	"io"
	"sync"
	"time"

	"lcdlink/protocol"
)

// DefaultSourceCapacity is the receive FIFO size used by NewSource
const DefaultSourceCapacity = 256

// pollInterval bounds how long Yield sleeps when no data arrives
const pollInterval = 5 * time.Millisecond

// Source adapts a blocking reader (a serial port) to the polled
// Buffered/ReadByte interface the dispatcher consumes. A reader goroutine
// moves incoming bytes into a FIFO; nothing is dropped when the FIFO is
// full, the reader waits instead.
//
// Once the reader fails, Buffered reports one byte so that the next
// ReadByte surfaces the error to the caller.
type Source struct {
	mu    sync.Mutex
	fifo  *protocol.FifoBuffer
	err   error
	ready chan struct{}
	done  chan struct{}
}

// NewSource starts reading from r in the background
func NewSource(r io.Reader, capacity int) *Source {
	if capacity <= 0 {
		capacity = DefaultSourceCapacity
	}
	s := &Source{
		fifo:  protocol.NewFifoBuffer(capacity),
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go s.readerLoop(r)
	return s
}

func (s *Source) readerLoop(r io.Reader) {
	defer close(s.done)

	var buf [64]byte
	for {
		n, err := r.Read(buf[:])
		data := buf[:n]
		for len(data) > 0 {
			s.mu.Lock()
			written := s.fifo.Write(data)
			s.mu.Unlock()
			data = data[written:]
			s.signal()
			if len(data) > 0 {
				// FIFO full - wait for the consumer
				time.Sleep(pollInterval)
			}
		}
		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			s.signal()
			return
		}
	}
}

func (s *Source) signal() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Buffered returns the number of bytes ready to be read
func (s *Source) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.fifo.Available()
	if n == 0 && s.err != nil {
		return 1
	}
	return n
}

// ReadByte pops the next byte, or returns the reader's error once drained
func (s *Source) ReadByte() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fifo.IsEmpty() && s.err != nil {
		return 0, s.err
	}
	return s.fifo.ReadByte()
}

// Yield waits briefly for more data; pass it as the dispatcher's Yield
func (s *Source) Yield() {
	select {
	case <-s.ready:
	case <-time.After(pollInterval):
	}
}

// Done is closed once the reader goroutine has exited
func (s *Source) Done() <-chan struct{} {
	return s.done
}
