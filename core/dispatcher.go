package core

import (
	"context"
	"errors"
	"runtime"

	"lcdlink/protocol"
)

// Options tunes a Dispatcher. The zero value is usable.
type Options struct {
	// Registry maps tags to handlers; nil selects NewDisplayRegistry()
	Registry *CommandRegistry

	// Yield is called while polling for bytes; nil selects runtime.Gosched
	Yield func()

	// OnPacket is called after each non-idle packet has been executed
	OnPacket func(p protocol.Packet)

	// OnDecodeError is called after an unknown tag has been reported on the display
	OnDecodeError func(tag byte)
}

// Stats counts what the dispatcher has seen
type Stats struct {
	Packets       uint32 // packets executed, idle excluded
	Idle          uint32 // idle bytes skipped
	DecodeErrors  uint32 // unknown tags
	HandlerErrors uint32 // handlers that returned an error
}

// Dispatcher reads packets from a byte source and executes them on a
// display, one at a time, each to completion before the next tag is read.
//
// There is a single state, awaiting a tag. Once a tag has been read the
// dispatcher blocks until the whole payload has arrived; there is no
// timeout, so a transport that stalls mid-packet stalls the dispatcher.
type Dispatcher struct {
	src      ByteSource
	display  DisplayDriver
	registry *CommandRegistry
	reader   blockingReader
	stats    Stats

	onPacket      func(p protocol.Packet)
	onDecodeError func(tag byte)
}

// NewDispatcher creates a dispatcher reading from src and driving display
func NewDispatcher(src ByteSource, display DisplayDriver, opts Options) *Dispatcher {
	if opts.Registry == nil {
		opts.Registry = NewDisplayRegistry()
	}
	if opts.Yield == nil {
		opts.Yield = runtime.Gosched
	}
	return &Dispatcher{
		src:           src,
		display:       display,
		registry:      opts.Registry,
		reader:        blockingReader{src: src, yield: opts.Yield},
		onPacket:      opts.OnPacket,
		onDecodeError: opts.OnDecodeError,
	}
}

// Run dispatches packets until ctx is done or the transport fails.
// ctx is only checked while awaiting a tag, never inside a packet.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		handled, err := d.Step()
		if err != nil {
			return err
		}
		if !handled {
			d.reader.yield()
		}
	}
}

// Step processes one packet if a byte is available.
// It reports whether a tag was consumed.
func (d *Dispatcher) Step() (bool, error) {
	if d.src.Buffered() == 0 {
		return false, nil
	}
	return true, d.process()
}

// Stats returns a copy of the counters
func (d *Dispatcher) Stats() Stats {
	return d.stats
}

func (d *Dispatcher) process() error {
	p, err := protocol.ReadPacket(&d.reader)
	if err != nil {
		var tagErr *protocol.UnknownTagError
		if errors.As(err, &tagErr) {
			d.reportDecodeError(tagErr.Tag)
			return nil
		}
		return err
	}

	if p.Tag() == protocol.TagIdle {
		d.stats.Idle++
		return nil
	}

	if err := d.registry.Dispatch(p, d.display); err != nil {
		var tagErr *protocol.UnknownTagError
		if errors.As(err, &tagErr) {
			d.reportDecodeError(tagErr.Tag)
			return nil
		}
		// Handler error - count but keep the loop alive
		d.stats.HandlerErrors++
		return nil
	}

	d.stats.Packets++
	if d.onPacket != nil {
		d.onPacket(p)
	}
	return nil
}

// reportDecodeError overwrites the display with the offending tag value
func (d *Dispatcher) reportDecodeError(tag byte) {
	d.stats.DecodeErrors++
	d.display.Clear()
	d.display.Print(readErrorMessage(tag))
	if d.onDecodeError != nil {
		d.onDecodeError(tag)
	}
}

// blockingReader turns a polled ByteSource into an io.ByteReader that
// waits for each byte.
type blockingReader struct {
	src   ByteSource
	yield func()
}

func (r *blockingReader) ReadByte() (byte, error) {
	for r.src.Buffered() == 0 {
		r.yield()
	}
	return r.src.ReadByte()
}
