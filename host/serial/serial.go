// Package serial opens the host side of the display link.
package serial

import (
	"io"
	"time"

	"lcdlink/protocol"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush discards received but unread data and unsent output
	Flush() error
}

// Parity mirrors the line parity setting; the link only uses none
type Parity byte

const ParityNone Parity = 'N'

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Line parameters, applied once at open time
	Baud     int
	Size     byte
	StopBits byte
	Parity   Parity

	// Read timeout (0 = blocking)
	ReadTimeout time.Duration
}

// DefaultConfig returns the fixed link configuration: 9600 baud, 8N1
func DefaultConfig(device string) *Config {
	return &Config{
		Device:   device,
		Baud:     protocol.Baud,
		Size:     protocol.DataBits,
		StopBits: protocol.StopBits,
		Parity:   ParityNone,
	}
}
