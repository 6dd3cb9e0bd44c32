// Package command implements the ordered flag surface of lcdctl:
// arguments are processed left to right in a single pass and each display
// flag issues exactly one packet.
package command

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"lcdlink/host/encoder"
	"lcdlink/host/serial"
)

// ErrNoPort is returned when a display flag appears before any port is known
var ErrNoPort = errors.New("device port has not been specified")

// OpenError reports a port that could not be opened
type OpenError struct {
	Port string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("could not open serial port %s: %v", e.Port, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Opener opens the transport for a device name
type Opener func(device string) (io.WriteCloser, error)

// OpenSerial opens device with the fixed link parameters
func OpenSerial(device string) (io.WriteCloser, error) {
	return serial.Open(serial.DefaultConfig(device))
}

// Options configures a Runner
type Options struct {
	// Opener defaults to OpenSerial
	Opener Opener

	// DefaultPort is opened on the first display flag when no --port was given
	DefaultPort string

	// Out receives the usage text; defaults to os.Stdout
	Out io.Writer

	Encoder encoder.Config
}

// Runner owns the transport for the lifetime of a process: it is opened
// once, on --port or lazily from DefaultPort, and reused until Close.
type Runner struct {
	opts     Options
	port     io.WriteCloser
	portName string
	enc      *encoder.Encoder
}

// NewRunner creates a runner with no open port
func NewRunner(opts Options) *Runner {
	if opts.Opener == nil {
		opts.Opener = OpenSerial
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Runner{opts: opts}
}

// Run processes args left to right. The first error aborts the remaining
// arguments. Flags missing their operands and unknown arguments are
// skipped. An empty argument list prints the usage text.
func (r *Runner) Run(args []string) error {
	if len(args) == 0 {
		PrintHelp(r.opts.Out)
		return nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--port" && i+1 < len(args):
			i++
			if err := r.Open(args[i]); err != nil {
				return err
			}

		case arg == "--clear":
			enc, err := r.encoder()
			if err != nil {
				return err
			}
			if err := enc.SendClear(); err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}

		case arg == "--cursor" && i+2 < len(args):
			enc, err := r.encoder()
			if err != nil {
				return err
			}
			row, col := Atoi(args[i+1]), Atoi(args[i+2])
			i += 2
			if err := enc.SendSetCursor(row, col); err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}

		case arg == "--message" && i+1 < len(args):
			enc, err := r.encoder()
			if err != nil {
				return err
			}
			i++
			if err := enc.SendPrint(args[i]); err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}

		case arg == "--glyph" && i+1 < len(args):
			enc, err := r.encoder()
			if err != nil {
				return err
			}
			i++
			if err := enc.SendGlyph(Atoi(args[i])); err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}

		case arg == "--createglyph" && i+2 < len(args):
			enc, err := r.encoder()
			if err != nil {
				return err
			}
			index, bitmap := Atoi(args[i+1]), args[i+2]
			i += 2
			if err := enc.SendCreateGlyph(index, bitmap); err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}

		case arg == "--help":
			PrintHelp(r.opts.Out)

		default:
			log.Warn().Str("arg", arg).Msg("ignoring argument")
		}
	}
	return nil
}

// Open opens the transport. If one is already open it is kept and
// device is ignored.
func (r *Runner) Open(device string) error {
	if r.port != nil {
		if device != r.portName {
			log.Warn().Str("open", r.portName).Str("requested", device).Msg("port already open, keeping it")
		}
		return nil
	}

	port, err := r.opts.Opener(device)
	if err != nil {
		return &OpenError{Port: device, Err: err}
	}

	log.Debug().Str("port", device).Msg("port opened")
	r.port = port
	r.portName = device
	r.enc = encoder.New(port, r.opts.Encoder)
	return nil
}

// IsOpen reports whether a transport has been opened
func (r *Runner) IsOpen() bool {
	return r.port != nil
}

// Port returns the name of the open port, if any
func (r *Runner) Port() string {
	return r.portName
}

// Close closes the transport if it was opened
func (r *Runner) Close() error {
	if r.port == nil {
		return nil
	}
	err := r.port.Close()
	r.port, r.enc, r.portName = nil, nil, ""
	return err
}

func (r *Runner) encoder() (*encoder.Encoder, error) {
	if r.enc != nil {
		return r.enc, nil
	}
	if r.opts.DefaultPort == "" {
		return nil, ErrNoPort
	}
	if err := r.Open(r.opts.DefaultPort); err != nil {
		return nil, err
	}
	return r.enc, nil
}

// Atoi parses a leading decimal integer the way C's atoi does: optional
// leading whitespace and sign, then digits up to the first non-digit.
// Anything unparsable yields 0.
func Atoi(s string) int {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if n > (math.MaxInt32-9)/10 {
			n = math.MaxInt32
			break
		}
		n = n*10 + int(s[i]-'0')
	}

	if negative {
		return -n
	}
	return n
}

// PrintHelp writes the usage text
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `
Usage:
  --port <port> - Specify the serial port used by the device
  --clear - Clears the display
  --cursor <row> <column> - Moves the cursor to a position (0...1, 0...15)
  --message <message> - Print a message (up to 16 characters)
  --glyph <index> - Print a special glyph (0...7)
  --createglyph <index> <data> - Replace a glyph (5x8 bitmap as 8 hex bytes)
  --help - Show this message

`)
}
