package lcd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"lcdlink/core"
)

var _ core.DisplayDriver = (*Dev)(nil)

type transfer struct {
	rs   bool
	data byte
}

// bus watches the pins and latches a nibble on each falling edge of E
type bus struct {
	rs, e  *busPin
	d      [4]*busPin
	nibble []transfer
	failOn *busPin
}

type busPin struct {
	*gpiotest.Pin
	bus *bus
}

func (p *busPin) Out(l gpio.Level) error {
	if p == p.bus.failOn {
		return errors.New("pin busy")
	}
	prev := p.Pin.Read()
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	if p == p.bus.e && prev == gpio.High && l == gpio.Low {
		var n byte
		for i, d := range p.bus.d {
			if d.Pin.Read() == gpio.High {
				n |= 1 << uint(i)
			}
		}
		p.bus.nibble = append(p.bus.nibble, transfer{rs: bool(p.bus.rs.Pin.Read()), data: n})
	}
	return nil
}

func newBus() *bus {
	b := &bus{}
	pin := func(name string) *busPin {
		return &busPin{Pin: &gpiotest.Pin{N: name}, bus: b}
	}
	b.rs, b.e = pin("RS"), pin("E")
	for i := range b.d {
		b.d[i] = pin("D")
	}
	return b
}

func (b *bus) pins() Pins {
	return Pins{RS: b.rs, E: b.e, D: [4]gpio.PinOut{b.d[0], b.d[1], b.d[2], b.d[3]}}
}

// bytes pairs up nibbles after the four reset nibbles
func (b *bus) bytes(t *testing.T) []transfer {
	t.Helper()
	require.GreaterOrEqual(t, len(b.nibble), 4)
	require.Equal(t, []byte{3, 3, 3, 2}, []byte{b.nibble[0].data, b.nibble[1].data, b.nibble[2].data, b.nibble[3].data})

	rest := b.nibble[4:]
	require.Zero(t, len(rest)%2)
	out := make([]transfer, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		require.Equal(t, rest[i].rs, rest[i+1].rs)
		out = append(out, transfer{rs: rest[i].rs, data: rest[i].data<<4 | rest[i+1].data})
	}
	return out
}

func noSleep(time.Duration) {}

func cmd(b byte) transfer  { return transfer{data: b} }
func data(b byte) transfer { return transfer{rs: true, data: b} }

func TestInitSequence(t *testing.T) {
	b := newBus()
	_, err := newDev(b.pins(), noSleep)
	require.NoError(t, err)

	require.Equal(t, []transfer{cmd(0x28), cmd(0x0c), cmd(0x01), cmd(0x06)}, b.bytes(t))
}

func TestDisplayOperations(t *testing.T) {
	b := newBus()
	d, err := newDev(b.pins(), noSleep)
	require.NoError(t, err)

	d.SetCursor(1, 4)
	d.Print([]byte("HI"))
	d.PrintGlyph(2)
	d.DefineGlyph(9, [8]byte{0xff, 0x11})
	d.Clear()
	d.SetCursor(0, 15)

	want := []transfer{
		cmd(0x28), cmd(0x0c), cmd(0x01), cmd(0x06),
		cmd(0xc4), data('H'), data('I'), data(2),
		cmd(0x48), data(0x1f), data(0x11), data(0), data(0), data(0), data(0), data(0), data(0), cmd(0x80),
		cmd(0x01), cmd(0x8f),
	}
	require.Equal(t, want, b.bytes(t))
	require.NoError(t, d.Err())
}

func TestSetCursorFoldsRows(t *testing.T) {
	b := newBus()
	d, err := newDev(b.pins(), noSleep)
	require.NoError(t, err)

	d.SetCursor(2, 0)
	d.SetCursor(3, 2)
	d.SetCursor(255, 15)

	require.Equal(t, []transfer{
		cmd(0x28), cmd(0x0c), cmd(0x01), cmd(0x06),
		cmd(0x80), cmd(0xc2), cmd(0xcf),
	}, b.bytes(t))
}

func TestNewRequiresPins(t *testing.T) {
	b := newBus()
	p := b.pins()
	p.D[2] = nil
	_, err := newDev(p, noSleep)
	require.EqualError(t, err, "lcd: data pin D6 is required")

	_, err = newDev(Pins{}, noSleep)
	require.Error(t, err)
}

func TestPinErrorIsSticky(t *testing.T) {
	b := newBus()
	d, err := newDev(b.pins(), noSleep)
	require.NoError(t, err)

	b.failOn = b.rs
	d.Print([]byte("x"))
	require.ErrorContains(t, d.Err(), "pin busy")

	b.failOn = nil
	before := len(b.nibble)
	d.Print([]byte("y"))
	require.Len(t, b.nibble, before)
}

func TestHaltBlanksDisplay(t *testing.T) {
	b := newBus()
	d, err := newDev(b.pins(), noSleep)
	require.NoError(t, err)

	require.NoError(t, d.Halt())
	require.Equal(t, cmd(0x08), b.bytes(t)[4])
}
