//go:build rp2040 || rp2350

package main

import (
	"machine"

	"tinygo.org/x/drivers/hd44780"

	"lcdlink/core"
)

// lcdPins is the 4-bit HD44780 hookup
type lcdPins struct {
	RS, E, RW machine.Pin
	D         [4]machine.Pin // D4-D7
}

var defaultPins = lcdPins{
	RS: machine.GP16,
	E:  machine.GP17,
	RW: machine.NoPin,
	D:  [4]machine.Pin{machine.GP18, machine.GP19, machine.GP20, machine.GP21},
}

// lcdDisplay adapts the hd44780 driver to core.DisplayDriver
type lcdDisplay struct {
	dev hd44780.Device
}

var _ core.DisplayDriver = (*lcdDisplay)(nil)

// NewDisplay configures a 16x2 display on pins
func NewDisplay(pins lcdPins) (*lcdDisplay, error) {
	dev, err := hd44780.NewGPIO4Bit(pins.D[:], pins.E, pins.RS, pins.RW)
	if err != nil {
		return nil, err
	}
	if err := dev.Configure(hd44780.Config{Width: 16, Height: 2}); err != nil {
		return nil, err
	}
	return &lcdDisplay{dev: dev}, nil
}

// Clear also homes the driver's own cursor, which ClearDisplay leaves alone
func (l *lcdDisplay) Clear() {
	l.dev.ClearDisplay()
	l.dev.SetCursor(0, 0)
}

// SetCursor folds the row onto the two lines; the driver indexes its row
// table with it unchecked
func (l *lcdDisplay) SetCursor(row, column uint8) {
	l.dev.SetCursor(column, core.DisplayRow(row))
}

func (l *lcdDisplay) Print(text []byte) {
	l.dev.Write(text)
	l.dev.Display()
}

// PrintGlyph writes the character code as is; codes above 7 are ordinary
// characters
func (l *lcdDisplay) PrintGlyph(index uint8) {
	l.dev.Write([]byte{index})
	l.dev.Display()
}

// DefineGlyph takes a CGRAM address, not a slot number
func (l *lcdDisplay) DefineGlyph(index uint8, bitmap [8]byte) {
	l.dev.CreateCharacter(core.CGRAMAddress(index), bitmap[:])
}
