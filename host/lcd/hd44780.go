// Package lcd drives an HD44780 compatible 16x2 character display in 4-bit
// mode through periph.io GPIO pins. It implements core.DisplayDriver so a
// Linux board can run the dispatcher in place of a microcontroller.
//
// The R/W line is expected to be tied to ground; the driver never reads the
// busy flag and waits out each instruction's execution time instead.
package lcd

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"lcdlink/core"
)

// Instruction set
const (
	cmdClear       = 0x01
	cmdEntryMode   = 0x04
	cmdDisplayCtl  = 0x08
	cmdFunctionSet = 0x20
	cmdSetCGRAM    = 0x40
	cmdSetDDRAM    = 0x80

	entryIncrement = 0x02
	displayOn      = 0x04
	function2Line  = 0x08
)

// DDRAM address of the first column of each row
var rowOffsets = [2]uint8{0x00, 0x40}

// Execution times from the datasheet, with margin
const (
	enablePulse = time.Microsecond
	execShort   = 50 * time.Microsecond
	execClear   = 2 * time.Millisecond
	powerOnWait = 50 * time.Millisecond
)

// Pins are the controller lines used in 4-bit mode. D holds D4-D7.
type Pins struct {
	RS gpio.PinOut
	E  gpio.PinOut
	D  [4]gpio.PinOut
}

// Dev is an initialized display
type Dev struct {
	pins  Pins
	sleep func(time.Duration)
	err   error
}

// New initializes the controller: 4-bit bus, two lines, 5x8 font, display
// on without cursor, cleared, left to right entry.
func New(pins Pins) (*Dev, error) {
	return newDev(pins, time.Sleep)
}

func newDev(pins Pins, sleep func(time.Duration)) (*Dev, error) {
	if pins.RS == nil || pins.E == nil {
		return nil, errors.New("lcd: RS and E pins are required")
	}
	for i, p := range pins.D {
		if p == nil {
			return nil, fmt.Errorf("lcd: data pin D%d is required", i+4)
		}
	}

	d := &Dev{pins: pins, sleep: sleep}
	d.init()
	if d.err != nil {
		return nil, d.err
	}
	return d, nil
}

func (d *Dev) init() {
	d.sleep(powerOnWait)
	d.out(d.pins.RS, gpio.Low)
	d.out(d.pins.E, gpio.Low)

	// Reset sequence into 8-bit mode, then switch to 4-bit
	d.writeNibble(0x03)
	d.sleep(5 * time.Millisecond)
	d.writeNibble(0x03)
	d.sleep(150 * time.Microsecond)
	d.writeNibble(0x03)
	d.sleep(execShort)
	d.writeNibble(0x02)
	d.sleep(execShort)

	d.command(cmdFunctionSet | function2Line)
	d.command(cmdDisplayCtl | displayOn)
	d.Clear()
	d.command(cmdEntryMode | entryIncrement)
}

// Err returns the first GPIO error seen. DisplayDriver methods cannot
// return errors, so the driver remembers it and stops touching the pins.
func (d *Dev) Err() error {
	return d.err
}

func (d *Dev) Clear() {
	d.command(cmdClear)
	d.sleep(execClear)
}

// SetCursor addresses DDRAM; rows outside 0-1 wrap
func (d *Dev) SetCursor(row, column uint8) {
	d.command(cmdSetDDRAM | (rowOffsets[core.DisplayRow(row)] + column))
}

func (d *Dev) Print(text []byte) {
	for _, b := range text {
		d.data(b)
	}
}

func (d *Dev) PrintGlyph(index uint8) {
	d.data(index)
}

// DefineGlyph writes the bitmap into CGRAM and returns to the home position
func (d *Dev) DefineGlyph(index uint8, bitmap [8]byte) {
	d.command(cmdSetCGRAM | core.CGRAMAddress(index))
	for _, row := range bitmap {
		d.data(row & 0x1f)
	}
	d.command(cmdSetDDRAM)
}

// Halt blanks the display
func (d *Dev) Halt() error {
	d.command(cmdDisplayCtl)
	return d.err
}

func (d *Dev) command(b byte) {
	d.out(d.pins.RS, gpio.Low)
	d.writeByte(b)
}

func (d *Dev) data(b byte) {
	d.out(d.pins.RS, gpio.High)
	d.writeByte(b)
}

func (d *Dev) writeByte(b byte) {
	d.writeNibble(b >> 4)
	d.writeNibble(b & 0x0f)
	d.sleep(execShort)
}

func (d *Dev) writeNibble(n byte) {
	for i, pin := range d.pins.D {
		d.out(pin, gpio.Level(n&(1<<uint(i)) != 0))
	}
	d.out(d.pins.E, gpio.High)
	d.sleep(enablePulse)
	d.out(d.pins.E, gpio.Low)
}

func (d *Dev) out(pin gpio.PinOut, l gpio.Level) {
	if d.err != nil {
		return
	}
	if err := pin.Out(l); err != nil {
		d.err = fmt.Errorf("lcd: %s: %w", pin, err)
	}
}
