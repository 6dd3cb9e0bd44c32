//go:build rp2040 || rp2350

package main

import (
	"context"
	"machine"
	"time"

	"lcdlink/core"
	"lcdlink/protocol"
)

// pollDelay is how long the dispatcher sleeps while waiting for bytes
const pollDelay = 10 * time.Microsecond

var (
	led = machine.LED

	// Debug counters
	packetsHandled uint32
	decodeErrors   uint32
)

func main() {
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()

	uart := InitUART()

	display, err := NewDisplay(defaultPins)
	if err != nil {
		// No display attached, nothing useful to do
		for {
			led.Set(!led.Get())
			time.Sleep(200 * time.Millisecond)
		}
	}

	core.ShowBanner(display, core.DefaultBannerText)
	led.Low()

	d := core.NewDispatcher(uart, display, core.Options{
		Yield: func() { time.Sleep(pollDelay) },
		OnPacket: func(protocol.Packet) {
			packetsHandled++
			led.Set(packetsHandled&1 == 1)
		},
		OnDecodeError: func(byte) {
			decodeErrors++
		},
	})

	// The UART never reports an error, so Run only returns on a
	// cancelled context, which never happens here
	for {
		d.Run(context.Background())
	}
}
