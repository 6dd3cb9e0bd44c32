//go:build rp2040 || rp2350

package main

import (
	"machine"

	"lcdlink/protocol"
)

// UART0 on GP0 (TX) and GP1 (RX)
var (
	uartTX = machine.UART0_TX_PIN
	uartRX = machine.UART0_RX_PIN
)

// InitUART configures UART0 for the display link: 9600 baud, 8N1
func InitUART() *machine.UART {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: protocol.Baud,
		TX:       uartTX,
		RX:       uartRX,
	})
	uart.SetFormat(protocol.DataBits, protocol.StopBits, machine.ParityNone)
	return uart
}
