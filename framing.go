package serial

import gobug "go.bug.st/serial"

// Framing is fixed at 8 data bits, no parity and one stop bit.
// go.bug.st/serial never turns on RTS/CTS or XON/XOFF, so flow control stays off.
const (
	DataBits = 8
	Parity   = gobug.NoParity
	StopBits = gobug.OneStopBit
)

// modeFor builds the port mode for the given baud rate.
func modeFor(b BaudRate) *gobug.Mode {
	return &gobug.Mode{
		BaudRate: b.Int(),
		DataBits: DataBits,
		Parity:   Parity,
		StopBits: StopBits,
	}
}
