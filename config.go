package serial

import "time"

const (
	// DefaultReadTimeout bounds how long a single Read may block.
	DefaultReadTimeout = 100 * time.Millisecond

	// DefaultReadSize is the size of the read buffer.
	DefaultReadSize = 64

	// DefaultGraceDelay is slept once after a fatal read error before the
	// monitor gives up.
	DefaultGraceDelay = 100 * time.Millisecond
)

// Config holds configuration for monitoring a serial port.
type Config struct {
	// PortName is the path to the serial device, e.g. /dev/ttyUSB0 or COM3.
	PortName string `validate:"required,excludes=.."`

	BaudRate BaudRate `validate:"required,baudrate"`

	// ReadTimeout is the underlying port read timeout.
	ReadTimeout time.Duration `validate:"gt=0"`

	ReadSize   int           `validate:"gt=0,lte=65536"`
	GraceDelay time.Duration `validate:"gte=0"`
}

// NewConfig returns a Config for portName at baud with the fixed timing defaults.
func NewConfig(portName string, baud BaudRate) Config {
	return Config{
		PortName:    portName,
		BaudRate:    baud,
		ReadTimeout: DefaultReadTimeout,
		ReadSize:    DefaultReadSize,
		GraceDelay:  DefaultGraceDelay,
	}
}
