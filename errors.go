package serial

import (
	"errors"
	"fmt"
)

var (
	ErrNoPorts         = errors.New("serial: no serial ports available")
	ErrInvalidPortName = errors.New("serial: port not found")
	ErrOpen            = errors.New("serial: open failed")
	ErrConfigure       = errors.New("serial: configure failed")
	ErrClosed          = errors.New("serial: monitor closed")
)

// ReadError is returned by Monitor.Run when the stream ended on a
// non-timeout I/O error, typically a disconnected device.
type ReadError struct {
	Port string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("serial: reading %s: %v", e.Port, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
