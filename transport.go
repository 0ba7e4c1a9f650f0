package serial

import (
	"errors"
	"os"
	"time"

	gobug "go.bug.st/serial"
)

// portHandle abstracts the subset of go.bug.st/serial.Port used by the monitor.
type portHandle interface {
	SetReadTimeout(timeout time.Duration) error
	Read([]byte) (int, error)
	Close() error
}

// allow tests to override external dependencies
var (
	openPort = func(name string, mode *gobug.Mode) (portHandle, error) { return gobug.Open(name, mode) }
	sleep    = time.Sleep
)

type timeoutError interface {
	Timeout() bool
}

// isTimeout reports whether err only means that no data arrived in time.
// go.bug.st/serial itself signals an expired read timeout as (0, nil).
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var te timeoutError
	return errors.As(err, &te) && te.Timeout()
}
