package serial

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Monitor copies everything a serial device sends to an io.Writer.
// A Monitor is owned by the goroutine calling Run; only Close may be
// called concurrently.
type Monitor struct {
	handle  portHandle
	cfg     Config
	log     zerolog.Logger
	metrics *Metrics

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Open validates cfg, opens cfg.PortName with the fixed 8N1 framing and
// applies the read timeout. Any failure is returned wrapped in ErrOpen or
// ErrConfigure; no handle is left open in that case.
func Open(cfg Config, log zerolog.Logger) (*Monitor, error) {
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("%w: invalid serial port configuration: %w", ErrConfigure, err)
	}

	h, err := openPort(cfg.PortName, modeFor(cfg.BaudRate))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, cfg.PortName, err)
	}

	if err = h.SetReadTimeout(cfg.ReadTimeout); err != nil {
		err = fmt.Errorf("%w: setting read timeout on %s: %w", ErrConfigure, cfg.PortName, err)
		if e := h.Close(); e != nil {
			err = errors.Join(err, e)
		}
		return nil, err
	}

	return newMonitor(h, cfg, log), nil
}

// newMonitor constructs a Monitor around an already configured handle.
func newMonitor(h portHandle, cfg Config, log zerolog.Logger) *Monitor {
	if cfg.ReadSize <= 0 {
		cfg.ReadSize = DefaultReadSize
	}
	m := &Monitor{
		handle:  h,
		cfg:     cfg,
		log:     log.With().Str("port", cfg.PortName).Logger(),
		metrics: &Metrics{},
	}
	m.metrics.Connected.Store(true)
	return m
}

// Metrics returns the live stream counters.
func (m *Monitor) Metrics() *Metrics {
	return m.metrics
}

type flusher interface {
	Flush() error
}

// Run reads from the port until a non-timeout error occurs or ctx is done.
// Every chunk read is written to out unmodified and flushed if out supports
// it. Reads that time out are retried immediately.
//
// On a read or output failure Run logs one error line, waits the configured
// grace delay and returns a *ReadError. On cancellation it returns ctx.Err(),
// and once the monitor is closed it returns ErrClosed.
func (m *Monitor) Run(ctx context.Context, out io.Writer) error {
	buf := make([]byte, m.cfg.ReadSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if m.closed.Load() {
			return ErrClosed
		}

		n, err := m.handle.Read(buf)
		if err != nil && m.closed.Load() {
			// Close interrupted the read
			return ErrClosed
		}
		m.metrics.recordRead(n, err)

		if n > 0 {
			if werr := m.emit(out, buf[:n]); werr != nil {
				m.metrics.WriteErrors.Inc()
				return m.fail(werr)
			}
		}

		if err != nil && !isTimeout(err) {
			return m.fail(err)
		}
	}
}

func (m *Monitor) emit(out io.Writer, p []byte) error {
	if _, err := out.Write(p); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if f, ok := out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	}
	return nil
}

func (m *Monitor) fail(err error) error {
	m.metrics.Connected.Store(false)
	m.log.Error().Err(err).Msg("stream ended, device disconnected?")
	if m.cfg.GraceDelay > 0 {
		sleep(m.cfg.GraceDelay)
	}
	return &ReadError{Port: m.cfg.PortName, Err: err}
}

// Close closes the underlying port. It is safe to call multiple times.
func (m *Monitor) Close() error {
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		m.metrics.Connected.Store(false)
		m.closeErr = m.handle.Close()
	})
	return m.closeErr
}
