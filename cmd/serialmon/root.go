package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	serial "github.com/Station-Manager/serialmon"
	"github.com/Station-Manager/serialmon/internal/logger"
	"github.com/Station-Manager/serialmon/internal/selector"
)

// env carries the process surfaces so tests can replace them.
type env struct {
	stdout io.Writer
	stderr io.Writer

	newChooser func() (selector.Chooser, error)
	listPorts  func() ([]serial.PortInfo, error)
	checkPort  func(string) error
	open       func(serial.Config, zerolog.Logger) (monitor, error)
	newLogger  func(logger.Config) (zerolog.Logger, io.Closer, error)
	listen     func(network, addr string) (net.Listener, error)
}

type monitor interface {
	Run(ctx context.Context, out io.Writer) error
	Metrics() *serial.Metrics
	Close() error
}

func defaultEnv() *env {
	return &env{
		stdout: os.Stdout,
		stderr: os.Stderr,
		newChooser: func() (selector.Chooser, error) {
			return selector.NewPromptChooser(os.Stdin, os.Stderr)
		},
		listPorts: serial.DetailedPorts,
		checkPort: serial.CheckPort,
		open: func(cfg serial.Config, log zerolog.Logger) (monitor, error) {
			return serial.Open(cfg, log)
		},
		newLogger: logger.New,
		listen:    net.Listen,
	}
}

type options struct {
	port        string
	baud        int
	logLevel    string
	logFile     string
	metricsAddr string
}

func newRootCommand(e *env) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "serialmon",
		Short: "Print the raw output of a serial device",
		Long: "serialmon lets you pick a serial port and baud rate, opens the port as 8N1\n" +
			"without flow control and copies everything it receives to stdout.\n" +
			"Menus and diagnostics are written to stderr.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return monitorPort(cmd.Context(), e, opts)
		},
	}
	cmd.SetOut(e.stderr)
	cmd.SetErr(e.stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.port, "port", "p", "", "serial port to open; skips the port menu")
	f.IntVarP(&opts.baud, "baud", "b", 0, "baud rate; skips the baud rate menu")
	f.StringVar(&opts.logLevel, "log-level", "info", "diagnostic log level (debug, info, warn, error)")
	f.StringVar(&opts.logFile, "log-file", "", "also write diagnostics to this rotated file")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "host:port to serve prometheus metrics on")

	cmd.AddCommand(newListCommand(e))
	return cmd
}

func monitorPort(ctx context.Context, e *env, opts options) error {
	log, closer, err := e.newLogger(logger.Config{Level: opts.logLevel, File: opts.logFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := selectConfig(e, opts)
	if err != nil {
		return err
	}

	mon, err := e.open(cfg, log)
	if err != nil {
		return err
	}
	defer mon.Close()

	log.Debug().Str("port", cfg.PortName).Stringer("baud", cfg.BaudRate).Msg("port open")

	if opts.metricsAddr != "" {
		ln, err := e.listen("tcp", opts.metricsAddr)
		if err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
		stop := serveMetrics(ln, mon.Metrics(), cfg.PortName, log)
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = mon.Run(ctx, e.stdout)
	log.Debug().Stringer("metrics", mon.Metrics()).Msg("stream finished")

	var rerr *serial.ReadError
	switch {
	case errors.As(err, &rerr):
		// already reported; the stream simply ends here
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	}
	return err
}

// selectConfig resolves the port and baud rate from flags, falling back to
// the interactive menus for whatever was not given.
func selectConfig(e *env, opts options) (serial.Config, error) {
	sel := &selector.Selector{ListPorts: e.listPorts, Out: e.stderr}
	if opts.port == "" || opts.baud == 0 {
		ch, err := e.newChooser()
		if err != nil {
			return serial.Config{}, err
		}
		sel.Chooser = ch
	}

	port := opts.port
	if port == "" {
		p, err := sel.ChoosePort()
		if err != nil {
			return serial.Config{}, err
		}
		port = p
	} else if err := e.checkPort(port); err != nil {
		return serial.Config{}, err
	}

	baud := serial.BaudRate(opts.baud)
	if baud == 0 {
		b, err := sel.ChooseBaud()
		if err != nil {
			return serial.Config{}, err
		}
		baud = b
	}

	cfg := serial.NewConfig(port, baud)
	if err := serial.ValidateConfig(&cfg); err != nil {
		return serial.Config{}, err
	}
	return cfg, nil
}

// metricsHandler serves the stream counters of m at /metrics.
func metricsHandler(m *serial.Metrics, port string) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(serial.NewCollector(m, port))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}

func serveMetrics(ln net.Listener, m *serial.Metrics, port string, log zerolog.Logger) (stop func()) {
	srv := &http.Server{Handler: metricsHandler(m, port), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Str("addr", ln.Addr().String()).Msg("metrics server stopped")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
