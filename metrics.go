package serial

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

// Metrics tracks stream statistics for a Monitor.
type Metrics struct {
	ReadOperations atomic.Int64 // Total read attempts
	BytesRead      atomic.Int64 // Total bytes read
	ReadTimeouts   atomic.Int64 // Reads that returned no data in time
	ReadErrors     atomic.Int64 // Non-timeout read failures
	WriteErrors    atomic.Int64 // Failures writing to the output
	LastReadTime   atomic.Int64 // Unix nanoseconds of the last read that returned data
	Connected      atomic.Bool
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	ReadOperations int64
	BytesRead      int64
	ReadTimeouts   int64
	ReadErrors     int64
	WriteErrors    int64
	LastRead       time.Time
	Connected      bool
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		ReadOperations: m.ReadOperations.Load(),
		BytesRead:      m.BytesRead.Load(),
		ReadTimeouts:   m.ReadTimeouts.Load(),
		ReadErrors:     m.ReadErrors.Load(),
		WriteErrors:    m.WriteErrors.Load(),
		Connected:      m.Connected.Load(),
	}
	if ns := m.LastReadTime.Load(); ns > 0 {
		s.LastRead = time.Unix(0, ns)
	}
	return s
}

func (m *Metrics) String() string {
	s := m.Snapshot()
	return fmt.Sprintf("reads=%d bytes=%d timeouts=%d read_errors=%d write_errors=%d",
		s.ReadOperations, s.BytesRead, s.ReadTimeouts, s.ReadErrors, s.WriteErrors)
}

func (m *Metrics) recordRead(n int, err error) {
	m.ReadOperations.Inc()
	switch {
	case err == nil && n > 0:
		m.BytesRead.Add(int64(n))
		m.LastReadTime.Store(time.Now().UnixNano())
	case err == nil || isTimeout(err):
		m.ReadTimeouts.Inc()
	default:
		m.ReadErrors.Inc()
	}
}

// collector exports Metrics to prometheus.
type collector struct {
	m *Metrics

	reads     *prometheus.Desc
	bytes     *prometheus.Desc
	timeouts  *prometheus.Desc
	errors    *prometheus.Desc
	lastRead  *prometheus.Desc
	connected *prometheus.Desc
}

// NewCollector returns a prometheus.Collector reading from m. port is
// attached to every series as the "port" label.
func NewCollector(m *Metrics, port string) prometheus.Collector {
	constLabels := prometheus.Labels{"port": port}
	desc := func(name, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("serialmon", "", name), help, variable, constLabels)
	}
	return &collector{
		m:         m,
		reads:     desc("reads_total", "number of read calls issued to the serial port"),
		bytes:     desc("read_bytes_total", "number of bytes read from the serial port"),
		timeouts:  desc("read_timeouts_total", "number of reads that returned no data within the read timeout"),
		errors:    desc("errors_total", "number of fatal errors by operation", "op"),
		lastRead:  desc("last_read_timestamp_seconds", "last read that returned data as UNIX timestamp"),
		connected: desc("connected", "1 while the serial port is open"),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.reads
	ch <- c.bytes
	ch <- c.timeouts
	ch <- c.errors
	ch <- c.lastRead
	ch <- c.connected
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	s := c.m.Snapshot()
	ch <- prometheus.MustNewConstMetric(c.reads, prometheus.CounterValue, float64(s.ReadOperations))
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.CounterValue, float64(s.BytesRead))
	ch <- prometheus.MustNewConstMetric(c.timeouts, prometheus.CounterValue, float64(s.ReadTimeouts))
	ch <- prometheus.MustNewConstMetric(c.errors, prometheus.CounterValue, float64(s.ReadErrors), "read")
	ch <- prometheus.MustNewConstMetric(c.errors, prometheus.CounterValue, float64(s.WriteErrors), "write")
	var last float64
	if !s.LastRead.IsZero() {
		last = float64(s.LastRead.UnixNano()) / 1e9
	}
	ch <- prometheus.MustNewConstMetric(c.lastRead, prometheus.GaugeValue, last)
	var connected float64
	if s.Connected {
		connected = 1
	}
	ch <- prometheus.MustNewConstMetric(c.connected, prometheus.GaugeValue, connected)
}
