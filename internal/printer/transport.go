// Package printer owns the TCP path to the physical device.
package printer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"ticketd/internal/model"
)

const probeTimeout = 300 * time.Millisecond

// ProbeResult reports device reachability for the health surface.
type ProbeResult struct {
	Reachable bool   `json:"reachable"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Detail    string `json:"detail,omitempty"`
}

// Transport writes print jobs to the device over ad-hoc TCP connections.
// A mutex serializes Send so two concurrent jobs can never interleave bytes
// in the device's receive buffer; Probe opens its own payload-less
// connection and may run alongside a Send.
type Transport struct {
	host    string
	port    int
	timeout time.Duration
	logger  *slog.Logger

	mu sync.Mutex
}

func NewTransport(cfg model.PrinterConfig, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		host:    cfg.Host,
		port:    cfg.Port,
		timeout: cfg.Timeout(),
		logger:  logger,
	}
}

func (t *Transport) Addr() string {
	return net.JoinHostPort(t.host, fmt.Sprintf("%d", t.port))
}

// Send opens a connection, writes the full byte stream, and closes. One
// attempt; retry policy belongs to the caller. The wait behind another
// in-flight Send is bounded by that send's own timeout.
func (t *Transport) Send(ctx context.Context, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	dialer := net.Dialer{Timeout: t.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", t.Addr())
	if err != nil {
		return &model.PrinterError{Err: fmt.Errorf("connect %s: %w", t.Addr(), err), Timeout: isTimeout(err)}
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return &model.PrinterError{Err: fmt.Errorf("set deadline: %w", err)}
	}
	if _, err := conn.Write(data); err != nil {
		return &model.PrinterError{Err: fmt.Errorf("write %s: %w", t.Addr(), err), Timeout: isTimeout(err)}
	}

	t.logger.Info("sent print job", "bytes", len(data), "printer", t.Addr())
	return nil
}

// Probe is a lightweight connect-and-close against the printing host/port.
func (t *Transport) Probe() ProbeResult {
	res := ProbeResult{Host: t.host, Port: t.port}
	conn, err := net.DialTimeout("tcp", t.Addr(), probeTimeout)
	if err != nil {
		res.Detail = err.Error()
		return res
	}
	conn.Close()
	res.Reachable = true
	return res
}

func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
