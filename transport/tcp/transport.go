// Package tcp provides the reference TCP transport. Responses are read up
// to the server's prompt byte, so the caller always receives one complete
// line-oriented response per Receive.
package tcp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/monetdb-contrib/monet-go/transport"
)

// promptByte terminates every server response.
const promptByte byte = 0x01

// Options configures the TCP transport.
type Options struct {
	// Address is the server address (host:port).
	Address string

	// Timeout bounds dialing and, absent a context deadline, reads and
	// writes. Default 30s.
	Timeout time.Duration
}

// Transport implements transport.Transport over a single TCP connection.
// The underlying protocol is request/response; callers serialize.
type Transport struct {
	opts    Options
	conn    net.Conn
	scanner *bufio.Scanner
	alive   bool
	mu      sync.Mutex

	metrics struct {
		totalRequests atomic.Int64
		totalErrors   atomic.Int64
		bytesSent     atomic.Int64
		bytesReceived atomic.Int64
		lastError     error
		lastErrorTime time.Time
		errMu         sync.Mutex
	}
}

// New dials the server and returns a connected transport.
func New(ctx context.Context, opts Options) (*Transport, error) {
	if opts.Address == "" {
		return nil, fmt.Errorf("address is required")
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	dialer := net.Dialer{Timeout: opts.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", opts.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Address, err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	scanner.Split(splitAtPrompt)

	return &Transport{
		opts:    opts,
		conn:    conn,
		scanner: scanner,
		alive:   true,
	}, nil
}

// Send implements transport.Transport.
func (t *Transport) Send(ctx context.Context, data []byte) error {
	t.metrics.totalRequests.Add(1)

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.alive {
		err := fmt.Errorf("transport is closed")
		t.recordError(err)
		return err
	}

	if err := t.setDeadline(ctx); err != nil {
		t.recordError(err)
		return err
	}

	n, err := t.conn.Write(data)
	if err != nil {
		t.alive = false
		t.recordError(err)
		return err
	}

	t.metrics.bytesSent.Add(int64(n))
	return nil
}

// Receive implements transport.Transport.
func (t *Transport) Receive(ctx context.Context) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.alive {
		err := fmt.Errorf("transport is closed")
		t.recordError(err)
		return nil, err
	}

	if err := t.setDeadline(ctx); err != nil {
		t.recordError(err)
		return nil, err
	}

	if !t.scanner.Scan() {
		t.alive = false
		if err := t.scanner.Err(); err != nil {
			t.recordError(err)
			return nil, err
		}
		err := fmt.Errorf("connection closed by server")
		t.recordError(err)
		return nil, err
	}

	data := t.scanner.Bytes()
	t.metrics.bytesReceived.Add(int64(len(data)))

	// Scanner reuses its buffer.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Close implements transport.Transport.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.alive = false
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}

// IsHealthy implements transport.Transport.
func (t *Transport) IsHealthy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alive
}

// GetMetrics implements transport.Transport.
func (t *Transport) GetMetrics() transport.Metrics {
	t.metrics.errMu.Lock()
	lastErr := t.metrics.lastError
	lastErrTime := t.metrics.lastErrorTime
	t.metrics.errMu.Unlock()

	return transport.Metrics{
		TotalRequests: t.metrics.totalRequests.Load(),
		TotalErrors:   t.metrics.totalErrors.Load(),
		BytesSent:     t.metrics.bytesSent.Load(),
		BytesReceived: t.metrics.bytesReceived.Load(),
		LastError:     lastErr,
		LastErrorTime: lastErrTime,
	}
}

// setDeadline applies the context deadline, falling back to the configured
// timeout. Must be called with t.mu held.
func (t *Transport) setDeadline(ctx context.Context) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(t.opts.Timeout)
	}
	return t.conn.SetDeadline(deadline)
}

// recordError records an error in metrics.
func (t *Transport) recordError(err error) {
	t.metrics.totalErrors.Add(1)
	t.metrics.errMu.Lock()
	t.metrics.lastError = err
	t.metrics.lastErrorTime = time.Now()
	t.metrics.errMu.Unlock()
}

// splitAtPrompt is a scanner split function that returns everything up to
// the server's prompt byte, prompt excluded.
func splitAtPrompt(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, promptByte); i >= 0 {
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}
