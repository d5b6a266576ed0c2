// Package transport defines the wire transport abstraction for the driver.
// The transport carries already-authenticated request/response exchanges as
// line-oriented text; byte-level framing is its concern, not the caller's.
package transport

import (
	"context"
	"time"
)

// Transport sends statements and receives complete responses. One request
// may be in flight per transport at a time; callers serialize.
type Transport interface {
	// Send transmits one statement to the server.
	Send(ctx context.Context, data []byte) error

	// Receive reads one complete response from the server.
	Receive(ctx context.Context) ([]byte, error)

	// Close closes the transport connection.
	Close() error

	// IsHealthy returns whether the transport is usable.
	IsHealthy() bool

	// GetMetrics returns transport performance metrics.
	GetMetrics() Metrics
}

// Metrics contains transport performance and health counters.
type Metrics struct {
	// TotalRequests is the total number of statements sent.
	TotalRequests int64

	// TotalErrors is the total number of errors encountered.
	TotalErrors int64

	// BytesSent is the total bytes sent.
	BytesSent int64

	// BytesReceived is the total bytes received.
	BytesReceived int64

	// LastError is the most recent error encountered.
	LastError error

	// LastErrorTime is when the last error occurred.
	LastErrorTime time.Time
}

// Factory creates new transport instances.
type Factory func(ctx context.Context) (Transport, error)
