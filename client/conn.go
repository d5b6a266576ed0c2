// Package client exposes the driver's outward entry points: statement
// execution over a serialized connection and the out-of-band bulk load.
package client

import (
	"context"
	"fmt"

	"github.com/monetdb-contrib/monet-go/transport"
)

// Conn is the connection collaborator the client drives. Implementations
// own framing and authentication; the client only sees complete raw
// response text per statement. One statement may be in flight per Conn at
// a time.
type Conn interface {
	// SendStatement submits one statement and returns the complete raw
	// response text.
	SendStatement(ctx context.Context, text string) (string, error)

	// IsConnected reports whether the connection is usable.
	IsConnected() bool

	// Disconnect closes the connection.
	Disconnect() error
}

// ConnectionLostError indicates the transport signalled disconnection.
// Distinguished from decode failures so a caller may choose to reconnect
// and retry the whole statement; the client itself never retries.
type ConnectionLostError struct {
	Cause error
}

// Error implements the error interface.
func (e *ConnectionLostError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("connection lost: %v", e.Cause)
	}
	return "connection lost"
}

// Unwrap returns the underlying transport error.
func (e *ConnectionLostError) Unwrap() error {
	return e.Cause
}

// TransportConn adapts a transport.Transport to the Conn interface.
type TransportConn struct {
	transport transport.Transport
}

// NewTransportConn wraps an already-authenticated transport.
func NewTransportConn(t transport.Transport) *TransportConn {
	return &TransportConn{transport: t}
}

// SendStatement implements Conn. Send and receive failures both surface as
// ConnectionLostError; the underlying protocol has no recovery point
// between request and response.
func (c *TransportConn) SendStatement(ctx context.Context, text string) (string, error) {
	if err := c.transport.Send(ctx, []byte(text)); err != nil {
		return "", &ConnectionLostError{Cause: err}
	}

	raw, err := c.transport.Receive(ctx)
	if err != nil {
		return "", &ConnectionLostError{Cause: err}
	}
	return string(raw), nil
}

// IsConnected implements Conn.
func (c *TransportConn) IsConnected() bool {
	return c.transport.IsHealthy()
}

// Disconnect implements Conn.
func (c *TransportConn) Disconnect() error {
	return c.transport.Close()
}
