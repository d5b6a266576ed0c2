// Package mock provides a scripted transport for tests.
package mock

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/monetdb-contrib/monet-go/transport"
)

// Transport implements transport.Transport with scripted responses and
// call recording. Responses are consumed in enqueue order, one per
// Receive, matching the protocol's strict request/response pairing.
type Transport struct {
	mu        sync.Mutex
	responses [][]byte
	sendErr   error
	recvErr   error
	healthy   bool
	closed    bool

	sendHistory [][]byte

	sendCalls  atomic.Int32
	recvCalls  atomic.Int32
	closeCalls atomic.Int32

	bytesSent     atomic.Int64
	bytesReceived atomic.Int64
	totalErrors   atomic.Int64
}

// New creates a mock transport with no scripted responses.
func New() *Transport {
	return &Transport{healthy: true}
}

// EnqueueResponse appends a response to the script.
func (m *Transport) EnqueueResponse(data string) *Transport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, []byte(data))
	return m
}

// WithSendError makes every Send fail with err.
func (m *Transport) WithSendError(err error) *Transport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
	return m
}

// WithReceiveError makes every Receive fail with err.
func (m *Transport) WithReceiveError(err error) *Transport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recvErr = err
	return m
}

// WithHealthy sets the reported health status.
func (m *Transport) WithHealthy(healthy bool) *Transport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthy = healthy
	return m
}

// Send implements transport.Transport.
func (m *Transport) Send(ctx context.Context, data []byte) error {
	m.sendCalls.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		m.totalErrors.Add(1)
		return fmt.Errorf("transport is closed")
	}
	if m.sendErr != nil {
		m.totalErrors.Add(1)
		return m.sendErr
	}

	m.sendHistory = append(m.sendHistory, data)
	m.bytesSent.Add(int64(len(data)))
	return nil
}

// Receive implements transport.Transport.
func (m *Transport) Receive(ctx context.Context) ([]byte, error) {
	m.recvCalls.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		m.totalErrors.Add(1)
		return nil, fmt.Errorf("transport is closed")
	}
	if m.recvErr != nil {
		m.totalErrors.Add(1)
		return nil, m.recvErr
	}
	if len(m.responses) == 0 {
		m.totalErrors.Add(1)
		return nil, fmt.Errorf("no scripted response available")
	}

	data := m.responses[0]
	m.responses = m.responses[1:]
	m.bytesReceived.Add(int64(len(data)))
	return data, nil
}

// Close implements transport.Transport.
func (m *Transport) Close() error {
	m.closeCalls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// IsHealthy implements transport.Transport.
func (m *Transport) IsHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy && !m.closed
}

// GetMetrics implements transport.Transport.
func (m *Transport) GetMetrics() transport.Metrics {
	return transport.Metrics{
		TotalRequests: int64(m.sendCalls.Load()),
		TotalErrors:   m.totalErrors.Load(),
		BytesSent:     m.bytesSent.Load(),
		BytesReceived: m.bytesReceived.Load(),
	}
}

// SendHistory returns a copy of all data sent through the transport.
func (m *Transport) SendHistory() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	history := make([]string, len(m.sendHistory))
	for i, data := range m.sendHistory {
		history[i] = string(data)
	}
	return history
}

// SendCallCount returns the number of Send calls.
func (m *Transport) SendCallCount() int { return int(m.sendCalls.Load()) }

// ReceiveCallCount returns the number of Receive calls.
func (m *Transport) ReceiveCallCount() int { return int(m.recvCalls.Load()) }

// CloseCallCount returns the number of Close calls.
func (m *Transport) CloseCallCount() int { return int(m.closeCalls.Load()) }

// IsClosed reports whether the transport has been closed.
func (m *Transport) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
