// Package testutil provides fixtures and helpers for driver tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TableResponse builds raw table-response text the way the server emits
// it: a '&1' header, '%' metadata lines, then tab-separated data rows.
type TableResponse struct {
	id    int
	names []string
	types []string
	rows  [][]string
}

// NewTableResponse creates a builder for a table response with the given
// result-set id.
func NewTableResponse(id int) *TableResponse {
	return &TableResponse{id: id}
}

// Column adds a column with its declared type.
func (b *TableResponse) Column(name, declaredType string) *TableResponse {
	b.names = append(b.names, name)
	b.types = append(b.types, declaredType)
	return b
}

// Row adds a data row of raw tokens.
func (b *TableResponse) Row(tokens ...string) *TableResponse {
	b.rows = append(b.rows, tokens)
	return b
}

// Build renders the raw response text.
func (b *TableResponse) Build() string {
	rowCount := len(b.rows)

	var sb strings.Builder
	fmt.Fprintf(&sb, "&1 %d %d %d %d\n", b.id, rowCount, len(b.names), rowCount)
	fmt.Fprintf(&sb, "%% %s # name\n", strings.Join(b.names, ",\t"))
	fmt.Fprintf(&sb, "%% %s # type\n", strings.Join(b.types, ",\t"))
	for _, row := range b.rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// UpdateResponse renders a raw update response.
func UpdateResponse(affectedRows, lastInsertID int64) string {
	return fmt.Sprintf("&2 %d %d\n", affectedRows, lastInsertID)
}

// TempFile writes content to a file in the test's temp dir and returns
// its path.
func TempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// WithTimeout creates a context with timeout for tests.
// Default timeout is 10 seconds.
func WithTimeout(t *testing.T, timeout ...time.Duration) context.Context {
	t.Helper()

	duration := 10 * time.Second
	if len(timeout) > 0 {
		duration = timeout[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	t.Cleanup(cancel)

	return ctx
}
