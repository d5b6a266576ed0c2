package client

import (
	"time"

	"github.com/monetdb-contrib/monet-go/bulkload"
)

// Options configures the client behavior.
type Options struct {
	// DefaultTimeout bounds statement execution when the caller's
	// context carries no deadline.
	// Default: 10 seconds
	DefaultTimeout time.Duration

	// Logger is the logger implementation to use.
	// If nil, a default logger is used.
	Logger Logger

	// LogLevel sets the minimum log level (DEBUG, INFO, WARN, ERROR).
	// Default: "INFO"
	LogLevel string

	// WrapNotEquals selects the historical inequality rewrite that wraps
	// 'a != b' into 'not (a = b)' instead of substituting '<>'.
	// Compatibility toggle; leave false for the standard behavior.
	WrapNotEquals bool

	// RewriteCacheSize is the maximum number of rewritten statements to
	// cache, keyed by a hash of the original text.
	// Default: 256
	RewriteCacheSize int

	// BulkLoad identifies the server and account the external copy
	// client uses. Required only when calling BulkLoad.
	BulkLoad bulkload.ServerConfig

	// BulkRunner overrides the process runner used for bulk loads.
	// If nil, the default exec runner is used.
	BulkRunner bulkload.Runner
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		DefaultTimeout:   10 * time.Second,
		LogLevel:         "INFO",
		RewriteCacheSize: 256,
	}
}
