package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/monetdb-contrib/monet-go/bulkload"
	"github.com/monetdb-contrib/monet-go/protocol"
	"github.com/monetdb-contrib/monet-go/rewrite"
)

// Client adapts a generic statement stream to the server's dialect and
// protocol: outbound SQL passes through the rewriter, responses are
// classified and decoded into typed results. One statement is in flight
// per connection at a time; callers serialize.
type Client struct {
	conn     Conn
	opts     Options
	logger   Logger
	rewriter *rewrite.Rewriter
	decoder  *protocol.Decoder
	cache    *rewriteCache
	loader   *bulkload.Loader
}

// NewClient creates a client over an already-authenticated connection.
// If opts is nil, default options are used.
func NewClient(conn Conn, opts *Options) *Client {
	if opts == nil {
		defaultOpts := DefaultOptions()
		opts = &defaultOpts
	}

	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(opts.LogLevel, nil)
	}

	var rewriteOpts []rewrite.Option
	if opts.WrapNotEquals {
		rewriteOpts = append(rewriteOpts, rewrite.WrapNotEquals())
	}

	cacheSize := opts.RewriteCacheSize
	if cacheSize == 0 {
		cacheSize = 256
	}

	return &Client{
		conn:     conn,
		opts:     *opts,
		logger:   logger,
		rewriter: rewrite.New(rewriteOpts...),
		decoder:  protocol.NewDecoder(),
		cache:    newRewriteCache(cacheSize),
		loader:   bulkload.NewLoader(opts.BulkLoad, opts.BulkRunner),
	}
}

// Execute submits one statement and returns its decoded result: typed rows
// for table responses, update metadata for update responses, a bare
// success result otherwise.
func (c *Client) Execute(ctx context.Context, sql string) (*protocol.Result, error) {
	if !c.conn.IsConnected() {
		return nil, &ConnectionLostError{}
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	requestID := uuid.NewString()
	rewritten := c.rewriteSQL(sql)

	c.logger.Debug("executing statement",
		String("requestID", requestID),
		Int("length", len(rewritten)))

	start := time.Now()
	raw, err := c.conn.SendStatement(ctx, rewritten)
	if err != nil {
		c.logger.Error("statement failed",
			String("requestID", requestID),
			Error("error", err))
		return nil, err
	}

	result, err := c.decoder.Decode(raw)
	if err != nil {
		c.logger.Error("response decode failed",
			String("requestID", requestID),
			Error("error", err))
		return nil, err
	}

	c.logger.Debug("statement complete",
		String("requestID", requestID),
		String("kind", result.Header.Kind.String()),
		Duration("elapsed", time.Since(start)))

	return result, nil
}

// ExecuteReturningID executes an insert-style statement and returns the
// generated identifier from its update result.
func (c *Client) ExecuteReturningID(ctx context.Context, sql string) (int64, error) {
	result, err := c.Execute(ctx, sql)
	if err != nil {
		return 0, err
	}

	if !result.IsUpdate() {
		return 0, fmt.Errorf("statement returned a %s response, expected an update result", result.Header.Kind)
	}
	return result.LastInsertID, nil
}

// ExecuteAffectedRows executes an update-style statement and returns its
// affected-row count.
func (c *Client) ExecuteAffectedRows(ctx context.Context, sql string) (int64, error) {
	result, err := c.Execute(ctx, sql)
	if err != nil {
		return 0, err
	}

	if !result.IsUpdate() {
		return 0, fmt.Errorf("statement returned a %s response, expected an update result", result.Header.Kind)
	}
	return result.AffectedRows, nil
}

// BulkLoad streams a file into a table through the external copy client,
// outside the query channel, and returns the client's diagnostic output.
// Delimiters and nullMarker are optional; a nil nullMarker omits the
// clause.
func (c *Client) BulkLoad(ctx context.Context, table, sourcePath string, delimiters []string, nullMarker *string) (string, error) {
	spec := bulkload.LoadSpec{
		Table:      table,
		SourcePath: sourcePath,
		Delimiters: delimiters,
		NullMarker: nullMarker,
	}

	c.logger.Info("starting bulk load",
		String("table", table),
		String("source", sourcePath))

	output, err := c.loader.Load(ctx, spec)
	if err != nil {
		c.logger.Error("bulk load failed",
			String("table", table),
			Error("error", err))
		return output, err
	}

	c.logger.Info("bulk load complete", String("table", table))
	return output, nil
}

// Disconnect closes the underlying connection.
func (c *Client) Disconnect() error {
	return c.conn.Disconnect()
}

// IsConnected reports whether the underlying connection is usable.
func (c *Client) IsConnected() bool {
	return c.conn.IsConnected()
}

// rewriteSQL applies the dialect rules, memoized per statement text.
func (c *Client) rewriteSQL(sql string) string {
	if rewritten, ok := c.cache.get(sql); ok {
		return rewritten
	}

	rewritten := c.rewriter.Rewrite(sql)
	c.cache.put(sql, rewritten)
	return rewritten
}

// withTimeout applies the default timeout when the caller's context has no
// deadline.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || c.opts.DefaultTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.opts.DefaultTimeout)
}
