package protocol

import "fmt"

// MalformedResponseError indicates a header line that does not match any
// recognized kind or shape. Not retryable; surfaced immediately.
type MalformedResponseError struct {
	Line   string
	Reason string
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response header %q: %s", e.Line, e.Reason)
}

// SchemaMismatchError indicates the header's declared column count
// disagrees with the decoded column descriptors. Fatal for the response.
type SchemaMismatchError struct {
	Declared int
	Decoded  int
}

// Error implements the error interface.
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: header declares %d columns, metadata describes %d", e.Declared, e.Decoded)
}

// RowArityError indicates a data row whose token count disagrees with the
// column count. Fatal for the response; no partial recovery.
type RowArityError struct {
	Row      int
	Expected int
	Actual   int
}

// Error implements the error interface.
func (e *RowArityError) Error() string {
	return fmt.Sprintf("row %d has %d values, expected %d", e.Row, e.Actual, e.Expected)
}

// ServerError carries a server-reported statement failure verbatim.
// The server prefixes these lines with '!'.
type ServerError struct {
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return "server error: " + e.Message
}
