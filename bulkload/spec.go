// Package bulkload streams files into the server through the external
// copy client, bypassing per-row statement execution.
package bulkload

import "strings"

// LoadSpec describes one bulk-load invocation. Immutable once built.
type LoadSpec struct {
	// Table is the ingest target.
	Table string

	// SourcePath is the file streamed to the client's standard input.
	SourcePath string

	// Delimiters are the field delimiters, in order. Optional.
	Delimiters []string

	// NullMarker is the token the file uses for NULL. Optional; nil
	// omits the clause entirely (an empty string is a valid marker).
	NullMarker *string
}

// ControlStatement builds the COPY INTO statement for the spec. Delimiter
// and null clauses appear only when the spec provides them; each delimiter
// is individually quoted and the list comma-joined.
func (s *LoadSpec) ControlStatement() string {
	var sb strings.Builder
	sb.WriteString("COPY INTO ")
	sb.WriteString(s.Table)
	sb.WriteString(" FROM STDIN")

	if len(s.Delimiters) > 0 {
		sb.WriteString(" USING DELIMITERS ")
		for i, d := range s.Delimiters {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(quote(d))
		}
	}

	if s.NullMarker != nil {
		sb.WriteString(" NULL AS ")
		sb.WriteString(quote(*s.NullMarker))
	}

	sb.WriteString(";")
	return sb.String()
}

// quote wraps a value in single quotes, doubling embedded quotes.
func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
