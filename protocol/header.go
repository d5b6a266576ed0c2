// Package protocol decodes MonetDB text-protocol responses into typed results.
package protocol

import (
	"strconv"
	"strings"
)

// HeaderKind classifies a response header line.
type HeaderKind int

const (
	// KindOther is a bare acknowledgment with no structured payload.
	KindOther HeaderKind = iota

	// KindTable is a query result carrying column metadata and data rows.
	KindTable

	// KindBlock is a continuation block of a paged result set.
	KindBlock

	// KindUpdate is an update result carrying affected-row count and
	// last generated id.
	KindUpdate
)

// String returns the string representation of the header kind.
func (k HeaderKind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindBlock:
		return "block"
	case KindUpdate:
		return "update"
	default:
		return "other"
	}
}

// Header kind tags as they appear on the wire. The server prefixes every
// structured header line with '&' followed by a one-digit code.
const (
	tagTable  = "&1"
	tagUpdate = "&2"
	tagBlock  = "&6"
)

// Header is a classified response header. Only the fields for the
// corresponding kind are populated; the rest stay zero.
type Header struct {
	Kind HeaderKind

	// Table and Block fields.
	ID          int64
	ColumnCount int

	// Table fields.
	RowCount      int64
	ReturnedCount int64

	// Block fields.
	RemainingCount int64
	Offset         int64

	// Update fields.
	AffectedRows int64
	LastInsertID int64
}

// ParseHeader classifies a raw header line. Lines without a recognized
// kind tag classify as KindOther with no fields. Integer fields are parsed
// positionally per kind; a short or non-numeric field list yields a
// MalformedResponseError.
func ParseHeader(line string) (*Header, error) {
	line = strings.TrimRight(line, "\r\n")

	if len(line) < 2 || line[0] != '&' {
		return &Header{Kind: KindOther}, nil
	}

	tag := line[:2]
	rest := strings.Fields(line[2:])

	switch tag {
	case tagTable:
		fields, err := parseIntFields(line, rest, 4)
		if err != nil {
			return nil, err
		}
		return &Header{
			Kind:          KindTable,
			ID:            fields[0],
			RowCount:      fields[1],
			ColumnCount:   int(fields[2]),
			ReturnedCount: fields[3],
		}, nil

	case tagBlock:
		fields, err := parseIntFields(line, rest, 4)
		if err != nil {
			return nil, err
		}
		return &Header{
			Kind:           KindBlock,
			ID:             fields[0],
			ColumnCount:    int(fields[1]),
			RemainingCount: fields[2],
			Offset:         fields[3],
		}, nil

	case tagUpdate:
		fields, err := parseIntFields(line, rest, 2)
		if err != nil {
			return nil, err
		}
		return &Header{
			Kind:         KindUpdate,
			AffectedRows: fields[0],
			LastInsertID: fields[1],
		}, nil

	default:
		// Unrecognized '&' codes (transaction status, autocommit acks)
		// carry no payload the caller consumes.
		return &Header{Kind: KindOther}, nil
	}
}

// parseIntFields parses the first n whitespace-delimited tokens as int64.
func parseIntFields(line string, tokens []string, n int) ([]int64, error) {
	if len(tokens) < n {
		return nil, &MalformedResponseError{
			Line:   line,
			Reason: "header has " + strconv.Itoa(len(tokens)) + " fields, expected " + strconv.Itoa(n),
		}
	}

	fields := make([]int64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseInt(tokens[i], 10, 64)
		if err != nil {
			return nil, &MalformedResponseError{
				Line:   line,
				Reason: "non-integer header field " + strconv.Quote(tokens[i]),
			}
		}
		fields[i] = v
	}
	return fields, nil
}
