// Package mapper handles type coercion for wire-format scalar tokens.
package mapper

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NullToken is the server's null sentinel. It decodes to nil regardless of
// the declared column type and is checked before any type-specific logic.
const NullToken = "NULL"

// Boolean wire convention.
const (
	boolTrue  = "true"
	boolFalse = "false"
)

// ValueCoercionError indicates a token that cannot be decoded under its
// declared type. Fatal for the row it appears in.
type ValueCoercionError struct {
	DeclaredType string
	Token        string
}

// Error implements the error interface.
func (e *ValueCoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %q to declared type %q", e.Token, e.DeclaredType)
}

// Mapper coerces raw response tokens into typed values keyed by the
// server-declared column type.
type Mapper struct{}

// NewMapper creates a new coercion mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Coerce converts a raw token according to the declared type tag. The NULL
// sentinel short-circuits to nil for every type. Boolean is special-cased
// to the server's textual convention before the generic converters run.
// An unsupported declared type is a terminal case, not a fallthrough.
func (m *Mapper) Coerce(declaredType, token string) (interface{}, error) {
	if token == NullToken {
		return nil, nil
	}

	switch strings.ToLower(declaredType) {
	case "boolean", "bool":
		return m.ToBool(token)
	case "tinyint", "smallint", "int", "integer", "bigint", "serial", "bigserial", "oid":
		return m.ToInt64(declaredType, token)
	case "real", "float", "double", "decimal", "numeric":
		return m.ToFloat64(declaredType, token)
	case "char", "varchar", "clob", "text", "string", "json", "url", "uuid", "blob":
		return m.ToString(token), nil
	case "date":
		return m.ToTime(declaredType, token, "2006-01-02")
	case "time":
		return m.ToTime(declaredType, token, "15:04:05")
	case "timestamp", "timestamptz":
		return m.ToTime(declaredType, token,
			"2006-01-02 15:04:05.999999", "2006-01-02 15:04:05", time.RFC3339)
	default:
		return nil, &ValueCoercionError{DeclaredType: declaredType, Token: token}
	}
}

// ToBool decodes the server's boolean convention. The generic truthy-string
// handling other drivers use does not apply here; only the exact wire
// spellings are accepted.
func (m *Mapper) ToBool(token string) (bool, error) {
	switch token {
	case boolTrue:
		return true, nil
	case boolFalse:
		return false, nil
	default:
		return false, &ValueCoercionError{DeclaredType: "boolean", Token: token}
	}
}

// EncodeBool encodes a boolean in the server's textual convention.
func (m *Mapper) EncodeBool(v bool) string {
	if v {
		return boolTrue
	}
	return boolFalse
}

// ToInt64 converts a token to an integer.
func (m *Mapper) ToInt64(declaredType, token string) (int64, error) {
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, &ValueCoercionError{DeclaredType: declaredType, Token: token}
	}
	return v, nil
}

// ToFloat64 converts a token to a float.
func (m *Mapper) ToFloat64(declaredType, token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &ValueCoercionError{DeclaredType: declaredType, Token: token}
	}
	return v, nil
}

// ToString unwraps and unescapes a character token. The server quotes
// character values and escapes quotes, backslashes and control characters
// inside; unquoted tokens pass through unchanged.
func (m *Mapper) ToString(token string) string {
	if len(token) < 2 || token[0] != '"' || token[len(token)-1] != '"' {
		return token
	}

	inner := token[1 : len(token)-1]
	if !strings.ContainsRune(inner, '\\') {
		return inner
	}

	var sb strings.Builder
	sb.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' || i == len(inner)-1 {
			sb.WriteByte(c)
			continue
		}
		i++
		switch inner[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		default:
			// \\ and \" unescape to the character itself.
			sb.WriteByte(inner[i])
		}
	}
	return sb.String()
}

// ToTime parses a temporal token against the given layouts in order.
func (m *Mapper) ToTime(declaredType, token string, layouts ...string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, token); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ValueCoercionError{DeclaredType: declaredType, Token: token}
}
