package mapper

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce_NullSentinel(t *testing.T) {
	m := NewMapper()

	// NULL decodes to nil regardless of declared type, including types
	// the mapper does not otherwise support.
	for _, declaredType := range []string{"boolean", "int", "varchar", "timestamp", "geometry"} {
		t.Run(declaredType, func(t *testing.T) {
			value, err := m.Coerce(declaredType, "NULL")
			require.NoError(t, err)
			assert.Nil(t, value)
		})
	}
}

func TestCoerce_Boolean(t *testing.T) {
	m := NewMapper()

	value, err := m.Coerce("boolean", "true")
	require.NoError(t, err)
	assert.Equal(t, true, value)

	value, err = m.Coerce("boolean", "false")
	require.NoError(t, err)
	assert.Equal(t, false, value)

	// Truthy spellings a generic decoder would accept are rejected.
	for _, token := range []string{"1", "0", "yes", "t", "TRUE"} {
		_, err := m.Coerce("boolean", token)
		require.Error(t, err, "token %q", token)
	}
}

func TestBoolRoundTrip(t *testing.T) {
	m := NewMapper()

	for _, v := range []bool{true, false} {
		decoded, err := m.ToBool(m.EncodeBool(v))
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
	}
}

func TestCoerce_Numeric(t *testing.T) {
	m := NewMapper()

	tests := []struct {
		declaredType string
		token        string
		expected     interface{}
	}{
		{"tinyint", "7", int64(7)},
		{"smallint", "-3", int64(-3)},
		{"int", "42", int64(42)},
		{"bigint", "9223372036854775807", int64(9223372036854775807)},
		{"real", "1.5", 1.5},
		{"double", "-2.25", -2.25},
		{"decimal", "10.01", 10.01},
	}

	for _, tt := range tests {
		t.Run(tt.declaredType, func(t *testing.T) {
			value, err := m.Coerce(tt.declaredType, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestCoerce_Strings(t *testing.T) {
	m := NewMapper()

	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{"quoted", `"hello"`, "hello"},
		{"unquoted passthrough", "hello", "hello"},
		{"escaped quote", `"say \"hi\""`, `say "hi"`},
		{"escaped backslash", `"a\\b"`, `a\b`},
		{"newline and tab", `"a\nb\tc"`, "a\nb\tc"},
		{"empty", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := m.Coerce("varchar", tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestCoerce_Temporal(t *testing.T) {
	m := NewMapper()

	value, err := m.Coerce("date", "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), value)

	value, err = m.Coerce("timestamp", "2024-03-15 10:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), value)

	value, err = m.Coerce("timestamp", "2024-03-15 10:30:00.500000")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 500000000, time.UTC), value)
}

func TestCoerce_Failures(t *testing.T) {
	m := NewMapper()

	tests := []struct {
		name         string
		declaredType string
		token        string
	}{
		{"bad int", "int", "forty-two"},
		{"bad float", "double", "x"},
		{"bad date", "date", "15/03/2024"},
		{"unknown type", "geometry", "POINT(1 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Coerce(tt.declaredType, tt.token)
			require.Error(t, err)

			var coercion *ValueCoercionError
			require.True(t, errors.As(err, &coercion))
			assert.Equal(t, tt.token, coercion.Token)
		})
	}
}
