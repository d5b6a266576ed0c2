package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader_Table(t *testing.T) {
	header, err := ParseHeader("&1 4 100 3 100")
	require.NoError(t, err)

	assert.Equal(t, KindTable, header.Kind)
	assert.Equal(t, int64(4), header.ID)
	assert.Equal(t, int64(100), header.RowCount)
	assert.Equal(t, 3, header.ColumnCount)
	assert.Equal(t, int64(100), header.ReturnedCount)
}

func TestParseHeader_Block(t *testing.T) {
	header, err := ParseHeader("&6 4 3 80 20")
	require.NoError(t, err)

	assert.Equal(t, KindBlock, header.Kind)
	assert.Equal(t, int64(4), header.ID)
	assert.Equal(t, 3, header.ColumnCount)
	assert.Equal(t, int64(80), header.RemainingCount)
	assert.Equal(t, int64(20), header.Offset)
}

func TestParseHeader_Update(t *testing.T) {
	header, err := ParseHeader("&2 7 42")
	require.NoError(t, err)

	assert.Equal(t, KindUpdate, header.Kind)
	assert.Equal(t, int64(7), header.AffectedRows)
	assert.Equal(t, int64(42), header.LastInsertID)
}

func TestParseHeader_Other(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"bare acknowledgment", "ok"},
		{"empty line", ""},
		{"transaction status", "&4 t"},
		{"autocommit ack", "&3"},
		{"lone ampersand", "&"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, err := ParseHeader(tt.line)
			require.NoError(t, err)
			assert.Equal(t, KindOther, header.Kind)
			assert.Equal(t, &Header{Kind: KindOther}, header)
		})
	}
}

func TestParseHeader_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"table too few fields", "&1 4 100"},
		{"table non-integer field", "&1 4 x 3 100"},
		{"update too few fields", "&2 7"},
		{"block non-integer field", "&6 4 3 eighty 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.line)
			require.Error(t, err)

			var malformed *MalformedResponseError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.line, malformed.Line)
		})
	}
}
