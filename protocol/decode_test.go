package protocol_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monetdb-contrib/monet-go/protocol"
	"github.com/monetdb-contrib/monet-go/testutil"
)

func TestDecode_Table(t *testing.T) {
	raw := testutil.NewTableResponse(1).
		Column("id", "int").
		Column("name", "varchar").
		Column("active", "boolean").
		Row("1", `"alice"`, "true").
		Row("2", `"bob"`, "false").
		Row("3", "NULL", "NULL").
		Build()

	result, err := protocol.NewDecoder().Decode(raw)
	require.NoError(t, err)

	require.True(t, result.IsTable())
	require.Len(t, result.Columns, result.Header.ColumnCount)
	assert.Equal(t, []protocol.Column{
		{Name: "id", DeclaredType: "int"},
		{Name: "name", DeclaredType: "varchar"},
		{Name: "active", DeclaredType: "boolean"},
	}, result.Columns)

	require.Len(t, result.Rows, 3)
	assert.Equal(t, []interface{}{int64(1), "alice", true}, result.Rows[0])
	assert.Equal(t, []interface{}{int64(2), "bob", false}, result.Rows[1])
	assert.Equal(t, []interface{}{nil, nil, nil}, result.Rows[2])
}

func TestDecode_RowOrderPreserved(t *testing.T) {
	raw := testutil.NewTableResponse(1).
		Column("n", "int").
		Row("3").
		Row("1").
		Row("2").
		Build()

	result, err := protocol.NewDecoder().Decode(raw)
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	assert.Equal(t, int64(3), result.Rows[0][0])
	assert.Equal(t, int64(1), result.Rows[1][0])
	assert.Equal(t, int64(2), result.Rows[2][0])
}

func TestDecode_Update(t *testing.T) {
	result, err := protocol.NewDecoder().Decode(testutil.UpdateResponse(7, 42))
	require.NoError(t, err)

	require.True(t, result.IsUpdate())
	assert.Equal(t, int64(7), result.AffectedRows)
	assert.Equal(t, int64(42), result.LastInsertID)
	assert.Empty(t, result.Columns)
	assert.Empty(t, result.Rows)
}

func TestDecode_BareAcknowledgment(t *testing.T) {
	result, err := protocol.NewDecoder().Decode("&3 t\n")
	require.NoError(t, err)

	assert.Equal(t, protocol.KindOther, result.Header.Kind)
	assert.False(t, result.IsTable())
	assert.False(t, result.IsUpdate())
}

func TestDecode_Block(t *testing.T) {
	result, err := protocol.NewDecoder().Decode("&6 4 3 80 20\n")
	require.NoError(t, err)

	assert.Equal(t, protocol.KindBlock, result.Header.Kind)
	assert.Equal(t, int64(80), result.Header.RemainingCount)
	assert.Equal(t, int64(20), result.Header.Offset)
}

func TestDecode_SchemaMismatch(t *testing.T) {
	// Header declares 3 columns, metadata describes 2.
	raw := "&1 1 1 3 1\n" +
		"% id,\tname # name\n" +
		"% int,\tvarchar # type\n" +
		"1\t\"alice\"\tx\n"

	_, err := protocol.NewDecoder().Decode(raw)
	require.Error(t, err)

	var mismatch *protocol.SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 3, mismatch.Declared)
	assert.Equal(t, 2, mismatch.Decoded)
}

func TestDecode_RowArity(t *testing.T) {
	raw := testutil.NewTableResponse(1).
		Column("a", "int").
		Column("b", "int").
		Column("c", "int").
		Row("1", "2", "3").
		Row("1", "2").
		Build()

	result, err := protocol.NewDecoder().Decode(raw)
	require.Error(t, err)
	assert.Nil(t, result, "a row arity failure must not yield a partial result")

	var arity *protocol.RowArityError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, 1, arity.Row)
	assert.Equal(t, 3, arity.Expected)
	assert.Equal(t, 2, arity.Actual)
}

func TestDecode_CoercionFailurePropagates(t *testing.T) {
	raw := testutil.NewTableResponse(1).
		Column("n", "int").
		Row("forty-two").
		Build()

	_, err := protocol.NewDecoder().Decode(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forty-two")
}

func TestDecode_ServerError(t *testing.T) {
	_, err := protocol.NewDecoder().Decode("!syntax error in \"selectt\"\n")
	require.Error(t, err)

	var serverErr *protocol.ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Contains(t, serverErr.Message, "syntax error")
}

func TestDecode_EmptyResponse(t *testing.T) {
	result, err := protocol.NewDecoder().Decode("")
	require.NoError(t, err)
	assert.Equal(t, protocol.KindOther, result.Header.Kind)
}
