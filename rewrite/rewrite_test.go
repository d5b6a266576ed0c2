package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewrite_NotEquals(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"simple comparison",
			"select * from t where a != b",
			"select * from t where a <> b",
		},
		{
			"multiple occurrences",
			"select * from t where a != b and c != d",
			"select * from t where a <> b and c <> d",
		},
		{
			"inside string literal untouched",
			"select * from t where a = 'x != y'",
			"select * from t where a = 'x != y'",
		},
		{
			"inside line comment untouched",
			"select * from t -- a != b\nwhere c != d",
			"select * from t -- a != b\nwhere c <> d",
		},
		{
			"inside block comment untouched",
			"select /* a != b */ * from t where c != d",
			"select /* a != b */ * from t where c <> d",
		},
		{
			"no operator",
			"select * from t",
			"select * from t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Rewrite(tt.input))
		})
	}
}

func TestRewrite_BackslashEscaping(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"single backslash doubled",
			`select * from t where a = 'x\'`,
			`select * from t where a = 'x\\'`,
		},
		{
			"already doubled untouched",
			`select * from t where a = 'x\\'`,
			`select * from t where a = 'x\\'`,
		},
		{
			"triple becomes quadruple",
			`select * from t where a = 'x\\\y'`,
			`select * from t where a = 'x\\\\y'`,
		},
		{
			"backslash outside literal untouched",
			`select a\b from t`,
			`select a\b from t`,
		},
		{
			"doubled quote stays inside literal",
			`select * from t where a = 'it''s \here'`,
			`select * from t where a = 'it''s \\here'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Rewrite(tt.input))
		})
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	r := New()

	inputs := []string{
		`select * from t where a != 'x\'`,
		`select * from t where a != b and c = 'p\q'`,
		`update t set a = 'x\\y' where b != 1`,
		`select * from t`,
	}

	for _, input := range inputs {
		once := r.Rewrite(input)
		twice := r.Rewrite(once)
		assert.Equal(t, once, twice, "rewrite of %q is not idempotent", input)
	}
}

func TestRewrite_SpecExample(t *testing.T) {
	r := New()

	got := r.Rewrite(`select * from t where a != 'x\'`)
	assert.Equal(t, `select * from t where a <> 'x\\'`, got)
}

func TestRewrite_WrapNotEquals(t *testing.T) {
	r := New(WrapNotEquals())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"identifiers",
			"select * from t where a != b",
			"select * from t where not (a = b)",
		},
		{
			"qualified column and number",
			"select * from t where t.a != 5",
			"select * from t where not (t.a = 5)",
		},
		{
			"non-identifier operand left alone",
			"select * from t where f(a) != b",
			"select * from t where f(a) != b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Rewrite(tt.input))
		})
	}
}

func TestSegment(t *testing.T) {
	pieces := segment("select 'a' -- c\nfrom /* b */ t")

	var kinds []SegmentKind
	for _, p := range pieces {
		kinds = append(kinds, p.kind)
	}
	assert.Equal(t, []SegmentKind{
		SegmentCode, SegmentString, SegmentCode, SegmentComment,
		SegmentCode, SegmentComment, SegmentCode,
	}, kinds)

	var joined string
	for _, p := range pieces {
		joined += p.text
	}
	assert.Equal(t, "select 'a' -- c\nfrom /* b */ t", joined)
}
