// Package rewrite applies ordered textual substitutions to outbound SQL to
// compensate for server dialect gaps. It is a conservative string
// transform, not a parser: statements are segmented into code, string
// literals and comments, and each rule only touches the segment class it
// declares.
package rewrite

import (
	"regexp"
	"strings"
)

// SegmentKind classifies a piece of a SQL statement.
type SegmentKind int

const (
	// SegmentCode is SQL text outside literals and comments.
	SegmentCode SegmentKind = iota

	// SegmentString is a single-quoted string literal, quotes included.
	SegmentString

	// SegmentComment is a line or block comment, markers included.
	SegmentComment
)

// Rule is one ordered rewrite step. Apply receives the text of every
// segment of the target kind and returns the replacement.
type Rule struct {
	Name   string
	Target SegmentKind
	Apply  func(string) string
}

// Rewriter holds the ordered rule list. Rules run in registration order;
// order matters because later rules see earlier output.
type Rewriter struct {
	rules []Rule
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WrapNotEquals replaces the direct '!=' substitution with the historical
// variant that rewrites identifier-shaped 'a != b' comparisons into
// 'not (a = b)'. Compatibility toggle; the direct substitution is the
// default.
func WrapNotEquals() Option {
	return func(r *Rewriter) {
		for i := range r.rules {
			if r.rules[i].Name == "not-equals" {
				r.rules[i].Apply = wrapNotEquals
			}
		}
	}
}

// New creates a Rewriter with the default dialect rules:
//  1. '!=' becomes the native '<>' operator (code segments only).
//  2. lone backslashes inside single-quoted literals are doubled to match
//     server escaping semantics (literal segments only).
//
// Both rules are idempotent, so rewriting already-rewritten SQL is a no-op.
func New(opts ...Option) *Rewriter {
	r := &Rewriter{
		rules: []Rule{
			{Name: "not-equals", Target: SegmentCode, Apply: replaceNotEquals},
			{Name: "escape-backslash", Target: SegmentString, Apply: doubleBackslashes},
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite returns sql transformed by every rule in order. Identifiers,
// comments and string contents outside the targeted cases pass through
// untouched.
func (r *Rewriter) Rewrite(sql string) string {
	segs := segment(sql)

	var sb strings.Builder
	sb.Grow(len(sql) + 8)
	for _, seg := range segs {
		text := seg.text
		for _, rule := range r.rules {
			if rule.Target == seg.kind {
				text = rule.Apply(text)
			}
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// replaceNotEquals is the default inequality rule.
func replaceNotEquals(code string) string {
	return strings.ReplaceAll(code, "!=", "<>")
}

// notEqualsPattern matches the identifier-shaped comparisons the
// historical negation-wrapping rule was constrained to.
var notEqualsPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.]*|[0-9]+)\s*!=\s*([A-Za-z_][A-Za-z0-9_.]*|[0-9]+)`)

// wrapNotEquals is the historical compatibility variant.
func wrapNotEquals(code string) string {
	return notEqualsPattern.ReplaceAllString(code, "not ($1 = $2)")
}

// doubleBackslashes extends every odd-length backslash run inside a
// literal to even length. Even runs are already escaped and stay as they
// are, which keeps the rule idempotent.
func doubleBackslashes(literal string) string {
	if !strings.ContainsRune(literal, '\\') {
		return literal
	}

	var sb strings.Builder
	sb.Grow(len(literal) + 4)
	for i := 0; i < len(literal); {
		if literal[i] != '\\' {
			sb.WriteByte(literal[i])
			i++
			continue
		}
		run := 0
		for i < len(literal) && literal[i] == '\\' {
			run++
			i++
		}
		sb.WriteString(strings.Repeat(`\`, run))
		if run%2 == 1 {
			sb.WriteByte('\\')
		}
	}
	return sb.String()
}

type piece struct {
	kind SegmentKind
	text string
}

// segment splits sql into code, string-literal and comment pieces. Doubled
// quotes inside a literal ('') stay part of the literal. Unterminated
// literals or comments run to end of input.
func segment(sql string) []piece {
	var pieces []piece
	start := 0
	i := 0

	flush := func(end int, kind SegmentKind) {
		if end > start {
			pieces = append(pieces, piece{kind: kind, text: sql[start:end]})
		}
		start = end
	}

	for i < len(sql) {
		switch {
		case sql[i] == '\'':
			flush(i, SegmentCode)
			i++
			for i < len(sql) {
				if sql[i] == '\'' {
					if i+1 < len(sql) && sql[i+1] == '\'' {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
			flush(i, SegmentString)

		case sql[i] == '-' && i+1 < len(sql) && sql[i+1] == '-':
			flush(i, SegmentCode)
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
			flush(i, SegmentComment)

		case sql[i] == '/' && i+1 < len(sql) && sql[i+1] == '*':
			flush(i, SegmentCode)
			i += 2
			for i < len(sql) {
				if sql[i] == '*' && i+1 < len(sql) && sql[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
			flush(i, SegmentComment)

		default:
			i++
		}
	}
	flush(len(sql), SegmentCode)
	return pieces
}
