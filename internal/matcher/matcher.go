// Package matcher implements the three line-matching predicates ngp
// supports: a case-sensitive literal search (Boyer-Moore-Horspool with a
// Rabin-Karp fallback for 8-bit-unclean patterns), a case-insensitive
// literal search, and a regular expression. All three satisfy the same
// Matcher interface so the rest of the pipeline never branches on mode.
package matcher

import "fmt"

// Mode selects which Matcher implementation New constructs.
type Mode int

const (
	ModeLiteral Mode = iota
	ModeInsensitive
	ModeRegexp
)

// Matcher reports whether a pattern occurs somewhere in line. line is the
// raw byte range of a single text line (no trailing newline).
type Matcher interface {
	Match(line []byte) bool
}

// New builds the matcher appropriate for mode. For ModeRegexp, pattern is
// compiled eagerly so a bad expression is reported at startup, not while
// scanning.
func New(pattern string, mode Mode) (Matcher, error) {
	switch mode {
	case ModeRegexp:
		return NewRegexp(pattern)
	case ModeInsensitive:
		return NewInsensitive(pattern), nil
	case ModeLiteral:
		return NewLiteral(pattern), nil
	default:
		return nil, fmt.Errorf("matcher: unknown mode %d", mode)
	}
}
