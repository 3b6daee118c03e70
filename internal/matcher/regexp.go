package matcher

import "regexp"

type regexpMatcher struct {
	re *regexp.Regexp
}

// NewRegexp compiles pattern and returns a Matcher over it, or the
// compile error for the caller to treat as fatal (root search) or as a
// rejected subsearch, per spec.md 4.A / 7.
func NewRegexp(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &regexpMatcher{re: re}, nil
}

func (m *regexpMatcher) Match(line []byte) bool {
	return m.re.Match(line)
}

// CompileHighlight compiles pattern as a regular expression for display
// purposes only — ngp.c's print_line colorizes the first occurrence of
// the literal pattern even in a non-regex search, a presentation nuance
// spec.md 9 restores from original_source. insensitive wraps the
// expression in the (?i) flag rather than requiring the caller to fold
// case. A pattern that is not valid regex syntax (a literal containing
// bare regex metacharacters) returns an error so the caller can fall
// back to unhighlighted text instead of treating it as fatal.
func CompileHighlight(pattern string, insensitive bool) (*regexp.Regexp, error) {
	if insensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}
