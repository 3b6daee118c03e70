package matcher

import "testing"

func TestLiteralCaseSensitive(t *testing.T) {
	m := NewLiteral("hello")

	cases := []struct {
		line string
		want bool
	}{
		{"hello", true},
		{"world", false},
		{"hello world", true},
		{"Hello world", false},
		{"say hell to no one", false},
	}
	for _, c := range cases {
		if got := m.Match([]byte(c.line)); got != c.want {
			t.Errorf("Match(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestLiteralSingleByte(t *testing.T) {
	m := NewLiteral("x")
	if !m.Match([]byte("abcxdef")) {
		t.Error("expected match on single byte pattern")
	}
	if m.Match([]byte("abcdef")) {
		t.Error("expected no match on single byte pattern")
	}
}

func TestLiteralEmptyPatternMatchesEverything(t *testing.T) {
	m := NewLiteral("")
	if !m.Match([]byte("anything")) {
		t.Error("empty pattern should match any line")
	}
	if !m.Match(nil) {
		t.Error("empty pattern should match empty line")
	}
}

func TestLiteralHighBitFallsBackToRabinKarp(t *testing.T) {
	pattern := string([]byte{'f', 0x80, 'o'})
	m := NewLiteral(pattern)
	if _, ok := m.(*rabinKarpMatcher); !ok {
		t.Fatalf("expected rabinKarpMatcher for high-bit pattern, got %T", m)
	}
	line := []byte{'x', 'f', 0x80, 'o', 'y'}
	if !m.Match(line) {
		t.Error("expected Rabin-Karp matcher to find embedded pattern")
	}
	if m.Match([]byte("no match here")) {
		t.Error("expected no match on unrelated line")
	}
}

func TestLiteralRegularPatternUsesBMH(t *testing.T) {
	m := NewLiteral("needle")
	if _, ok := m.(*bmhMatcher); !ok {
		t.Fatalf("expected bmhMatcher, got %T", m)
	}
}

func TestBMHSkipTable(t *testing.T) {
	m := newBMH([]byte("abcabd"))
	// 'b' last occurs at index 4 (0-based), psize=6 -> skip = 6-4-1 = 1
	if m.skip['b'] != 1 {
		t.Errorf("skip['b'] = %d, want 1", m.skip['b'])
	}
	// 'x' never occurs -> skip = psize = 6
	if m.skip['x'] != 6 {
		t.Errorf("skip['x'] = %d, want 6", m.skip['x'])
	}
}

func TestInsensitive(t *testing.T) {
	m := NewInsensitive("HELLO")
	cases := []struct {
		line string
		want bool
	}{
		{"hello", true},
		{"Hello World", true},
		{"HELLO", true},
		{"goodbye", false},
	}
	for _, c := range cases {
		if got := m.Match([]byte(c.line)); got != c.want {
			t.Errorf("Match(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestInsensitiveNonASCIIByIdentity(t *testing.T) {
	// Non-ASCII bytes compare by identity, not folded.
	m := NewInsensitive(string([]byte{0xE9})) // Latin-1 'é', not ASCII alpha
	if !m.Match([]byte{0xE9}) {
		t.Error("expected identical non-ASCII byte to match")
	}
}

func TestRegexpMatch(t *testing.T) {
	m, err := NewRegexp("fo+")
	if err != nil {
		t.Fatalf("NewRegexp: %v", err)
	}
	if !m.Match([]byte("foo bar foooo")) {
		t.Error("expected regexp to match")
	}
	if m.Match([]byte("bar baz")) {
		t.Error("expected no match")
	}
}

func TestRegexpInvalidIsError(t *testing.T) {
	if _, err := NewRegexp("("); err == nil {
		t.Fatal("expected error for invalid regexp")
	}
}

func TestSuggestOrdersByDistance(t *testing.T) {
	got := Suggest([]string{"hellp", "jello", "completely different"}, "hello", 2)
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if got[0] != "hellp" && got[0] != "jello" {
		t.Errorf("unexpected nearest suggestion %q", got[0])
	}
}

func TestSuggestRespectsMax(t *testing.T) {
	got := Suggest([]string{"aaaa", "aaab", "aaac"}, "aaaa", 1)
	if len(got) != 1 {
		t.Fatalf("got %d, want 1", len(got))
	}
}

func TestCompileHighlightFindsLiteralOccurrence(t *testing.T) {
	re, err := CompileHighlight("needle", false)
	if err != nil {
		t.Fatalf("CompileHighlight: %v", err)
	}
	loc := re.FindStringIndex("find the needle here")
	if loc == nil {
		t.Fatal("expected a match")
	}
	if got := "find the needle here"[loc[0]:loc[1]]; got != "needle" {
		t.Errorf("highlighted span = %q, want %q", got, "needle")
	}
}

func TestCompileHighlightInsensitiveIgnoresCase(t *testing.T) {
	re, err := CompileHighlight("needle", true)
	if err != nil {
		t.Fatalf("CompileHighlight: %v", err)
	}
	if re.FindStringIndex("NEEDLE in a haystack") == nil {
		t.Error("expected case-insensitive match")
	}
}

func TestCompileHighlightInvalidPatternIsError(t *testing.T) {
	if _, err := CompileHighlight("(", false); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}
