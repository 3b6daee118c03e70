package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gquere/ngp/internal/matcher"
	"github.com/gquere/ngp/internal/store"
	"github.com/gquere/ngp/internal/walker"
)

func runSearch(t *testing.T, dir string, m matcher.Matcher, opts walker.Options) *store.Store {
	t.Helper()
	st := store.New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	Run(ctx, dir, m, opts, st)
	if st.Status() != store.Done {
		t.Fatalf("store never reached Done")
	}
	return st
}

func matchTexts(st *store.Store) []string {
	var out []string
	for i := 0; i < st.Len(); i++ {
		e, _ := st.EntryAt(i)
		if e.Kind == store.KindLine {
			out = append(out, e.Text)
		}
	}
	return out
}

// TestSingleFileLiteralMatch covers the common S1-style scenario: one
// small file, a handful of matching lines.
func TestSingleFileLiteralMatch(t *testing.T) {
	dir := t.TempDir()
	content := "alpha\nneedle one\nbravo\nneedle two\ncharlie\n"
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m := matcher.NewLiteral("needle")
	st := runSearch(t, dir, m, walker.Options{Raw: true})

	if st.MatchLines() != 2 {
		t.Fatalf("MatchLines() = %d, want 2", st.MatchLines())
	}
	got := matchTexts(st)
	want := []string{"needle one", "needle two"}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("line %d = %q, want %q", i, got[i], w)
		}
	}
}

// TestNoMatchesProducesNoHeaders ensures a file with no matching line
// never gets a header appended (invariant 1 of spec.md 8).
func TestNoMatchesProducesNoHeaders(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("nothing here\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m := matcher.NewLiteral("needle")
	st := runSearch(t, dir, m, walker.Options{Raw: true})

	if st.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", st.Len())
	}
}

// TestMatchStraddlingTheSplitPoint is the S4 scenario: a large file of
// filler lines with a single match a little past its midpoint, verifying
// that the match line is found exactly once and that line numbers remain
// globally correct across the half boundary.
func TestMatchStraddlingTheSplitPoint(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	const nbLines = 40000
	// The split falls after line 20118, so this line is scanned by the
	// second worker and needs the first half's line-count offset.
	const needleLine = nbLines/2 + 500
	for i := 1; i <= nbLines; i++ {
		if i == needleLine {
			buf.WriteString("the needle line\n")
		} else {
			fmt.Fprintf(&buf, "filler line number %d padded out a bit more\n", i)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "big.txt"), buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m := matcher.NewLiteral("the needle line")
	st := runSearch(t, dir, m, walker.Options{Raw: true})

	if st.MatchLines() != 1 {
		t.Fatalf("MatchLines() = %d, want 1", st.MatchLines())
	}
	var found store.Entry
	for i := 0; i < st.Len(); i++ {
		e, _ := st.EntryAt(i)
		if e.Kind == store.KindLine {
			found = e
		}
	}
	if found.Line != needleLine {
		t.Fatalf("matched line number = %d, want %d", found.Line, needleLine)
	}
}

// TestExtensionFilterExcludesOtherFiles confirms the walker's filter
// options are honored end to end through the pipeline.
func TestExtensionFilterExcludesOtherFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.c"), []byte("needle\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.py"), []byte("needle\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m := matcher.NewLiteral("needle")
	st := runSearch(t, dir, m, walker.Options{Extensions: []string{".c"}})

	if st.MatchLines() != 1 {
		t.Fatalf("MatchLines() = %d, want 1", st.MatchLines())
	}
	e0, _ := st.EntryAt(0)
	if e0.Kind != store.KindFile || !strings.HasSuffix(e0.Path, "a.c") {
		t.Fatalf("header = %+v, want a.c", e0)
	}
}

// TestRegexMatch is the S6 scenario at the pipeline level.
func TestRegexMatch(t *testing.T) {
	dir := t.TempDir()
	content := "foo bar\nfoooo baz\nquux\n"
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m, err := matcher.NewRegexp("fo+")
	if err != nil {
		t.Fatalf("NewRegexp: %v", err)
	}
	st := runSearch(t, dir, m, walker.Options{Raw: true})

	if st.MatchLines() != 2 {
		t.Fatalf("MatchLines() = %d, want 2", st.MatchLines())
	}
}

// TestMultipleFilesPreserveHeaderOrdering checks that results across
// several files each get their own header, with no interleaving of
// lines from different files under the wrong header.
func TestMultipleFilesPreserveHeaderOrdering(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("needle in "+name+"\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	m := matcher.NewLiteral("needle")
	st := runSearch(t, dir, m, walker.Options{Raw: true})

	seenFiles := map[string]bool{}
	var headerOrder []string
	var lastHeaderPath string
	haveHeader := false
	for i := 0; i < st.Len(); i++ {
		e, _ := st.EntryAt(i)
		if e.Kind == store.KindFile {
			lastHeaderPath = e.Path
			headerOrder = append(headerOrder, filepath.Base(e.Path))
			haveHeader = true
			continue
		}
		if !haveHeader {
			t.Fatalf("match line at %d precedes any header", i)
		}
		if !strings.Contains(e.Text, filepath.Base(lastHeaderPath)) {
			t.Fatalf("line %q does not belong under header %q", e.Text, lastHeaderPath)
		}
		seenFiles[lastHeaderPath] = true
	}
	if len(seenFiles) != 3 {
		t.Fatalf("saw headers for %d files, want 3", len(seenFiles))
	}
	// The walker emits directory entries in name order, and headers must
	// appear in the store in that same order.
	if strings.Join(headerOrder, ",") != "a.txt,b.txt,c.txt" {
		t.Fatalf("header order = %v, want [a.txt b.txt c.txt]", headerOrder)
	}
}
