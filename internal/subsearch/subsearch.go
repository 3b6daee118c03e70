// Package subsearch implements the child-context derivation of spec.md
// 4.G: re-filtering an existing result store against a
// new pattern to produce a smaller, immutable store. It ports ngp.c's
// subsearch() function, which buffers a header tentatively and only
// commits it once a line beneath it actually matches.
package subsearch

import (
	"github.com/gquere/ngp/internal/matcher"
	"github.com/gquere/ngp/internal/store"
)

// Filter derives a child store from parent by keeping only the lines
// that match pattern, compiled as a regex (subsearches are always
// regex, per spec.md 4.G, regardless of the parent's own mode). The
// parent is read via a point-in-time snapshot: if parent is still
// scanning, the child reflects whatever prefix has been appended so
// far, not the eventual full result.
//
// The returned store is fully populated and marked Done before Filter
// returns: subsearch construction is synchronous.
func Filter(parent *store.Store, pattern string) (*store.Store, matcher.Matcher, error) {
	m, err := matcher.NewRegexp(pattern)
	if err != nil {
		return nil, nil, err
	}

	child := store.New()

	entries := parent.ReadPrefix(parent.Len())

	var pendingHeader string
	haveHeader := false

	for _, e := range entries {
		switch e.Kind {
		case store.KindFile:
			pendingHeader = e.Path
			haveHeader = true

		case store.KindLine:
			if !m.Match([]byte(e.Text)) {
				continue
			}
			if haveHeader {
				child.AppendHeader(pendingHeader)
				haveHeader = false
			}
			child.AppendLine(e.Text, e.Line)
		}
	}

	child.SetDone()
	return child, m, nil
}
