package matcher

import (
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestDistance bounds how different a candidate line may be from
// the pattern and still be offered as a "did you mean" hint, matching
// the teacher's threshold for its own suggestion feature.
const maxSuggestDistance = 3

// Suggest returns up to max lines from candidates whose edit distance to
// pattern is within maxSuggestDistance, nearest first. It is a UI-only
// convenience called after a subsearch yields no matches, and is never
// called from the search pipeline itself.
func Suggest(candidates []string, pattern string, max int) []string {
	if max <= 0 || pattern == "" {
		return nil
	}

	type scored struct {
		line string
		dist int
	}

	target := []rune(strings.ToLower(pattern))
	var hits []scored
	for _, line := range candidates {
		dist := levenshtein.DistanceForStrings([]rune(strings.ToLower(line)), target, levenshtein.DefaultOptions)
		if dist <= maxSuggestDistance {
			hits = append(hits, scored{line: line, dist: dist})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	seen := make(map[string]struct{}, len(hits))
	out := make([]string, 0, max)
	for _, h := range hits {
		if _, dup := seen[h.line]; dup {
			continue
		}
		seen[h.line] = struct{}{}
		out = append(out, h.line)
		if len(out) >= max {
			break
		}
	}
	return out
}
