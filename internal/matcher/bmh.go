package matcher

import "bytes"

// NewLiteral builds the case-sensitive literal matcher described in
// spec.md 4.A.1, choosing among four strategies the way ngp.c's
// pre_bmh/bmh pair does:
//   - an empty pattern matches every line;
//   - a single-byte pattern is searched directly (ngp.c's strstr_wrapper
//     fallback for psize==1);
//   - a pattern containing a high-bit byte falls back to a rolling-hash
//     (Rabin-Karp) scan that stays 8-bit clean;
//   - otherwise, Boyer-Moore-Horspool with a 256-entry skip table.
func NewLiteral(pattern string) Matcher {
	p := []byte(pattern)

	if len(p) == 0 {
		return alwaysMatch{}
	}
	if len(p) == 1 {
		return byteMatcher{b: p[0]}
	}
	for _, b := range p {
		if b >= 0x80 {
			return newRabinKarp(p)
		}
	}
	return newBMH(p)
}

type alwaysMatch struct{}

func (alwaysMatch) Match([]byte) bool { return true }

type byteMatcher struct{ b byte }

func (m byteMatcher) Match(line []byte) bool {
	return bytes.IndexByte(line, m.b) >= 0
}

// bmhMatcher implements Boyer-Moore-Horspool exactly as ngp.c's pre_bmh/bmh:
// skip[c] holds psize for any byte that never occurs in pattern[0:psize-1],
// else the distance from its last occurrence to the end of the pattern.
type bmhMatcher struct {
	pattern []byte
	psize   int
	skip    [256]int
}

func newBMH(pattern []byte) *bmhMatcher {
	psize := len(pattern)
	m := &bmhMatcher{pattern: pattern, psize: psize}
	for i := range m.skip {
		m.skip[i] = psize
	}
	for i := 0; i < psize-1; i++ {
		m.skip[pattern[i]] = psize - i - 1
	}
	return m
}

func (m *bmhMatcher) Match(line []byte) bool {
	psize := m.psize
	tsize := len(line)

	i := 0
	for i <= tsize-psize {
		anchor := line[i+psize-1]
		if anchor == m.pattern[psize-1] && line[i] == m.pattern[0] {
			if bytes.Equal(line[i+1:i+psize-1], m.pattern[1:psize-1]) {
				return true
			}
		}

		if anchor < 0x80 {
			i += m.skip[anchor]
		} else {
			// High-bit anchor byte: it may be a multibyte continuation
			// byte, so advancing by the skip table could misindex into
			// the middle of a codepoint. Advance by the pattern length
			// instead until we're past the run of high-bit bytes.
			for i <= tsize-psize && line[i+psize-1] >= 0x80 {
				i += psize
			}
		}
	}
	return false
}

// rabinKarpMatcher is the rolling-hash fallback for patterns containing a
// byte with the high bit set, ported from ngp.c's pre_rabin_karp/
// rabin_karp (and its REHASH macro).
type rabinKarpMatcher struct {
	pattern []byte
	psize   int
	d       uint64
	hp      uint64
}

func newRabinKarp(pattern []byte) *rabinKarpMatcher {
	psize := len(pattern)
	m := &rabinKarpMatcher{pattern: pattern, psize: psize}
	m.d = uint64(1) << uint(psize-1)
	var hp uint64
	for _, b := range pattern {
		hp = (hp << 1) + uint64(b)
	}
	m.hp = hp
	return m
}

func (m *rabinKarpMatcher) Match(line []byte) bool {
	psize := m.psize
	tsize := len(line)
	if tsize < psize {
		return false
	}

	var ht uint64
	for i := 0; i < psize; i++ {
		ht = (ht << 1) + uint64(line[i])
	}

	for i := 0; i <= tsize-psize; i++ {
		if ht == m.hp && bytes.Equal(line[i:i+psize], m.pattern) {
			return true
		}
		if i+psize < tsize {
			ht = ((ht - uint64(line[i])*m.d) << 1) + uint64(line[i+psize])
		}
	}
	return false
}
