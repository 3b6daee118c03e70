package ui

import "github.com/gquere/ngp/internal/store"

// viewport is the pair (top, cursor) of spec.md 4.F: top is the index of
// the first entry currently displayed, cursor is the selection's offset
// within the visible page (0..height-1). The selected entry is always
// top+cursor, and the selection invariant of spec.md 4.F guarantees it
// never lands on a header once navigation settles.
type viewport struct {
	top    int
	cursor int
}

func isHeaderAt(st *store.Store, i int) bool {
	e, ok := st.EntryAt(i)
	return ok && e.Kind == store.KindFile
}

// selected returns the store index currently highlighted.
func (v viewport) selected() int {
	return v.top + v.cursor
}

// pageUp ports ngp.c's page_up: scroll back by one page, landing the
// cursor on the last row of the new page (or row 0 if already at the
// top of the store), then nudge off a header.
func pageUp(v viewport, height int, st *store.Store) viewport {
	if v.top == 0 {
		v.cursor = 0
	} else {
		v.cursor = height - 1
	}
	v.top -= height
	if v.top < 0 {
		v.top = 0
	}
	if isHeaderAt(st, v.selected()) {
		if v.top == 0 {
			// No page above to land on instead: nudge forward onto the
			// header's own first match line rather than off the top of
			// the store (ngp.c's page_up only guards the backward nudge
			// with *index != 0; invariant 7 requires the forward one).
			v.cursor++
		} else {
			v.cursor--
		}
	}
	return v
}

// pageDown ports ngp.c's page_down: scroll forward by one page, clamped
// to the last page, landing on row 0 (or the final entry's row if
// already on the last page), then nudge off a header.
func pageDown(v viewport, height int, st *store.Store) viewport {
	n := st.Len()
	if n == 0 {
		return v
	}

	var maxTop int
	if n%height == 0 {
		maxTop = n - height
	} else {
		maxTop = n - (n % height)
	}
	if maxTop < 0 {
		maxTop = 0
	}

	if v.top == maxTop {
		v.cursor = (n - 1) % height
	} else {
		v.cursor = 0
	}

	v.top += height
	if v.top > maxTop {
		v.top = maxTop
	}

	if isHeaderAt(st, v.selected()) {
		v.cursor++
	}
	return v
}

// cursorUp ports ngp.c's cursor_up: move the selection up one entry,
// skipping exactly one header, falling back to a page transition at the
// viewport's edge.
func cursorUp(v viewport, height int, st *store.Store) viewport {
	if v.cursor == 0 {
		return pageUp(v, height, st)
	}

	v.cursor--
	if isHeaderAt(st, v.selected()) {
		v.cursor--
	}
	if v.cursor < 0 {
		return pageUp(v, height, st)
	}
	return v
}

// cursorDown ports ngp.c's cursor_down: the downward analogue of
// cursorUp.
func cursorDown(v viewport, height int, st *store.Store) viewport {
	n := st.Len()
	if v.cursor == height-1 {
		return pageDown(v, height, st)
	}

	if v.cursor+v.top < n-1 {
		v.cursor++
	}
	if isHeaderAt(st, v.selected()) {
		v.cursor++
	}
	if v.cursor > height-1 {
		return pageDown(v, height, st)
	}
	return v
}

// firstSelectable returns the viewport that selects the earliest
// non-header entry, for initializing a freshly opened context.
func firstSelectable(st *store.Store, height int) viewport {
	v := viewport{}
	if isHeaderAt(st, v.selected()) {
		v.cursor = 1
	}
	return v
}
