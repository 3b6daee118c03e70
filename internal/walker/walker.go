// Package walker implements the depth-first directory traversal of
// spec.md 4.C: it honors the extension/specific-filename allow-lists,
// the excluded-directory set, and the follow-symlinks flag, and emits
// eligible file paths one at a time over a depth-1 buffered channel.
package walker

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gquere/ngp/internal/fsid"
)

// Options bundles the filter sets of spec.md 3 ("Filter sets").
type Options struct {
	Raw            bool
	FollowSymlinks bool
	Extensions     []string // lowercase suffixes, e.g. ".c"
	Specifics      []string // exact basenames, e.g. "Makefile"
	Excluded       map[fsid.ID]struct{}
}

// Walk starts a traversal of root in its own goroutine and returns a
// channel of eligible file paths (buffer size 1, the "bounded queue of
// depth 1" of spec.md 4.C). The channel is closed once the walk
// completes or ctx is canceled. If root is itself a regular file (not a
// directory), it is emitted unconditionally, mirroring ngp.c's
// isfile(d->directory) branch in lookup_thread.
func Walk(ctx context.Context, root string, opts Options) <-chan string {
	out := make(chan string, 1)

	go func() {
		defer close(out)

		emit := func(path string) bool {
			select {
			case out <- path:
				return true
			case <-ctx.Done():
				return false
			}
		}

		info, err := os.Stat(root)
		if err != nil {
			return
		}
		if !info.IsDir() {
			emit(root)
			return
		}

		walkDir(ctx, root, opts, emit)
	}()

	return out
}

func isSpecialDir(name string) bool {
	switch name {
	case ".", "..", ".git", ".svn":
		return true
	default:
		return false
	}
}

func eligible(path string, opts Options) bool {
	if opts.Raw {
		return true
	}
	base := filepath.Base(path)
	for _, spec := range opts.Specifics {
		if base == spec {
			return true
		}
	}
	// Extensions in opts.Extensions are already lowercase (spec.md 3's
	// "Extension allow-list"); compare by exact suffix, case-sensitively,
	// matching ngp.c's lookup_file strcmp rather than folding base too.
	for _, ext := range opts.Extensions {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

// walkDir recurses into dir, reporting eligible files to emit. It returns
// false once emit (or ctx) signals that traversal should stop.
func walkDir(ctx context.Context, dir string, opts Options, emit func(string) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Directory unreadable: silently skip this subtree, per spec.md 7.
		return true
	}

	for _, de := range entries {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		name := de.Name()
		path := filepath.Join(dir, name)

		if de.IsDir() {
			if isSpecialDir(name) {
				continue
			}
			if info, err := os.Lstat(path); err == nil {
				if id, ok := fsid.Of(info); ok {
					if _, excluded := opts.Excluded[id]; excluded {
						continue
					}
				}
			}
			if !walkDir(ctx, path, opts, emit) {
				return false
			}
			continue
		}

		linfo, err := de.Info()
		if err != nil {
			continue
		}

		if linfo.Mode()&os.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				continue
			}
			target, err := os.Stat(path)
			if err != nil || target.IsDir() || !target.Mode().IsRegular() {
				continue
			}
			if !eligible(path, opts) {
				continue
			}
			if !emit(path) {
				return false
			}
			continue
		}

		if !linfo.Mode().IsRegular() {
			continue
		}
		if !eligible(path, opts) {
			continue
		}
		if !emit(path) {
			return false
		}
	}
	return true
}
