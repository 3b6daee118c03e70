// Package engine owns the single process-wide value the rest of the
// system is built around, replacing the mainsearch/current/semaphore
// globals of the original implementation with an explicit, passed-around
// value (spec.md 9, "Global mutable state").
package engine

import (
	"context"

	"github.com/gquere/ngp/internal/config"
	"github.com/gquere/ngp/internal/matcher"
	"github.com/gquere/ngp/internal/pipeline"
	"github.com/gquere/ngp/internal/store"
	"github.com/gquere/ngp/internal/subsearch"
	"github.com/gquere/ngp/internal/walker"
)

// Context is one entry of the search-context stack of spec.md 3: a
// pattern, its mode, the matcher it compiled to, and the store it feeds.
// Cursor state belongs to the UI, not here; Context only owns what
// search-context identity requires.
type Context struct {
	Pattern string
	Mode    config.Mode
	Matcher matcher.Matcher
	Root    string
	Store   *store.Store
}

// Engine is the process-wide value that owns the context stack. It
// replaces the father/child linked-context struct of spec.md 9 with an
// explicit slice, the top of which is always the active context.
type Engine struct {
	cfg   config.Config
	stack []*Context
}

// New builds an Engine from a resolved configuration. It does not start
// the root search; call Start for that.
func New(cfg config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Active returns the topmost (currently displayed) context, or nil if no
// search has been started yet.
func (e *Engine) Active() *Context {
	if len(e.stack) == 0 {
		return nil
	}
	return e.stack[len(e.stack)-1]
}

// Depth returns the number of contexts on the stack; 0 before Start, 1
// at the root, >1 inside nested subsearches.
func (e *Engine) Depth() int {
	return len(e.stack)
}

// Start compiles the configured matcher, pushes the root context, and
// launches the search pipeline in its own goroutine, returning
// immediately; the caller observes progress through the root context's
// store.
func (e *Engine) Start(ctx context.Context) error {
	m, err := matcher.New(e.cfg.Pattern, toMatcherMode(e.cfg.Mode))
	if err != nil {
		return err
	}

	root := &Context{
		Pattern: e.cfg.Pattern,
		Mode:    e.cfg.Mode,
		Matcher: m,
		Root:    e.cfg.Root,
		Store:   store.New(),
	}
	e.stack = []*Context{root}

	opts := walker.Options{
		Raw:            e.cfg.Raw,
		FollowSymlinks: e.cfg.FollowSymlinks,
		Extensions:     e.cfg.Extensions,
		Specifics:      e.cfg.Specifics,
		Excluded:       e.cfg.Excluded,
	}

	go pipeline.Run(ctx, root.Root, m, opts, root.Store)

	return nil
}

// PushSubsearch derives a new context by re-filtering the active
// context's store with pattern and pushes it onto the stack, making it
// active. It fails if pattern does not compile as a regex or if no
// search has been started yet; it may
// be called while the active store is still scanning, in which case the
// child is built from whatever prefix has been appended so far.
func (e *Engine) PushSubsearch(pattern string) error {
	parent := e.Active()
	if parent == nil {
		return errNoActiveContext
	}

	child, m, err := subsearch.Filter(parent.Store, pattern)
	if err != nil {
		return err
	}

	e.stack = append(e.stack, &Context{
		Pattern: pattern,
		Mode:    config.ModeRegexp,
		Matcher: m,
		Root:    parent.Root,
		Store:   child,
	})
	return nil
}

// Pop removes the active (topmost) context, making its parent active
// again. It is a no-op at the root.
func (e *Engine) Pop() {
	if len(e.stack) <= 1 {
		return
	}
	e.stack = e.stack[:len(e.stack)-1]
}

// AtRoot reports whether the active context is the root (no subsearch
// currently applied).
func (e *Engine) AtRoot() bool {
	return len(e.stack) <= 1
}

func toMatcherMode(m config.Mode) matcher.Mode {
	switch m {
	case config.ModeInsensitive:
		return matcher.ModeInsensitive
	case config.ModeRegexp:
		return matcher.ModeRegexp
	default:
		return matcher.ModeLiteral
	}
}

type engineError string

func (e engineError) Error() string { return string(e) }

const errNoActiveContext = engineError("engine: no active search context")
