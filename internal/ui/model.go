// Package ui implements the interactive terminal loop of spec.md 4.F: a
// Bubble Tea program that renders a search context's result store live,
// handles Vim-style and arrow-key navigation, and drives subsearches and
// the editor launcher.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gquere/ngp/internal/config"
	"github.com/gquere/ngp/internal/editor"
	"github.com/gquere/ngp/internal/engine"
	"github.com/gquere/ngp/internal/matcher"
	"github.com/gquere/ngp/internal/store"
)

// inputMode distinguishes the two interaction modes of spec.md 4.F/4.G:
// browsing the active store, or typing a new subsearch pattern.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeSubsearchPrompt
)

const tickInterval = 10 * time.Millisecond

// reservedRows is the number of lines Update subtracts from the
// terminal height for the status bar and (when active) the subsearch
// prompt line.
const reservedRows = 2

// Model is the Bubble Tea model driving one ngp run. It is used by
// pointer so the editor launcher can hold a stable *tea.Program
// reference set once at startup.
type Model struct {
	engine  *engine.Engine
	cancel  context.CancelFunc
	program *tea.Program

	mode     inputMode
	vp       viewport
	width    int
	height   int
	tick     int
	quitting bool

	promptInput string
	suggestions []string
	statusMsg   string
}

// New builds a Model around an already-constructed engine; the caller
// is expected to have called engine.Start before beginning the
// program's event loop (Init does not start the engine).
func New(e *engine.Engine, cancel context.CancelFunc) *Model {
	return &Model{engine: e, cancel: cancel, height: 24}
}

// SetProgram wires the *tea.Program back into the model after
// construction, so the editor launcher can suspend/resume it. Call this
// once, immediately after tea.NewProgram.
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

type tickMsg time.Time
type storeUpdatedMsg struct{}
type editorDoneMsg struct{ err error }

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitForNotify subscribes to the active store's notification channel
// for exactly one wakeup; Update re-issues this command after each
// delivery to keep listening (spec.md 4.D: "single in-process
// notification; the UI may also poll").
func waitForNotify(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		<-st.Notify()
		return storeUpdatedMsg{}
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if ctx := m.engine.Active(); ctx != nil {
		cmds = append(cmds, waitForNotify(ctx.Store))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		h := msg.Height - reservedRows
		if h < 1 {
			h = 1
		}
		m.height = h
		return m, nil

	case tickMsg:
		m.tick++
		return m, tickCmd()

	case storeUpdatedMsg:
		if ctx := m.engine.Active(); ctx != nil {
			return m, waitForNotify(ctx.Store)
		}
		return m, nil

	case editorDoneMsg:
		m.statusMsg = ""
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("editor: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeSubsearchPrompt {
		return m.updatePrompt(msg)
	}
	return m.updateBrowse(msg)
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.engine.Active()
	if ctx == nil {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case "q":
		if !m.engine.AtRoot() {
			m.engine.Pop()
			m.vp = firstSelectable(m.engine.Active().Store, m.height)
			m.suggestions = nil
			m.statusMsg = ""
			return m, nil
		}
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case "up", "k":
		m.vp = cursorUp(m.vp, m.height, ctx.Store)

	case "down", "j":
		m.vp = cursorDown(m.vp, m.height, ctx.Store)

	case "pgup", "K":
		m.vp = pageUp(m.vp, m.height, ctx.Store)

	case "pgdown", "J":
		m.vp = pageDown(m.vp, m.height, ctx.Store)

	case "enter", "p":
		if ctx.Store.Len() == 0 {
			return m, nil
		}
		return m, m.launchEditorCmd(ctx, m.vp.selected())

	case "/":
		m.mode = modeSubsearchPrompt
		m.promptInput = ""
		m.suggestions = nil
		m.statusMsg = ""
	}

	return m, nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = modeBrowse
		m.promptInput = ""

	case "enter":
		if m.promptInput == "" {
			m.mode = modeBrowse
			return m, nil
		}
		m.submitSubsearch(m.promptInput)
		m.mode = modeBrowse
		m.promptInput = ""

	case "backspace":
		if len(m.promptInput) > 0 {
			r := []rune(m.promptInput)
			m.promptInput = string(r[:len(r)-1])
		}

	default:
		if len(msg.Runes) > 0 {
			m.promptInput += string(msg.Runes)
		}
	}

	return m, nil
}

// submitSubsearch pushes a new subsearch context, or, on a rejected
// pattern, leaves the parent context active and reports the rejection —
// per spec.md 7, "surfaced as 'subsearch rejected' returning to parent".
func (m *Model) submitSubsearch(pattern string) {
	parent := m.engine.Active()
	if parent == nil {
		return
	}
	candidates := matchTexts(parent.Store)

	if err := m.engine.PushSubsearch(pattern); err != nil {
		m.statusMsg = "subsearch rejected: " + err.Error()
		return
	}

	child := m.engine.Active()
	m.vp = firstSelectable(child.Store, m.height)
	m.statusMsg = ""

	if child.Store.MatchLines() == 0 {
		m.suggestions = matcher.Suggest(candidates, pattern, 5)
	} else {
		m.suggestions = nil
	}
}

func matchTexts(st *store.Store) []string {
	entries := st.ReadPrefix(st.Len())
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Kind == store.KindLine {
			out = append(out, e.Text)
		}
	}
	return out
}

func (m *Model) launchEditorCmd(ctx *engine.Context, index int) tea.Cmd {
	fileIdx := ctx.Store.FindContainingFile(index)
	fileEntry, ok1 := ctx.Store.EntryAt(fileIdx)
	lineEntry, ok2 := ctx.Store.EntryAt(index)
	if !ok1 || !ok2 {
		return nil
	}

	template := m.engine.Config().EditorTemplate
	pattern := ctx.Pattern
	insensitive := ctx.Mode == config.ModeInsensitive
	program := m.program

	return func() tea.Msg {
		err := editor.Launch(program, template, lineEntry.Line, fileEntry.Path, pattern, insensitive)
		return editorDoneMsg{err: err}
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	ctx := m.engine.Active()
	if ctx == nil {
		return "starting search...\n"
	}

	var b strings.Builder
	b.WriteString(m.renderEntries(ctx))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(ctx))

	if m.mode == modeSubsearchPrompt {
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("subsearch: " + m.promptInput))
	} else if len(m.suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(suggestionStyle.Render("did you mean: " + strings.Join(m.suggestions, ", ")))
	} else if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.statusMsg))
	}

	return b.String()
}

func (m *Model) renderEntries(ctx *engine.Context) string {
	st := ctx.Store
	n := st.Len()
	if n == 0 {
		return "(no matches yet)"
	}

	end := m.vp.top + m.height
	if end > n {
		end = n
	}

	var b strings.Builder
	for i := m.vp.top; i < end; i++ {
		e, ok := st.EntryAt(i)
		if !ok {
			break
		}

		var line string
		switch e.Kind {
		case store.KindFile:
			line = headerStyle.Render(e.Path)
		case store.KindLine:
			lineNo := lineNumberStyle.Render(fmt.Sprintf("%d:", e.Line))
			line = lineNo + " " + highlightPattern(e.Text, ctx)
		}

		if i == m.vp.selected() {
			line = selectedStyle.Render(line)
		}

		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// highlightPattern re-applies the active matcher's pattern as a regex
// highlight over text, the terminal analogue of ngp.c's red
// highlighted-pattern color pair. It is best-effort: a pattern that
// cannot compile as a regex (a raw literal with regex metacharacters)
// is rendered unhighlighted rather than treated as an error.
func highlightPattern(text string, ctx *engine.Context) string {
	re, err := matcher.CompileHighlight(ctx.Pattern, ctx.Mode == config.ModeInsensitive)
	if err != nil {
		return text
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + matchStyle.Render(text[loc[0]:loc[1]]) + text[loc[1]:]
}

func (m *Model) renderStatus(ctx *engine.Context) string {
	var status string
	if ctx.Store.Status() == store.Scanning {
		status = spinnerFrame(m.tick)
	} else {
		status = "Done."
	}

	depth := ""
	if !m.engine.AtRoot() {
		depth = fmt.Sprintf(" [subsearch depth %d]", m.engine.Depth()-1)
	}

	return statusStyle.Render(fmt.Sprintf("%s  Hits: %d%s", status, ctx.Store.MatchLines(), depth))
}
