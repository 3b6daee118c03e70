// Command ngp is the entrypoint of the interactive recursive pattern
// search tool described in spec.md: it resolves configuration, starts
// the search engine, and drives the Bubble Tea UI until the user quits
// or a fatal error occurs.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gquere/ngp/internal/config"
	"github.com/gquere/ngp/internal/engine"
	"github.com/gquere/ngp/internal/ui"
)

const usage = `usage: ngp [options] PATTERN [PATH]

  -i        case-insensitive literal search
  -r        raw mode: scan every regular file
  -t EXT    add EXT to the extension allow-list (repeatable)
  -o EXT    replace the extension/specific-file lists with {EXT}
  -e        treat PATTERN as a regular expression
  -x DIR    exclude DIR (repeatable)
  -f        follow symlinks
  -h        show this help
`

func main() {
	os.Exit(run())
}

// run resolves configuration, starts the engine, and runs the UI to
// completion. It returns the process exit code rather than calling
// os.Exit directly so deferred cleanup always executes, per spec.md 7's
// SIGINT-triggers-cleanup disposition.
func run() int {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, config.ErrUsage) {
			fmt.Fprint(os.Stdout, usage)
			return 0
		}
		fmt.Fprintf(os.Stderr, "ngp: %v\n", err)
		return 1
	}

	eng := engine.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SIGINT triggers the same cleanup path as 'q' at the root context
	// (spec.md 5: "process-level SIGINT -> clean-exit handler").
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := eng.Start(sigCtx); err != nil {
		fmt.Fprintf(os.Stderr, "ngp: %v\n", err)
		return 1
	}

	model := ui.New(eng, cancel)
	program := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(program)

	go func() {
		<-sigCtx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ngp: %v\n", err)
		return 1
	}

	return 0
}
