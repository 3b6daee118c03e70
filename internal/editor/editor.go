// Package editor implements the collaborator contract of spec.md 4.I: it
// expands the configured editor template for one match, suspends the
// terminal UI, and runs the result through the host shell synchronously.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Sanitize escapes '/' and '\'' with a preceding backslash so the
// pattern survives an editor search command, porting ngp.c's
// vim_sanitize byte-for-byte.
func Sanitize(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '/' || c == '\'' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Launch substitutes template's four positional parameters — line
// number, file path, sanitized pattern, case-flag suffix — and runs the
// result via the host shell, suspending p's terminal control for the
// duration. The editor's exit code is ignored, per spec.md 4.I.
func Launch(p *tea.Program, template string, line int, path, pattern string, insensitive bool) error {
	caseSuffix := ""
	if insensitive {
		caseSuffix = "\\c"
	}

	command := fmt.Sprintf(template, line, path, Sanitize(pattern), caseSuffix)

	if err := p.ReleaseTerminal(); err != nil {
		return err
	}
	defer p.RestoreTerminal()

	cmd := exec.Command("sh", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	_ = cmd.Run() // exit code ignored, per spec.md 4.I

	return nil
}
