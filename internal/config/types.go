// Package config produces the three artifacts spec.md 4.H calls for —
// an editor template, filter lists, and flags — by merging the ngprc
// config file with command-line arguments, in that order.
package config

import "github.com/gquere/ngp/internal/fsid"

// Mode selects the matcher variant a context is built with.
type Mode int

const (
	ModeLiteral Mode = iota
	ModeInsensitive
	ModeRegexp
)

// Config is the fully resolved configuration for one run: the merge of
// ngprc and the command line.
type Config struct {
	Pattern string
	Root    string
	Mode    Mode

	Raw            bool
	FollowSymlinks bool

	Extensions []string
	Specifics  []string
	Excluded   map[fsid.ID]struct{}

	// EditorTemplate is the format string of spec.md 4.H: four
	// positional parameters (line_number, file_path, sanitized_pattern,
	// case_flag_suffix), substituted with fmt.Sprintf before being
	// handed to the shell.
	EditorTemplate string
}
