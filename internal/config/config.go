package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gquere/ngp/internal/fsid"
)

// editorEnvBasename returns the basename of $EDITOR, or "vim" if unset,
// matching ngp.c's get_config.
func editorEnvBasename() string {
	env := os.Getenv("EDITOR")
	if env == "" {
		return "vim"
	}
	return filepath.Base(env)
}

// Load parses args (excluding the program name) and the ngprc config
// file, merges them, and resolves excluded directories to filesystem
// identifiers. A missing config file or an invalid regex pattern is
// fatal, per spec.md 6/7.
func Load(args []string) (Config, error) {
	cli, err := parseArgs(args)
	if err != nil {
		return Config{}, err
	}
	if cli.Help {
		return Config{}, ErrUsage
	}

	basename := editorEnvBasename()
	rc, err := loadNgprc(basename)
	if err != nil {
		return Config{}, err
	}
	if rc.editorTemplate == "" {
		return Config{}, fmt.Errorf("config: no editor template found in ngprc for %q", basename)
	}

	cfg := Config{
		Pattern:        cli.Pattern,
		Root:           cli.Root,
		Raw:            cli.Raw,
		FollowSymlinks: cli.FollowSymlinks,
		EditorTemplate: rc.editorTemplate,
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}

	switch {
	case cli.Regex:
		cfg.Mode = ModeRegexp
	case cli.Insensitive:
		cfg.Mode = ModeInsensitive
	default:
		cfg.Mode = ModeLiteral
	}

	if cfg.Mode == ModeRegexp {
		if _, err := regexp.Compile(cli.Pattern); err != nil {
			return Config{}, fmt.Errorf("config: bad regexp: %w", err)
		}
	}

	if cli.ExtensionsReset {
		cfg.Extensions = cli.Extensions
		// -o also clears the specific-files list inherited from ngprc,
		// mirroring ngp.c's -o case freeing mainsearch_attr.firstspec.
		cfg.Specifics = nil
	} else {
		cfg.Extensions = append(append([]string{}, rc.extensions...), cli.Extensions...)
		cfg.Specifics = rc.files
	}

	if len(cli.ExcludedDirs) > 0 {
		cfg.Excluded = make(map[fsid.ID]struct{}, len(cli.ExcludedDirs))
		for _, dir := range cli.ExcludedDirs {
			id, err := fsid.FromPath(dir)
			if err != nil {
				continue // unresolvable exclude path: silently ignored, as in ngp.c get_inode_from_path
			}
			cfg.Excluded[id] = struct{}{}
		}
	}

	return cfg, nil
}

// ErrUsage is returned by Load when -h was given; the caller should
// print usage and exit 0 rather than treating it as a fatal error.
var ErrUsage = fmt.Errorf("config: usage requested")
