package config

import "fmt"

// CLIResult is the raw product of command-line parsing, before it is
// merged with the ngprc result into a Config.
type CLIResult struct {
	Help           bool
	Insensitive    bool
	Raw            bool
	Regex          bool
	FollowSymlinks bool

	// Extensions reflects -t (append) and -o (reset-then-add), applied
	// in argument order exactly as ngp.c's switch does.
	Extensions []string
	// ExtensionsReset is true if a -o was seen; the specific-filename
	// list from ngprc must be dropped too, matching ngp.c's -o case
	// which frees both lists before falling through to -t.
	ExtensionsReset bool

	ExcludedDirs []string // raw paths from -x, resolved to inodes later

	Pattern string
	Root    string // empty means "current directory", resolved by caller
}

// parseArgs implements the getopt(3) string "hio:t:refx:" by hand: the
// stdlib flag package has no notion of repeatable short options, of an
// option that both takes a value and falls through to another case
// (ngp.c's -o), or of bundling flags with positional PATTERN/PATH
// arguments interspersed. args excludes the program name (argv[0]).
func parseArgs(args []string) (CLIResult, error) {
	var r CLIResult
	var positional []string

	i := 0
	for i < len(args) {
		arg := args[i]

		if len(arg) < 2 || arg[0] != '-' || arg == "-" {
			positional = append(positional, arg)
			i++
			continue
		}

		flags := arg[1:]
		for j := 0; j < len(flags); j++ {
			switch flags[j] {
			case 'h':
				r.Help = true
			case 'i':
				r.Insensitive = true
			case 'r':
				r.Raw = true
			case 'e':
				r.Regex = true
			case 'f':
				r.FollowSymlinks = true
			case 'o':
				val, rest, err := takeValue(args, &i, flags, j)
				if err != nil {
					return CLIResult{}, err
				}
				// -o resets the extension (and specific-file) lists,
				// then behaves exactly like -t with this value.
				r.Extensions = nil
				r.ExtensionsReset = true
				r.Extensions = append(r.Extensions, val)
				flags = rest
				j = -1
				continue
			case 't':
				val, rest, err := takeValue(args, &i, flags, j)
				if err != nil {
					return CLIResult{}, err
				}
				r.Extensions = append(r.Extensions, val)
				flags = rest
				j = -1
				continue
			case 'x':
				val, rest, err := takeValue(args, &i, flags, j)
				if err != nil {
					return CLIResult{}, err
				}
				r.ExcludedDirs = append(r.ExcludedDirs, val)
				flags = rest
				j = -1
				continue
			default:
				return CLIResult{}, fmt.Errorf("config: unknown option -%c", flags[j])
			}
		}
		i++
	}

	if r.Help {
		return r, nil
	}

	switch len(positional) {
	case 0:
		return CLIResult{}, fmt.Errorf("config: missing pattern")
	case 1:
		r.Pattern = positional[0]
	default:
		r.Pattern = positional[0]
		r.Root = positional[1]
	}

	return r, nil
}

// takeValue resolves the argument for an option at flags[j]: either the
// remainder of the current cluster (-tEXT) or, if the cluster ends
// there, the next argv element (-t EXT). It returns the value, the
// portion of flags still to be processed after this option (empty,
// since a valued option consumes the rest of its cluster), and advances
// *i past any consumed next-argv element.
func takeValue(args []string, i *int, flags string, j int) (value string, rest string, err error) {
	if j+1 < len(flags) {
		return flags[j+1:], "", nil
	}
	if *i+1 >= len(args) {
		return "", "", fmt.Errorf("config: option -%c requires an argument", flags[j])
	}
	*i++
	return args[*i], "", nil
}
