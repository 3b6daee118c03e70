package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ngrcCandidates mirrors ngp.c's get_config lookup order: the system
// file first, then a local override.
var ngrcCandidates = []string{"/etc/ngprc", "./ngprc"}

// ngprcResult is what the config file contributes before CLI flags are
// layered on top.
type ngprcResult struct {
	editorTemplate string
	files          []string
	extensions     []string
}

// loadNgprc opens the first candidate ngprc file it finds and parses
// it. A missing config file is fatal, per spec.md 6.
func loadNgprc(editorBasename string) (ngprcResult, error) {
	var f *os.File
	var err error
	for _, path := range ngrcCandidates {
		f, err = os.Open(path)
		if err == nil {
			break
		}
	}
	if f == nil {
		return ngprcResult{}, fmt.Errorf("config: failed finding ngprc config file")
	}
	defer f.Close()

	var r ngprcResult
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, ";") {
			continue
		}

		value, ok := quotedValue(line)
		if !ok {
			continue
		}

		// The editor line is matched by the EDITOR basename appearing
		// anywhere in the line, same as ngp.c's strstr(configline, ptr_env).
		if strings.Contains(line, editorBasename) {
			r.editorTemplate = value
		}
		if strings.Contains(line, "files") {
			// Tokenize the quoted substring just captured, not a stale
			// pointer left over from a previous line (ngp.c's get_config
			// passes an uninitialized local into strtok_r here; spec.md 9
			// calls that a bug and specifies this, the intended, behavior).
			r.files = append(r.files, fields(value)...)
		}
		if strings.Contains(line, "extensions") {
			r.extensions = append(r.extensions, fields(value)...)
		}
	}
	if err := scanner.Err(); err != nil {
		return ngprcResult{}, fmt.Errorf("config: reading ngprc: %w", err)
	}

	return r, nil
}

// quotedValue extracts the text between the first and second double
// quote on the line.
func quotedValue(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}

func fields(s string) []string {
	return strings.Fields(s)
}
