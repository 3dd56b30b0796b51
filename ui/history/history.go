// Package history keeps the command history of the Bubble Tea input.
//
// Files are one entry per line, the format chzyer/readline writes, so both
// session kinds share a history file. Files in libedit format are read too.
package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Cookie used by libedit/readline format.
const cookie = "_HiStOrY_V2_"

// DefaultLimit is the number of entries kept when none is given.
const DefaultLimit = 1000

// History is a list of submitted lines with a browsing cursor.
type History struct {
	entries []string
	limit   int
	pos     int    // len(entries) when not browsing
	draft   string // line being typed before browsing started
}

// New returns a History holding at most limit entries.
func New(entries []string, limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	h := &History{limit: limit}
	for _, e := range entries {
		h.Add(e)
	}
	return h
}

// Add appends line unless it is blank or repeats the last entry, and stops
// browsing.
func (h *History) Add(line string) {
	line = strings.TrimSpace(line)
	if line != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != line) {
		h.entries = append(h.entries, line)
		if len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
	}
	h.pos = len(h.entries)
	h.draft = ""
}

// Prev moves to the previous entry. current is the line being edited; it is
// restored when Next walks past the newest entry.
func (h *History) Prev(current string) (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	h.pos--
	return h.entries[h.pos], true
}

// Next moves to the next entry, or back to the draft.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// Entries returns the entries, oldest first.
func (h *History) Entries() []string { return h.entries }

// Load reads history entries from path. A missing file is an empty history.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file '%s': %w", path, err)
	}
	defer f.Close()
	return read(f)
}

func read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var entries []string
	libedit := false
	for first := true; scanner.Scan(); first = false {
		line := scanner.Bytes()
		if first && string(line) == cookie {
			libedit = true
			continue
		}
		if libedit {
			line = decodeOctal(line)
		}
		if len(bytes.TrimSpace(line)) > 0 {
			entries = append(entries, string(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning history file: %w", err)
	}
	return entries, nil
}

// decodeOctal converts libedit's octal escapes (e.g., \040 for space) back to bytes.
func decodeOctal(line []byte) []byte {
	var result []byte
	for i := 0; i < len(line); {
		if line[i] == '\\' && i+3 < len(line) && isOctal(line[i+1:i+4]) {
			d := line[i+1 : i+4]
			result = append(result, (d[0]-'0')<<6|(d[1]-'0')<<3|(d[2]-'0'))
			i += 4
			continue
		}
		result = append(result, line[i])
		i++
	}
	return result
}

func isOctal(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '7' {
			return false
		}
	}
	return true
}

// Save writes entries to path, one per line. Entries containing newlines are
// skipped.
func Save(entries []string, path string) error {
	if path == "" {
		return errors.New("history save path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file '%s' for writing: %w", path, err)
	}
	if err := write(entries, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func write(entries []string, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if strings.ContainsAny(e, "\r\n") {
			continue
		}
		if _, err := bw.WriteString(e + "\n"); err != nil {
			return fmt.Errorf("writing history entry: %w", err)
		}
	}
	return bw.Flush()
}
