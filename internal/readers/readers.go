// Package readers provides the small best-effort OS read primitives the
// collectors are built from. Every function degrades to an absent result
// instead of returning an error: a missing file, an unreadable file and a
// malformed value are all treated the same way.
package readers

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const commandTimeout = 2 * time.Second

// FirstLine returns the first line of the file, trimmed.
func FirstLine(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	line := string(data)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line), true
}

// Int64 parses the first line of the file as a signed integer.
func Int64(path string) (int64, bool) {
	line, ok := FirstLine(path)
	if !ok || line == "" {
		return 0, false
	}
	value, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// FirstExistingInt64 returns the value of the first candidate path that
// yields a parseable integer.
func FirstExistingInt64(paths ...string) (int64, bool) {
	for _, path := range paths {
		if value, ok := Int64(path); ok {
			return value, true
		}
	}
	return 0, false
}

// DirEntries lists the directory as sorted absolute paths. A missing or
// unreadable directory yields an empty list.
func DirEntries(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths
}

// CommandRunner captures stdout of a subprocess. Implementations return an
// empty string on any failure; callers never learn whether the binary was
// missing or merely printed nothing.
type CommandRunner func(name string, args ...string) string

// RunCommand is the default CommandRunner. It bounds the subprocess with a
// timeout so a hung tool cannot stall the sampling loop forever.
func RunCommand(name string, args ...string) string {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return ""
	}
	return string(out)
}

// ParseFloat parses a trimmed numeric field, treating the sentinel strings
// vendor tools print for missing values as absent.
func ParseFloat(input string) (float64, bool) {
	cleaned := strings.TrimSpace(input)
	if cleaned == "" {
		return 0, false
	}
	switch strings.ToLower(cleaned) {
	case "n/a", "na", "[not supported]", "[unknown error]":
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
