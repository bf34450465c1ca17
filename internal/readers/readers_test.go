package readers

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "value"), "  hello world \nsecond line\n")

	line, ok := FirstLine(filepath.Join(dir, "value"))
	if !ok {
		t.Fatalf("expected read to succeed")
	}
	if line != "hello world" {
		t.Fatalf("unexpected line %q", line)
	}

	if _, ok := FirstLine(filepath.Join(dir, "missing")); ok {
		t.Fatalf("expected missing file to report absent")
	}
}

func TestInt64(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "num"), "45000\n")
	writeFile(t, filepath.Join(dir, "junk"), "not a number\n")
	writeFile(t, filepath.Join(dir, "empty"), "\n")

	if value, ok := Int64(filepath.Join(dir, "num")); !ok || value != 45000 {
		t.Fatalf("expected 45000, got %d ok=%v", value, ok)
	}
	if _, ok := Int64(filepath.Join(dir, "junk")); ok {
		t.Fatalf("expected malformed value to report absent")
	}
	if _, ok := Int64(filepath.Join(dir, "empty")); ok {
		t.Fatalf("expected empty file to report absent")
	}
}

func TestFirstExistingInt64(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "second"), "7\n")

	value, ok := FirstExistingInt64(filepath.Join(dir, "first"), filepath.Join(dir, "second"))
	if !ok || value != 7 {
		t.Fatalf("expected fallback to second candidate, got %d ok=%v", value, ok)
	}

	if _, ok := FirstExistingInt64(filepath.Join(dir, "none")); ok {
		t.Fatalf("expected absent when no candidate exists")
	}
}

func TestDirEntriesSorted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		writeFile(t, filepath.Join(dir, name), "")
	}

	entries := DirEntries(dir)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"alpha", "mid", "zeta"}
	for i, entry := range entries {
		if filepath.Base(entry) != want[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, want[i], filepath.Base(entry))
		}
	}

	if got := DirEntries(filepath.Join(dir, "missing")); len(got) != 0 {
		t.Fatalf("expected empty list for missing dir, got %v", got)
	}
}

func TestParseFloat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  float64
		ok    bool
	}{
		{" 42.5 ", 42.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"[Not Supported]", 0, false},
		{"garbage", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseFloat(tc.input)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseFloat(%q) = %v ok=%v, want %v ok=%v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
