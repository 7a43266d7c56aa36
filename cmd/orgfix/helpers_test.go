package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"
)

const (
	// monthlyPage is an exported monthly page whose table draws its header
	// boundary with a separator row.
	monthlyPage = `<!DOCTYPE html>
<html><head><title>May 2025</title></head><body><table><tr><td>Day</td><td>Note</td></tr><tr><td>---</td><td>---</td></tr><tr><td>7</td><td>x</td></tr></table></body></html>`

	// plainPage has nothing to fix.
	plainPage = `<!DOCTYPE html>
<html><head><title>About</title></head><body><p>About</p></body></html>`

	dayLink = `<a href="/Journal/2025/05-May/07-May-2025-Wednesday.html">7</a>`
)

// syncBuffer is a bytes.Buffer safe for concurrent writes and reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testEnv returns an Environment with captured output, a fixed clock, and
// vars as the only environment variables.
func testEnv(vars map[string]string) (*Environment, *syncBuffer, *syncBuffer) {
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	fixed := time.Date(2025, time.May, 7, 12, 0, 0, 0, time.UTC)

	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	sort.Strings(environ)

	return &Environment{
		Now:     func() time.Time { return fixed },
		Stdout:  stdout,
		Stderr:  stderr,
		Getenv:  func(k string) string { return vars[k] },
		Environ: func() []string { return environ },
	}, stdout, stderr
}

// writeSite creates files (relative path -> content) under a new temp dir
// and returns the dir.
func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		writeFile(t, filepath.Join(root, rel), content)
	}
	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// emptyConfig writes an empty config file so tests never pick up an
// orgfix.yaml from the working directory or the user's config home.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orgfix.yaml")
	writeFile(t, path, "{}\n")
	return path
}
