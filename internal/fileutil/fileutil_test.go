package fileutil_test

// Notes:
// - WriteFileAtomic write and close error branches are not tested because
//   triggering disk write failures is platform-specific.
// - Permission assertions are skipped on Windows, where file modes only carry
//   the read-only bit.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/alnah/go-orgfix/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic page replacement
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "May2025.html")
		if err := fileutil.WriteFileAtomic(path, []byte("<p>new</p>"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading result: %v", err)
		}
		if string(got) != "<p>new</p>" {
			t.Errorf("content = %q, want %q", got, "<p>new</p>")
		}
	})

	t.Run("replaces existing file and keeps its mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fileutil.WriteFileAtomic(path, []byte("fixed"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "fixed" {
			t.Errorf("content = %q, want %q", got, "fixed")
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if info.Mode().Perm() != 0o600 {
				t.Errorf("mode = %v, want 0600", info.Mode().Perm())
			}
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := fileutil.WriteFileAtomic(filepath.Join(dir, "a.html"), []byte("a"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 1 || entries[0].Name() != "a.html" {
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("directory contains %v, want only a.html", names)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "a.html")
		if err := fileutil.WriteFileAtomic(path, []byte("a"), 0o644); err == nil {
			t.Error("WriteFileAtomic() error = nil, want error for missing directory")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if err := fileutil.WriteFileAtomic("", []byte("a"), 0o644); !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("WriteFileAtomic(\"\") error = %v, want ErrEmptyPath", err)
		}
	})
}

func TestIsTempFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{".orgfix-123456.tmp", true},
		{filepath.Join("public", "Journal", ".orgfix-9.tmp"), true},
		{"May2025.html", false},
		{".orgfix-notes.html", false},
		{"backup.tmp", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsTempFile(tt.name); got != tt.want {
			t.Errorf("IsTempFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - File existence check
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.html")
	if err := os.WriteFile(testFile, []byte("content"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	testDir := filepath.Join(tempDir, "testdir")
	if err := os.Mkdir(testDir, 0o755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file returns true", testFile, true},
		{"directory returns false", testDir, false},
		{"nonexistent path returns false", filepath.Join(tempDir, "nonexistent"), false},
		{"empty path returns false", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.FileExists(tt.path)
			if got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsHTML / TestIsURL - Name classification
// ---------------------------------------------------------------------------

func TestIsHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"page.html", true},
		{"PAGE.HTML", true},
		{"old.htm", true},
		{"Journal/July 2024.html", true},
		{"style.css", false},
		{"notes.org", false},
		{"html", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsHTML(tt.path); got != tt.want {
			t.Errorf("IsHTML(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s    string
		want bool
	}{
		{"https://example.com/Journal/May2025.html", true},
		{"http://localhost:8080/", true},
		{"/Journal/May2025.html", false},
		{"public/Journal/May2025.html", false},
		{"ftp://example.com", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsURL(tt.s); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestSiteURLPath - File to URL path mapping
// ---------------------------------------------------------------------------

func TestSiteURLPath(t *testing.T) {
	t.Parallel()

	root := filepath.Join("site", "public")

	tests := []struct {
		name     string
		file     string
		basePath string
		want     string
		wantErr  error
	}{
		{
			name: "top-level page",
			file: filepath.Join(root, "index.html"),
			want: "/index.html",
		},
		{
			name: "nested page with space",
			file: filepath.Join(root, "Journal", "2024", "July 2024.html"),
			want: "/Journal/2024/July 2024.html",
		},
		{
			name:     "base path",
			file:     filepath.Join(root, "Notes", "june_2024-1.html"),
			basePath: "/blog",
			want:     "/blog/Notes/june_2024-1.html",
		},
		{
			name:     "base path with trailing slash",
			file:     filepath.Join(root, "Journal", "May2025.html"),
			basePath: "/blog/",
			want:     "/blog/Journal/May2025.html",
		},
		{
			name:    "outside root",
			file:    filepath.Join("site", "other", "a.html"),
			wantErr: fileutil.ErrOutsideRoot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fileutil.SiteURLPath(root, tt.file, tt.basePath)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("SiteURLPath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SiteURLPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SiteURLPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
