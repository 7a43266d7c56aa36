package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-orgfix/internal/fileutil"
)

// Sentinel errors for page discovery.
var (
	ErrNoInput = errors.New("no input specified")
	ErrNoHTML  = errors.New("no HTML files found")
	ErrNotHTML = errors.New("file must have .html or .htm extension")
)

// PageToFix represents a single page to process.
type PageToFix struct {
	InputPath  string
	OutputPath string
	URLPath    string // Path the page is served under, e.g. "/Journal/May2025.html"
}

// site locates pages: where they are read from and written to, and the
// URL prefix they are served under.
type site struct {
	root      string // Site directory; URL paths are relative to it
	outputDir string // Empty = rewrite in place
	basePath  string
}

// discoverPages finds all HTML pages under inputPath. A directory input
// becomes the site root; a file input is resolved against s.root.
// Hidden directories, temporary files, and an output directory nested in
// the input are skipped.
func discoverPages(inputPath string, s site) ([]PageToFix, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsHTML(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrNotHTML, filepath.Ext(inputPath))
		}
		return []PageToFix{s.page(inputPath)}, nil
	}

	s.root = inputPath
	skipDir := ""
	if s.outputDir != "" {
		skipDir, _ = filepath.Abs(s.outputDir)
	}

	var pages []PageToFix
	err = filepath.WalkDir(inputPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		if d.IsDir() {
			if p != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if skipDir != "" {
				if abs, err := filepath.Abs(p); err == nil && abs == skipDir && p != inputPath {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !fileutil.IsHTML(p) || fileutil.IsTempFile(p) {
			return nil
		}
		pages = append(pages, s.page(p))
		return nil
	})

	return pages, err
}

// page maps a file to its output path and URL path.
func (s site) page(file string) PageToFix {
	return PageToFix{
		InputPath:  file,
		OutputPath: s.outputPath(file),
		URLPath:    s.urlPath(file),
	}
}

// urlPath returns the URL path of a file. Files outside the site root use
// their own slash-separated path, so a page exported to
// "export/Journal/May2025.html" still resolves as a Journal page.
func (s site) urlPath(file string) string {
	if s.root != "" {
		if p, err := fileutil.SiteURLPath(s.root, file, s.basePath); err == nil {
			return p
		}
	}
	base := "/" + strings.Trim(s.basePath, "/")
	return path.Join(base, filepath.ToSlash(filepath.Clean(file)))
}

// outputPath returns where a processed file is written: the file itself
// when rewriting in place, its root-relative path under the output
// directory otherwise.
func (s site) outputPath(file string) string {
	if s.outputDir == "" {
		return file
	}
	if fileutil.IsHTML(s.outputDir) {
		return s.outputDir
	}
	if s.root != "" {
		rel, err := filepath.Rel(s.root, file)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.Join(s.outputDir, rel)
		}
	}
	return filepath.Join(s.outputDir, filepath.Base(file))
}
