package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-orgfix"
	"github.com/alnah/go-orgfix/internal/fileutil"
	"github.com/alnah/go-orgfix/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: pages are served publicly
)

// Sentinel errors for batch operations.
var (
	ErrReadPage    = errors.New("failed to read page")
	ErrWritePage   = errors.New("failed to write page")
	ErrPagesFailed = errors.New("some pages failed")
)

// PageProcessor is the interface for the page processing service.
type PageProcessor interface {
	Process(ctx context.Context, input orgfix.Input) (*orgfix.Result, error)
}

// Compile-time interface implementation check.
var _ PageProcessor = (*orgfix.Processor)(nil)

// PageResult holds the outcome of a single page.
type PageResult struct {
	InputPath  string
	OutputPath string
	Result     *orgfix.Result // nil on error
	Written    bool
	Err        error
	Duration   time.Duration
}

// batchOptions groups parameters shared across batch and page processing.
type batchOptions struct {
	workers int
	dryRun  bool
	now     func() time.Time
}

// processBatch processes pages concurrently, at most opts.workers at a time.
// Results keep the order of pages. A failed page does not stop the others;
// a canceled context marks the pages not yet started as failed.
func processBatch(ctx context.Context, proc PageProcessor, pages []PageToFix, opts batchOptions) []PageResult {
	if len(pages) == 0 {
		return nil
	}

	results := make([]PageResult, len(pages))

	var g errgroup.Group
	g.SetLimit(max(1, opts.workers))

	for i, page := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = PageResult{InputPath: page.InputPath, Err: err}
				return nil
			}
			results[i] = fixPage(ctx, proc, page, opts)
			return nil
		})
	}

	_ = g.Wait() // page errors are carried in results
	return results
}

// fixPage processes a single page and returns the result.
// Pages rewritten in place are only written when their content changed;
// pages mirrored to an output directory are always written.
func fixPage(ctx context.Context, proc PageProcessor, page PageToFix, opts batchOptions) PageResult {
	now := opts.now
	if now == nil {
		now = time.Now
	}
	start := now()
	result := PageResult{
		InputPath:  page.InputPath,
		OutputPath: page.OutputPath,
	}
	finish := func(err error) PageResult {
		result.Err = err
		result.Duration = now().Sub(start)
		return result
	}

	content, err := os.ReadFile(page.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %w", ErrReadPage, err))
	}

	res, err := proc.Process(ctx, orgfix.Input{HTML: string(content), Path: page.URLPath})
	if err != nil {
		return finish(err)
	}
	result.Result = res

	inPlace := page.OutputPath == page.InputPath
	if opts.dryRun || (inPlace && !res.Changed) {
		return finish(nil)
	}

	if !inPlace {
		if err := os.MkdirAll(filepath.Dir(page.OutputPath), dirPermissions); err != nil {
			return finish(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
		}
	}
	if err := fileutil.WriteFileAtomic(page.OutputPath, []byte(res.HTML), filePermissions); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return finish(fmt.Errorf("%w: %w%s", ErrWritePage, err, hints.ForPermission()))
		}
		return finish(fmt.Errorf("%w: %w", ErrWritePage, err))
	}
	result.Written = true

	return finish(nil)
}

// printResults outputs page results and returns the number of failures.
func printResults(results []PageResult, quiet, verbose, dryRun bool, stdout, stderr io.Writer) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if !r.Result.Changed {
			if verbose {
				fmt.Fprintf(stdout, "Unchanged %s\n", r.InputPath)
			}
			continue
		}

		verb := "Fixed"
		if dryRun {
			verb = "Would fix"
		}
		line := fmt.Sprintf("%s %s (%d tables, %d links)", verb, r.InputPath, r.Result.TablesNormalized, r.Result.LinksAdded)
		if verbose {
			if r.OutputPath != r.InputPath {
				line += " -> " + r.OutputPath
			}
			line += fmt.Sprintf(" in %v", r.Duration.Round(time.Millisecond))
		}
		fmt.Fprintln(stdout, line)
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
