package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-orgfix"
	"github.com/alnah/go-orgfix/internal/fileutil"
	"github.com/alnah/go-orgfix/internal/hints"
	"github.com/alnah/go-orgfix/internal/watch"
)

// runWatch processes a site tree once, then reprocesses pages as they are
// created or written until ctx is canceled.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(env.Stderr, flags.common)
	if err != nil {
		return err
	}

	cfg, cfgPath, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Debug("config loaded", "path", cfgPath)
	}

	mergeFlags(&flags.process, cfg)
	if err := mergeOutputFlags(flags.output, flags.workers, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	debounce := cfg.Watch.DebounceDuration()
	if flags.debounce != "" {
		if debounce, err = validateDebounce(flags.debounce); err != nil {
			return err
		}
	}

	proc, err := newProcessor(cfg, logger)
	if err != nil {
		return err
	}

	root, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: watch needs a directory, got %s", ErrUsage, root)
	}

	s := siteFor(cfg)
	s.root = root
	opts := batchOptions{
		workers: orgfix.ResolveWorkers(cfg.Workers),
		now:     env.Now,
	}
	quiet, verbose := flags.common.quiet, flags.common.verbose

	// Initial pass; failures are reported and watching still starts
	pages, err := discoverPages(root, s)
	if err != nil {
		return err
	}
	results := processBatch(ctx, proc, pages, opts)
	printResults(results, quiet, verbose, false, env.Stdout, env.Stderr)

	w, err := watch.New(root,
		watch.WithDebounce(debounce),
		watch.WithFilter(pageFilter(s.outputDir)),
		watch.WithLogger(logger),
	)
	if err != nil {
		if errors.Is(err, watch.ErrWatchLimit) {
			return fmt.Errorf("%w%s", err, hints.ForWatchLimit())
		}
		return err
	}
	defer func() { _ = w.Close() }()

	if !quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", root)
	}

	err = w.Run(ctx, func(ctx context.Context, paths []string) {
		batch := make([]PageToFix, 0, len(paths))
		for _, p := range paths {
			// Created then removed within one debounce window
			if !fileutil.FileExists(p) {
				continue
			}
			batch = append(batch, s.page(p))
		}
		printResults(processBatch(ctx, proc, batch, opts), quiet, verbose, false, env.Stdout, env.Stderr)
	})
	if err != nil {
		return err
	}

	logger.Debug("watch stopped", "root", root)
	return nil
}

// pageFilter keeps HTML pages, dropping temporary files and anything
// written under outputDir.
func pageFilter(outputDir string) func(string) bool {
	outAbs := ""
	if outputDir != "" {
		outAbs, _ = filepath.Abs(outputDir)
	}
	return func(p string) bool {
		if !fileutil.IsHTML(p) || fileutil.IsTempFile(p) {
			return false
		}
		if outAbs == "" {
			return true
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return true
		}
		return abs != outAbs && !strings.HasPrefix(abs, outAbs+string(filepath.Separator))
	}
}
