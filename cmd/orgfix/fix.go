package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/alnah/go-orgfix"
	"github.com/alnah/go-orgfix/internal/config"
	"github.com/alnah/go-orgfix/internal/hints"
)

// ErrURLNeedsFile is returned when --url is combined with a directory.
var ErrURLNeedsFile = errors.New("--url requires a single file")

// runFix orchestrates one pass over a page or site tree.
func runFix(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFixFlags(args)
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

	proc, err := newProcessor(cfg, logger)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	pages, err := discoverPages(inputPath, siteFor(cfg))
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("%w in %s%s", ErrNoHTML, inputPath, hints.ForNoHTMLFound(inputPath))
	}
	if flags.url != "" {
		if len(pages) != 1 || pages[0].InputPath != inputPath {
			return fmt.Errorf("%w: %s is a directory", ErrURLNeedsFile, inputPath)
		}
		urlPath, err := decodeURLPath(flags.url)
		if err != nil {
			return err
		}
		pages[0].URLPath = urlPath
	}

	workers := orgfix.ResolveWorkers(cfg.Workers)
	logger.Debug("processing pages", "count", len(pages), "workers", workers, "dry_run", flags.dryRun)

	results := processBatch(ctx, proc, pages, batchOptions{
		workers: workers,
		dryRun:  flags.dryRun,
		now:     env.Now,
	})

	failed := printResults(results, flags.common.quiet, flags.common.verbose, flags.dryRun, env.Stdout, env.Stderr)
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPagesFailed, failed, len(results))
	}
	return nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one path, got %d", ErrUsage, len(args))
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Site.Root != "" {
		return cfg.Site.Root, nil
	}
	return "", ErrNoInput
}

// siteFor returns the page locations described by cfg.
func siteFor(cfg *config.Config) site {
	return site{
		root:      cfg.Site.Root,
		outputDir: cfg.Output.Dir,
		basePath:  cfg.Site.BasePath,
	}
}

// decodeURLPath returns the decoded path of a --url value, which may be an
// escaped path or an absolute URL.
func decodeURLPath(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: --url: %v", ErrUsage, err)
	}
	return u.Path, nil
}
