package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-orgfix"
	"github.com/alnah/go-orgfix/internal/config"
	"github.com/alnah/go-orgfix/internal/hints"
	"github.com/alnah/go-orgfix/internal/log"
)

// loadConfig resolves the configuration for a command: the file named by
// the flag or ORGFIX_CONFIG (or the default lookup when neither is set),
// with environment overrides applied and validated. Returns the path of the
// loaded file, empty when defaults were used.
func loadConfig(flagConfig string, env *Environment) (*config.Config, string, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	var (
		cfg  *config.Config
		path string
		err  error
	)
	if name != "" {
		cfg, err = config.LoadConfig(name)
		path = name
	} else {
		cfg, path, err = config.LoadDefault()
	}
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && name != "" {
			return nil, "", fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.CandidatePaths(name)))
		}
		return nil, "", err
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("environment: %w", err)
	}
	return cfg, path, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *processFlags, cfg *config.Config) {
	if flags.basePath != "" {
		cfg.Site.BasePath = flags.basePath
	}
	if flags.linkLayout != "" {
		cfg.Links.Layout = flags.linkLayout
	}
	if flags.monthlyClass != "" {
		cfg.Links.MonthlyClass = flags.monthlyClass
	}
	if flags.noTables {
		disabled := false
		cfg.Tables.Enabled = &disabled
	}
	if flags.noLinks {
		disabled := false
		cfg.Links.Enabled = &disabled
	}
}

// mergeOutputFlags merges output destination flags into config.
func mergeOutputFlags(output string, workers int, cfg *config.Config) error {
	if err := validateWorkers(workers); err != nil {
		return err
	}
	if output != "" {
		cfg.Output.Dir = output
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return nil
}

// validateWorkers checks that an explicit worker count is within bounds.
// Zero selects the automatic count.
func validateWorkers(n int) error {
	if n < 0 || n > orgfix.MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", orgfix.ErrInvalidWorkers, n, orgfix.MaxWorkers)
	}
	return nil
}

// validateDebounce parses a --debounce value within the config bounds.
func validateDebounce(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: --debounce: %v", ErrUsage, err)
	}
	if d < 0 || d > config.MaxDebounce {
		return 0, fmt.Errorf("%w: --debounce must be between 0 and %s, got %s", ErrUsage, config.MaxDebounce, d)
	}
	return d, nil
}

// newLogger builds the command logger from the common flags.
func newLogger(w io.Writer, flags commonFlags) (*slog.Logger, error) {
	return log.New(w, log.Options{
		Verbose: flags.verbose,
		Quiet:   flags.quiet,
		Format:  flags.logFormat,
	})
}

// newProcessor creates a Processor configured from cfg.
func newProcessor(cfg *config.Config, logger *slog.Logger) (*orgfix.Processor, error) {
	proc, err := orgfix.NewProcessor(
		orgfix.WithTables(cfg.Tables.IsEnabled()),
		orgfix.WithLinks(cfg.Links.IsEnabled()),
		orgfix.WithLinkLayout(cfg.Links.Layout),
		orgfix.WithMonthlyClass(cfg.Links.MonthlyClass),
		orgfix.WithLogger(logger),
	)
	if err != nil {
		if errors.Is(err, orgfix.ErrInvalidLinkLayout) {
			return nil, fmt.Errorf("%w%s", err, hints.ForLinkLayout())
		}
		return nil, err
	}
	return proc, nil
}
