package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing errors.
var ErrUsage = errors.New("usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// processFlags holds flags that configure page processing.
type processFlags struct {
	basePath     string
	linkLayout   string
	monthlyClass string
	noTables     bool
	noLinks      bool
}

// fixFlags holds all flags for the fix command.
type fixFlags struct {
	common  commonFlags
	process processFlags
	output  string
	workers int
	url     string
	dryRun  bool
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	common   commonFlags
	process  processFlags
	output   string
	workers  int
	debounce string
}

// identifyFlags holds all flags for the identify command.
type identifyFlags struct {
	config   string
	root     string
	basePath string
}

// configFlags holds all flags for the config command.
type configFlags struct {
	config   string
	defaults bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show unchanged pages and debug logs")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

// addProcessFlags adds page processing flags to a FlagSet.
func addProcessFlags(fs *flag.FlagSet, f *processFlags) {
	fs.StringVar(&f.basePath, "base-path", "", "URL prefix the site is served under")
	fs.StringVar(&f.linkLayout, "link-layout", "", "daily entry path layout")
	fs.StringVar(&f.monthlyClass, "monthly-class", "", "class added to monthly page bodies")
	fs.BoolVar(&f.noTables, "no-tables", false, "skip table normalization")
	fs.BoolVar(&f.noLinks, "no-links", false, "skip monthly page marking and day links")
}

// addOutputFlags adds output destination flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, output *string, workers *int) {
	fs.StringVarP(output, "output", "o", "", "output directory (default: rewrite in place)")
	fs.IntVarP(workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// buildFixFlagSet creates a FlagSet with all fix command flags.
func buildFixFlagSet(f *fixFlags) *flag.FlagSet {
	fs := newFlagSet("fix")
	addOutputFlags(fs, &f.output, &f.workers)
	fs.StringVar(&f.url, "url", "", "URL path of a single page (overrides the site-relative path)")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "report changes without writing")
	addCommonFlags(fs, &f.common)
	addProcessFlags(fs, &f.process)
	return fs
}

// buildWatchFlagSet creates a FlagSet with all watch command flags.
func buildWatchFlagSet(f *watchFlags) *flag.FlagSet {
	fs := newFlagSet("watch")
	addOutputFlags(fs, &f.output, &f.workers)
	fs.StringVar(&f.debounce, "debounce", "", "quiet period before processing changes (e.g. 200ms)")
	addCommonFlags(fs, &f.common)
	addProcessFlags(fs, &f.process)
	return fs
}

// buildIdentifyFlagSet creates a FlagSet with all identify command flags.
func buildIdentifyFlagSet(f *identifyFlags) *flag.FlagSet {
	fs := newFlagSet("identify")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.root, "root", "", "site root for file arguments")
	fs.StringVar(&f.basePath, "base-path", "", "URL prefix the site is served under")
	return fs
}

// buildConfigFlagSet creates a FlagSet with all config command flags.
func buildConfigFlagSet(f *configFlags) *flag.FlagSet {
	fs := newFlagSet("config")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.defaults, "default", false, "print the built-in defaults")
	return fs
}

// newFlagSet creates a silent FlagSet: errors are returned, never printed,
// so runMain reports them once with the right exit code.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseArgs parses args into fs and returns the positional arguments.
// flag.ErrHelp is returned unwrapped for -h/--help.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	return fs.Args(), nil
}

// parseFixFlags parses fix command flags and returns positional args.
func parseFixFlags(args []string) (*fixFlags, []string, error) {
	f := &fixFlags{}
	positional, err := parseArgs(buildFixFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string) (*watchFlags, []string, error) {
	f := &watchFlags{}
	positional, err := parseArgs(buildWatchFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parseIdentifyFlags parses identify command flags and returns positional args.
func parseIdentifyFlags(args []string) (*identifyFlags, []string, error) {
	f := &identifyFlags{}
	positional, err := parseArgs(buildIdentifyFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parseConfigFlags parses config command flags and returns positional args.
func parseConfigFlags(args []string) (*configFlags, []string, error) {
	f := &configFlags{}
	positional, err := parseArgs(buildConfigFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}
