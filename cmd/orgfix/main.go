package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-orgfix/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS before workers are sized, logging only with -v.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		if looksLikeSite(cmd) {
			fmt.Fprintf(env.Stderr, "did you mean: orgfix fix %s\n", cmd)
		}
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch cmd {
	case "fix":
		err = runFix(ctx, rest, env)
	case "watch":
		err = runWatch(ctx, rest, env)
	case "identify":
		err = runIdentify(rest, env)
	case "config":
		err = runConfig(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "orgfix %s\n", Version)
	case "help", "-h", "--help":
		if !runHelp(rest, env) {
			return ExitUsage
		}
	}

	if errors.Is(err, flag.ErrHelp) {
		commandUsage(cmd)(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(env.Stderr, "Run 'orgfix help %s' for usage.\n", cmd)
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether arg names an orgfix command.
func isCommand(arg string) bool {
	switch arg {
	case "fix", "watch", "identify", "config", "completion",
		"version", "--version", "help", "-h", "--help":
		return true
	}
	return false
}

// looksLikeSite reports whether arg is an HTML file or an existing
// directory, i.e. a fix argument given without the command.
func looksLikeSite(arg string) bool {
	if fileutil.IsHTML(arg) {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}
