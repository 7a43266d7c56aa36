package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: orgfix <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  fix         Post-process exported pages")
	fmt.Fprintln(w, "  watch       Post-process pages as they change")
	fmt.Fprintln(w, "  identify    Show the month and year of pages")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'orgfix help <command>' for details on a specific command.")
}

// printProcessFlags prints the flags shared by fix and watch.
func printProcessFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: rewrite in place)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto, max 8)")
	fmt.Fprintln(w, "      --base-path <path>    URL prefix the site is served under")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Processing:")
	fmt.Fprintln(w, "      --no-tables           Skip table normalization")
	fmt.Fprintln(w, "      --no-links            Skip monthly page marking and day links")
	fmt.Fprintln(w, "      --link-layout <s>     Daily entry path layout")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, dddd, ddd, DD, D")
	fmt.Fprintln(w, "                            Use [text] to escape literals: /[Journal]/YYYY/...")
	fmt.Fprintln(w, "      --monthly-class <s>   Class added to monthly page bodies")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show unchanged pages, timing, and debug logs")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
}

// printFixUsage prints usage for the fix command.
func printFixUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: orgfix fix [path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Normalize tables and link monthly pages to their daily entries.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  path     Site directory or .html file (default: site.root from config)")
	fmt.Fprintln(w)
	printProcessFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Single page:")
	fmt.Fprintln(w, "      --url <path>          URL path the page is served under")
	fmt.Fprintln(w, "  -n, --dry-run             Report changes without writing")
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: orgfix watch [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Process a site tree, then reprocess pages as they are created or written.")
	fmt.Fprintln(w, "Stops on Ctrl+C.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  dir      Site directory (default: site.root from config)")
	fmt.Fprintln(w)
	printProcessFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before processing changes (default 200ms)")
}

// printIdentifyUsage prints usage for the identify command.
func printIdentifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: orgfix identify <path-or-url>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the month and year of monthly pages, or \"not monthly\".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --root <dir>          Site root for file arguments")
	fmt.Fprintln(w, "      --base-path <path>    URL prefix the site is served under")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: orgfix config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --default             Print the built-in defaults")
}

// runHelp prints help for a specific command.
// Returns false for an unknown command.
func runHelp(args []string, env *Environment) bool {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return true
	}

	switch args[0] {
	case "fix":
		printFixUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "identify":
		printIdentifyUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: orgfix version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: orgfix help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return false
	}
	return true
}

// commandUsage returns the usage printer for a command with flags.
func commandUsage(cmd string) func(io.Writer) {
	switch cmd {
	case "fix":
		return printFixUsage
	case "watch":
		return printWatchUsage
	case "identify":
		return printIdentifyUsage
	case "config":
		return printConfigUsage
	default:
		return printUsage
	}
}
