package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed argument values (e.g., shells)
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.html")
	TakesDirs   bool     // accepts a directory argument
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"log-format": {Values: []string{"text", "json"}},
	"config":     {FileGlob: "*.yaml,*.yml"},
	"output":     {IsDir: true},
	"root":       {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "fix",
			Desc:        "Post-process exported pages",
			Flags:       extractFlagsFromFlagSet(buildFixFlagSet(&fixFlags{})),
			TakesFiles:  true,
			FilePattern: "*.html,*.htm",
			TakesDirs:   true,
		},
		{
			Name:      "watch",
			Desc:      "Post-process pages as they change",
			Flags:     extractFlagsFromFlagSet(buildWatchFlagSet(&watchFlags{})),
			TakesDirs: true,
		},
		{
			Name:        "identify",
			Desc:        "Show the month and year of pages",
			Flags:       extractFlagsFromFlagSet(buildIdentifyFlagSet(&identifyFlags{})),
			TakesFiles:  true,
			FilePattern: "*.html,*.htm",
		},
		{
			Name:  "config",
			Desc:  "Print the effective configuration",
			Flags: extractFlagsFromFlagSet(buildConfigFlagSet(&configFlags{})),
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"fix", "watch", "identify", "config", "version", "completion"},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer) error {
	bw := bufio.NewWriter(w)
	commands := getCommands()

	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}

	fmt.Fprintln(bw, "# bash completion for orgfix")
	fmt.Fprintln(bw, "_orgfix_completions() {")
	fmt.Fprintln(bw, "    local cur prev cmd")
	fmt.Fprintln(bw, `    cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintln(bw, `    prev="${COMP_WORDS[COMP_CWORD-1]}"`)
	fmt.Fprintln(bw, `    cmd="${COMP_WORDS[1]}"`)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "    if [[ ${COMP_CWORD} -eq 1 ]]; then")
	fmt.Fprintf(bw, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	fmt.Fprintln(bw, "        return")
	fmt.Fprintln(bw, "    fi")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, `    case "$cmd" in`)
	for _, c := range commands {
		fmt.Fprintf(bw, "        %s)\n", c.Name)
		writeBashFlagValues(bw, c.Flags)

		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				words = append(words, "-"+f.Short)
			}
		}
		words = append(words, c.Args...)

		if len(c.Args) > 0 {
			fmt.Fprintf(bw, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(words, " "))
			fmt.Fprintln(bw, "            ;;")
			continue
		}
		fmt.Fprintln(bw, `            if [[ "$cur" == -* ]]; then`)
		fmt.Fprintf(bw, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(words, " "))
		fmt.Fprintln(bw, "                return")
		fmt.Fprintln(bw, "            fi")
		switch {
		case c.TakesFiles:
			fmt.Fprintln(bw, `            COMPREPLY=($(compgen -f -- "$cur"))`)
		case c.TakesDirs:
			fmt.Fprintln(bw, `            COMPREPLY=($(compgen -d -- "$cur"))`)
		}
		fmt.Fprintln(bw, "            ;;")
	}
	fmt.Fprintln(bw, "    esac")
	fmt.Fprintln(bw, "}")
	fmt.Fprintln(bw, "complete -F _orgfix_completions orgfix")

	return bw.Flush()
}

// writeBashFlagValues completes the value of the previous flag, if it takes one.
func writeBashFlagValues(bw *bufio.Writer, flags []flagDef) {
	var cases []string
	for _, f := range flags {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		switch f.Type {
		case flagEnum:
			cases = append(cases, fmt.Sprintf("                %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;", pattern, strings.Join(f.Values, " ")))
		case flagFile:
			cases = append(cases, fmt.Sprintf("                %s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;", pattern))
		case flagDir:
			cases = append(cases, fmt.Sprintf("                %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;", pattern))
		case flagString, flagInt:
			cases = append(cases, fmt.Sprintf("                %s) return ;;", pattern))
		}
	}
	if len(cases) == 0 {
		return
	}
	fmt.Fprintln(bw, `            case "$prev" in`)
	for _, line := range cases {
		fmt.Fprintln(bw, line)
	}
	fmt.Fprintln(bw, "            esac")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer) error {
	bw := bufio.NewWriter(w)
	commands := getCommands()

	fmt.Fprintln(bw, "#compdef orgfix")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "_orgfix() {")
	fmt.Fprintln(bw, "    local -a commands")
	fmt.Fprintln(bw, "    commands=(")
	for _, c := range commands {
		fmt.Fprintf(bw, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	fmt.Fprintln(bw, "    )")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(bw, "        _describe 'command' commands")
	fmt.Fprintln(bw, "        return")
	fmt.Fprintln(bw, "    fi")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "    case ${words[2]} in")
	for _, c := range commands {
		fmt.Fprintf(bw, "        %s)\n", c.Name)
		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:argument:(%s)'", strings.Join(c.Args, " ")))
		case c.TakesFiles:
			specs = append(specs, fmt.Sprintf(`'*:file:_files -g "%s"'`, zshGlob(c.FilePattern)))
		case c.TakesDirs:
			specs = append(specs, "'1:directory:_files -/'")
		}
		if len(specs) > 0 {
			fmt.Fprintf(bw, "            _arguments \\\n                %s\n", strings.Join(specs, " \\\n                "))
		}
		fmt.Fprintln(bw, "            ;;")
	}
	fmt.Fprintln(bw, "    esac")
	fmt.Fprintln(bw, "}")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, `_orgfix "$@"`)

	return bw.Flush()
}

// zshFlagSpec returns the _arguments spec for a flag.
func zshFlagSpec(f flagDef) string {
	names := "--" + f.Long
	if f.Short != "" {
		names = fmt.Sprintf("{-%s,--%s}", f.Short, f.Long)
	}
	desc := zshEscape(f.Desc)

	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(`:file:_files -g "%s"`, zshGlob(f.FileGlob))
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ":"
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'%s'[%s]%s'", f.Short, f.Long, names, desc, action)
	}
	return fmt.Sprintf("'%s[%s]%s'", names, desc, action)
}

// zshGlob converts "*.yaml,*.yml" to "*.(yaml|yml)".
func zshGlob(pattern string) string {
	parts := strings.Split(pattern, ",")
	if len(parts) == 1 {
		return pattern
	}
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer) error {
	bw := bufio.NewWriter(w)
	commands := getCommands()

	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}

	fmt.Fprintln(bw, "# fish completion for orgfix")
	fmt.Fprintln(bw, "function __fish_orgfix_needs_command")
	fmt.Fprintln(bw, "    set -l cmd (commandline -opc)")
	fmt.Fprintln(bw, "    test (count $cmd) -eq 1")
	fmt.Fprintln(bw, "end")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "function __fish_orgfix_using_command")
	fmt.Fprintln(bw, "    set -l cmd (commandline -opc)")
	fmt.Fprintln(bw, "    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]")
	fmt.Fprintln(bw, "end")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "complete -c orgfix -f")

	for _, c := range commands {
		fmt.Fprintf(bw, "complete -c orgfix -n __fish_orgfix_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range commands {
		cond := "-n '__fish_orgfix_using_command " + c.Name + "'"
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c orgfix %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a %s", fishQuote(strings.Join(f.Values, " ")))
			case flagFile:
				line += " -r -F"
			case flagString:
				line += " -r"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagInt:
				line += " -x"
			}
			line += " -d " + fishQuote(f.Desc)
			fmt.Fprintln(bw, line)
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(bw, "complete -c orgfix %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		case c.TakesFiles:
			fmt.Fprintf(bw, "complete -c orgfix %s -F\n", cond)
		case c.TakesDirs:
			fmt.Fprintf(bw, "complete -c orgfix %s -x -a '(__fish_complete_directories)'\n", cond)
		}
	}

	return bw.Flush()
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: orgfix completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(orgfix completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(orgfix completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    orgfix completion fish > ~/.config/fish/completions/orgfix.fish")
}
