package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2site/internal/render"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

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
	FileGlob string   // for file flags, comma-separated
}

// argKind describes what a command accepts as positional arguments.
type argKind int

const (
	argNone argKind = iota
	argFiles
	argDir
	argValues
)

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        argKind
	FilePattern string   // glob for file arguments (e.g., "*.md")
	Values      []string // fixed argument values
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
	"soft-break":      {Values: []string{"space", "newline", "break"}},
	"markup":          {Values: []string{"native", "commonmark"}},
	"highlight-style": {Values: render.StyleNames()},
	"config":          {FileGlob: "*.yaml,*.yml,*.json"},
	"output":          {IsDir: true},
	"root":            {IsDir: true},
}

// renderCompletionMeta overrides flagCompletionMeta for the render command,
// whose output is a file.
var renderCompletionMeta = map[string]completionMeta{
	"output": {FileGlob: "*.html"},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet,
// enriched with completion metadata. Later overrides win.
func extractFlagsFromFlagSet(fs *flag.FlagSet, overrides ...map[string]completionMeta) []flagDef {
	meta := maps.Clone(flagCompletionMeta)
	for _, o := range overrides {
		maps.Copy(meta, o)
	}

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
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
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
	buildFlagDefs := extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{}))
	renderFlagDefs := extractFlagsFromFlagSet(newRenderFlagSet(&renderFlags{}), renderCompletionMeta)

	return []commandDef{
		{
			Name:  "build",
			Desc:  "Build a site from a directory of markdown notes",
			Flags: buildFlagDefs,
			Args:  argDir,
		},
		{
			Name:        "render",
			Desc:        "Render one markdown file to an HTML fragment",
			Flags:       renderFlagDefs,
			Args:        argFiles,
			FilePattern: "*.md",
		},
		{
			Name:   "completion",
			Desc:   "Generate shell completion script",
			Args:   argValues,
			Values: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name:   "help",
			Desc:   "Show help for a command",
			Args:   argValues,
			Values: []string{"build", "render", "completion", "version", "help"},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(getCommands())
	case ShellZsh:
		script = zshScript(getCommands())
	case ShellFish:
		script = fishScript(getCommands())
	case ShellPowerShell:
		script = powerShellScript(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2site completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(md2site completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2site completion fish > ~/.config/fish/completions/md2site.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2site completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for md2site\n")
	b.WriteString("_md2site_completions() {\n")
	b.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    local prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    local cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, cmd := range cmds {
		if len(cmd.Flags) == 0 && cmd.Args == argNone {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", cmd.Name)

		if valued := flagsWithValues(cmd.Flags); len(valued) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, f := range valued {
				fmt.Fprintf(&b, "        %s)\n", strings.Join(flagSpellings(f), "|"))
				fmt.Fprintf(&b, "            COMPREPLY=(%s)\n", bashValueReply(f.Type, f.Values, f.FileGlob))
				b.WriteString("            return\n")
				b.WriteString("            ;;\n")
			}
			b.WriteString("        esac\n")
		}

		if len(cmd.Flags) > 0 {
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(allSpellings(cmd.Flags), " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}

		switch cmd.Args {
		case argFiles:
			fmt.Fprintf(&b, "        COMPREPLY=(%s)\n", bashValueReply(flagFile, nil, cmd.FilePattern))
		case argDir:
			fmt.Fprintf(&b, "        COMPREPLY=(%s)\n", bashValueReply(flagDir, nil, ""))
		case argValues:
			fmt.Fprintf(&b, "        COMPREPLY=(%s)\n", bashValueReply(flagEnum, cmd.Values, ""))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _md2site_completions md2site\n")
	return b.String()
}

func bashValueReply(t flagType, values []string, glob string) string {
	switch t {
	case flagEnum:
		return fmt.Sprintf("$(compgen -W %q -- \"$cur\")", strings.Join(values, " "))
	case flagFile:
		return fmt.Sprintf("$(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\")", strings.Join(globExtensions(glob), "|"))
	case flagDir:
		return "$(compgen -d -- \"$cur\")"
	default:
		return ""
	}
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func zshScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef md2site\n\n")
	b.WriteString("_md2site() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, zshEscape(cmd.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, cmd := range cmds {
		if len(cmd.Flags) == 0 && cmd.Args == argNone {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", cmd.Name)
		b.WriteString("        _arguments")
		for _, f := range cmd.Flags {
			fmt.Fprintf(&b, " \\\n            %s", zshFlagSpec(f))
		}
		switch cmd.Args {
		case argFiles:
			fmt.Fprintf(&b, " \\\n            '*:file:_files -g \"%s\"'", zshGlob(cmd.FilePattern))
		case argDir:
			b.WriteString(" \\\n            '1:directory:_files -/'")
		case argValues:
			fmt.Fprintf(&b, " \\\n            '1:value:(%s)'", strings.Join(cmd.Values, " "))
		}
		b.WriteString("\n        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_md2site \"$@\"\n")
	return b.String()
}

func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g \"" + zshGlob(f.FileGlob) + "\""
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ":"
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

func zshGlob(glob string) string {
	exts := globExtensions(glob)
	if len(exts) == 1 {
		return "*." + exts[0]
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for md2site\n\n")
	b.WriteString("function __fish_md2site_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_md2site_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c md2site -f\n")

	for _, cmd := range cmds {
		fmt.Fprintf(&b, "complete -c md2site -n __fish_md2site_needs_command -a %s -d '%s'\n", cmd.Name, fishEscape(cmd.Desc))
	}

	for _, cmd := range cmds {
		cond := fmt.Sprintf("-n '__fish_md2site_using_command %s'", cmd.Name)
		for _, f := range cmd.Flags {
			var sb strings.Builder
			fmt.Fprintf(&sb, "complete -c md2site %s", cond)
			if f.Short != "" {
				fmt.Fprintf(&sb, " -s %s", f.Short)
			}
			fmt.Fprintf(&sb, " -l %s", f.Long)
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&sb, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				sb.WriteString(" -r -F")
			case flagDir:
				sb.WriteString(" -x -a '(__fish_complete_directories)'")
			default:
				sb.WriteString(" -x")
			}
			fmt.Fprintf(&sb, " -d '%s'\n", fishEscape(f.Desc))
			b.WriteString(sb.String())
		}

		switch cmd.Args {
		case argFiles:
			fmt.Fprintf(&b, "complete -c md2site %s -F\n", cond)
		case argDir:
			fmt.Fprintf(&b, "complete -c md2site %s -a '(__fish_complete_directories)'\n", cond)
		case argValues:
			fmt.Fprintf(&b, "complete -c md2site %s -a '%s'\n", cond, strings.Join(cmd.Values, " "))
		}
	}
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func powerShellScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# powershell completion for md2site\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName md2site -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $commands = [ordered]@{\n")
	for _, cmd := range cmds {
		words := allSpellings(cmd.Flags)
		words = append(words, cmd.Values...)
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = "'" + w + "'"
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", cmd.Name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($elements.Count -le 1 -or ($elements.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $candidates = $commands.Keys\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $candidates = $commands[$elements[1]]\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagSpellings returns the ways a flag can be written, long form first.
func flagSpellings(f flagDef) []string {
	out := []string{"--" + f.Long}
	if f.Short != "" {
		out = append(out, "-"+f.Short)
	}
	return out
}

func allSpellings(flags []flagDef) []string {
	var out []string
	for _, f := range flags {
		out = append(out, flagSpellings(f)...)
	}
	return out
}

// flagsWithValues returns flags whose argument can be completed.
func flagsWithValues(flags []flagDef) []flagDef {
	var out []flagDef
	for _, f := range flags {
		if f.Type == flagEnum || f.Type == flagFile || f.Type == flagDir {
			out = append(out, f)
		}
	}
	return out
}

// globExtensions turns "*.yaml,*.yml" into [yaml yml].
func globExtensions(glob string) []string {
	var exts []string
	for part := range strings.SplitSeq(glob, ",") {
		ext := strings.TrimPrefix(strings.TrimSpace(part), "*.")
		if ext != "" && !slices.Contains(exts, ext) {
			exts = append(exts, ext)
		}
	}
	return exts
}
