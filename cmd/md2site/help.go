package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build a site from a directory of markdown notes")
	fmt.Fprintln(w, "  render      Render one markdown file to an HTML fragment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2site help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site build [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build every .md file under dir (default: current directory) into HTML pages,")
	fmt.Fprintln(w, "category and post listings, a feed and a sitemap.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default: build.output_dir)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path (default: md2site.yaml in dir)")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "      --force                 Rebuild every document, ignoring the cache")
	fmt.Fprintln(w, "      --watch                 Rebuild on file changes until interrupted")
	fmt.Fprintln(w)
	printRenderOptionUsage(w)
	fmt.Fprintln(w)
	printOutputControlUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SITE_CONFIG, MD2SITE_OUTPUT_DIR, MD2SITE_BASE_URL, MD2SITE_SOFT_BREAK,")
	fmt.Fprintln(w, "  MD2SITE_HIGHLIGHT_STYLE, MD2SITE_WORKERS")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site render <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one markdown file to an HTML fragment, without layouts.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <file>         Output file (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --root <dir>            Site root for note-links (default: the file's directory)")
	fmt.Fprintln(w, "      --markup <s>            Dialect: native, commonmark")
	fmt.Fprintln(w)
	printRenderOptionUsage(w)
	fmt.Fprintln(w)
	printOutputControlUsage(w)
}

func printRenderOptionUsage(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --base-url <url>        Absolute URL prefix for links")
	fmt.Fprintln(w, "      --soft-break <s>        Soft break mode: space, newline, break")
	fmt.Fprintln(w, "      --highlight             Highlight fenced code blocks")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style (implies --highlight)")
}

func printOutputControlUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show skipped documents and timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2site version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2site help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
