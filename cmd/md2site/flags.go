package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderOptionFlags holds flags that change how Markdown becomes HTML.
type renderOptionFlags struct {
	baseURL        string
	softBreak      string
	highlight      bool
	highlightStyle string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	render  renderOptionFlags
	output  string
	workers int
	force   bool
	watch   bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	render renderOptionFlags
	output string
	markup string
	root   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addRenderOptionFlags adds HTML rendering flags to a FlagSet.
func addRenderOptionFlags(fs *flag.FlagSet, f *renderOptionFlags) {
	fs.StringVar(&f.baseURL, "base-url", "", "absolute URL prefix for links")
	fs.StringVar(&f.softBreak, "soft-break", "", "soft break mode: space, newline, break")
	fs.BoolVar(&f.highlight, "highlight", false, "highlight fenced code blocks")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for highlighting")
}

// newBuildFlagSet registers every build flag on a new FlagSet.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.force, "force", false, "rebuild every document, ignoring the cache")
	fs.BoolVar(&f.watch, "watch", false, "rebuild on file changes")

	addCommonFlags(fs, &f.common)
	addRenderOptionFlags(fs, &f.render)
	return fs
}

// newRenderFlagSet registers every render flag on a new FlagSet.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&f.markup, "markup", "", "dialect: native, commonmark")
	fs.StringVar(&f.root, "root", "", "site root for note-links (default: the file's directory)")

	addCommonFlags(fs, &f.common)
	addRenderOptionFlags(fs, &f.render)
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printBuildUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

// flagError marks parse failures as usage errors. The help request passes
// through unchanged so runMain can exit cleanly.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
}
