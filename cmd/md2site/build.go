package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-md2site/internal/build"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/hints"
	"github.com/alnah/go-md2site/internal/logger"
	"github.com/alnah/go-md2site/internal/render"
	"github.com/alnah/go-md2site/internal/template"
)

// runBuild compiles the site rooted at the single optional argument
// (default: the current directory).
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: build takes one site directory, got %d", ErrTooManyArgs, len(positional))
	}

	dir := "."
	if len(positional) == 1 {
		dir = positional[0]
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoInput, dir)
	}

	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadSiteConfig(firstNonEmpty(flags.common.config, envCfg.ConfigPath), dir)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := mergeBuildFlags(flags, cfg); err != nil {
		return err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := render.ValidateStyle(cfg.Render.HighlightStyle); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(render.StyleNames()))
	}

	log := logger.NewWithLevel(env.Stderr, logLevel(flags.common))
	b := build.New(dir, cfg,
		build.WithLogger(log),
		build.WithClock(env.Now),
		build.WithForce(flags.force),
		build.WithWorkers(resolvePoolSize(flags.workers, cfg.Build.Workers)),
		build.WithVersion(Version),
	)

	if flags.watch {
		return runWatch(ctx, b, flags.common, env)
	}

	report, err := b.Build(ctx)
	if err != nil {
		return buildError(err, b)
	}
	return printReport(report, b.TemplatesDir(), flags.common, env)
}

// runWatch rebuilds on every change until ctx is cancelled. Failed builds
// are reported without stopping the watcher.
func runWatch(ctx context.Context, b *build.Builder, common commonFlags, env *Environment) error {
	err := build.Watch(ctx, b, build.WatchOptions{
		OnBuild: func(report *build.Report, err error) {
			if err != nil {
				fmt.Fprintln(env.Stderr, buildError(err, b))
				return
			}
			_ = printReport(report, b.TemplatesDir(), common, env)
		},
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w%s", b.Root(), err, hints.ForWatch())
	}
	return nil
}

// loadSiteConfig loads an explicit config, or the site's md2site.yaml when
// one exists, or the defaults.
func loadSiteConfig(nameOrPath, dir string) (*config.Config, error) {
	if nameOrPath != "" {
		cfg, err := config.LoadConfig(nameOrPath, dir)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigPaths(nameOrPath)))
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(config.DefaultName, dir)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// userConfigPaths lists where a named config could be created.
func userConfigPaths(name string) []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-md2site", name+".yaml")}
}

// mergeBuildFlags applies CLI flags to cfg (CLI wins).
func mergeBuildFlags(f *buildFlags, cfg *config.Config) error {
	if f.output != "" {
		// Relative to the working directory, not the site root.
		out, err := filepath.Abs(f.output)
		if err != nil {
			return fmt.Errorf("resolving output directory: %w", err)
		}
		cfg.Build.OutputDir = out
	}
	if f.workers > 0 {
		cfg.Build.Workers = f.workers
	}
	mergeRenderFlags(&f.render, cfg)
	return nil
}

// mergeRenderFlags applies HTML rendering flags to cfg.
func mergeRenderFlags(f *renderOptionFlags, cfg *config.Config) {
	if f.baseURL != "" {
		cfg.BaseURL = f.baseURL
	}
	if f.softBreak != "" {
		cfg.Render.SoftBreak = f.softBreak
	}
	if f.highlight {
		cfg.Render.Highlight = true
	}
	if f.highlightStyle != "" {
		cfg.Render.HighlightStyle = f.highlightStyle
		cfg.Render.Highlight = true
	}
}

// buildError attaches a hint to build errors the user can act on.
func buildError(err error, b *build.Builder) error {
	switch {
	case errors.Is(err, build.ErrNoDocuments):
		return fmt.Errorf("%w%s", err, hints.ForNoDocuments(b.Root()))
	case errors.Is(err, build.ErrWriteOutput):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	default:
		return err
	}
}

// printReport writes one line per document and a summary, and returns
// ErrPartialBuild when any document failed.
func printReport(report *build.Report, templatesDir string, common commonFlags, env *Environment) error {
	for _, r := range report.Results {
		if r.Err != nil {
			hint := ""
			if errors.Is(r.Err, template.ErrLayoutNotFound) {
				hint = hints.ForLayoutNotFound(r.Layout, templatesDir)
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Source, r.Err, hint)
			continue
		}

		if common.quiet {
			continue
		}

		switch {
		case r.Skipped:
			if common.verbose {
				fmt.Fprintf(env.Stdout, "Skipped %s (%s)\n", r.Source, r.Reason)
			}
		case common.verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Source, r.OutputPath, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !common.quiet {
		printSummary(env.Stdout, report)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPartialBuild, report.Failed, len(report.Results))
	}
	return nil
}

func printSummary(w io.Writer, report *build.Report) {
	fmt.Fprintf(w, "\n%d built, %d skipped, %d failed, %d pages (%v)\n",
		report.Built, report.Skipped, report.Failed, report.Pages, report.Duration.Round(time.Millisecond))
}

// logLevel maps -q and -v to a logger level.
func logLevel(f commonFlags) logger.Level {
	switch {
	case f.quiet:
		return logger.ErrorLevel
	case f.verbose:
		return logger.DebugLevel
	default:
		return logger.InfoLevel
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
