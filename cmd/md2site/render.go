package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/logger"
	"github.com/alnah/go-md2site/internal/render"
	"github.com/alnah/go-md2site/internal/site"
)

// runRender compiles one document to an HTML fragment. Note-links resolve
// against the documents under the site root.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: render needs a markdown file", ErrNoInput)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: render takes one file, got %d", ErrTooManyArgs, len(positional))
	}

	file := positional[0]
	if err := validateMarkdownExtension(file); err != nil {
		return err
	}
	content, err := readMarkdownFile(file)
	if err != nil {
		return err
	}

	root := flags.root
	if root == "" {
		root = filepath.Dir(file)
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadSiteConfig(firstNonEmpty(flags.common.config, envCfg.ConfigPath), root)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeRenderFlags(&flags.render, cfg)
	if flags.markup != "" {
		cfg.Markup = flags.markup
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewWithLevel(env.Stderr, logLevel(flags.common))
	graph, rel, err := siteGraph(root, file, cfg, log)
	if err != nil {
		return err
	}

	opts, err := compilerOptions(cfg, graph, log)
	if err != nil {
		return err
	}
	out, err := md2site.New(opts...).Compile(ctx, md2site.Input{
		Markdown: content,
		Path:     site.NewDocument(rel).Output,
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", file, err)
	}

	if flags.output == "" {
		_, err := fmt.Fprint(env.Stdout, out.HTML)
		return err
	}
	if err := fileutil.WriteFileAtomic(flags.output, []byte(out.HTML)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}

// siteGraph scans root and returns its link graph together with file's
// slash path relative to root.
func siteGraph(root, file string, cfg *config.Config, log *logger.Logger) (*site.Graph, string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, "", fmt.Errorf("resolving site root: %w", err)
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return nil, "", fmt.Errorf("resolving %s: %w", file, err)
	}
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || !filepath.IsLocal(rel) {
		return nil, "", fmt.Errorf("%w: %s is outside the site root %s", ErrNoInput, file, root)
	}

	dirs := site.BuildDirs(absRoot,
		resolveDir(absRoot, cfg.Build.OutputDir),
		resolveDir(absRoot, cfg.Build.TemplatesDir),
	)
	ignore, err := site.LoadIgnore(absRoot, dirs...)
	if err != nil {
		return nil, "", err
	}
	tree, err := site.Scan(absRoot, ignore)
	if err != nil {
		return nil, "", fmt.Errorf("scanning %s: %w", root, err)
	}
	return site.NewGraph(tree, log), filepath.ToSlash(rel), nil
}

// compilerOptions translates cfg into Compiler options.
func compilerOptions(cfg *config.Config, resolver md2site.Resolver, log *logger.Logger) ([]md2site.Option, error) {
	softBreak, err := render.ParseSoftBreak(cfg.Render.SoftBreak)
	if err != nil {
		return nil, err
	}
	opts := []md2site.Option{
		md2site.WithResolver(resolver),
		md2site.WithSoftBreak(softBreak),
		md2site.WithBaseURL(cfg.BaseURL),
		md2site.WithMarkup(cfg.Markup),
		md2site.WithLogger(log.Logger),
	}
	if cfg.Render.Highlight {
		if err := render.ValidateStyle(cfg.Render.HighlightStyle); err != nil {
			return nil, err
		}
		opts = append(opts, md2site.WithHighlight(cfg.Render.HighlightStyle))
	}
	return opts, nil
}

func resolveDir(root, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// validateMarkdownExtension checks that the file has a .md extension.
func validateMarkdownExtension(path string) error {
	if ext := filepath.Ext(path); ext != ".md" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// readMarkdownFile reads the content of a Markdown file.
func readMarkdownFile(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path is the user's CLI argument
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	return string(content), nil
}
