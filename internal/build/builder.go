// Package build compiles a source directory into a static site: one HTML
// page per document, listing pages, copied static files, stylesheets, the
// feed and the sitemap.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/cache"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/dateutil"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/frontmatter"
	"github.com/alnah/go-md2site/internal/logger"
	"github.com/alnah/go-md2site/internal/pipeline"
	"github.com/alnah/go-md2site/internal/render"
	"github.com/alnah/go-md2site/internal/site"
	"github.com/alnah/go-md2site/internal/template"
)

// Builder builds one site. It may run Build repeatedly, as in watch mode,
// but not concurrently.
type Builder struct {
	root    string
	cfg     *config.Config
	log     *logger.Logger
	now     func() time.Time
	force   bool
	workers int
	version string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the build logger.
func WithLogger(l *logger.Logger) Option {
	return func(b *Builder) {
		b.log = l
	}
}

// WithClock sets the clock used for build_date and the feed.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithForce ignores the build cache and rebuilds every document.
func WithForce(force bool) Option {
	return func(b *Builder) {
		b.force = force
	}
}

// WithWorkers overrides build.workers. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithVersion sets the tool version recorded in the cache signature, so an
// upgrade rebuilds everything.
func WithVersion(v string) Option {
	return func(b *Builder) {
		b.version = v
	}
}

// New creates a Builder for the site rooted at root. A nil cfg means
// config.DefaultConfig().
func New(root string, cfg *config.Config, opts ...Option) *Builder {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	b := &Builder{
		root:    root,
		cfg:     cfg,
		now:     time.Now,
		version: "dev",
		workers: cfg.Build.Workers,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = logger.OrDiscard(b.log)
	if b.workers < 1 {
		b.workers = runtime.GOMAXPROCS(0)
	}
	return b
}

// Root returns the absolute source directory.
func (b *Builder) Root() string {
	return b.root
}

// OutputDir returns the absolute output directory.
func (b *Builder) OutputDir() string {
	return b.dir(b.cfg.Build.OutputDir)
}

// TemplatesDir returns the absolute custom templates directory.
func (b *Builder) TemplatesDir() string {
	return b.dir(b.cfg.Build.TemplatesDir)
}

// Workers returns the worker pool size.
func (b *Builder) Workers() int {
	return b.workers
}

// dir resolves a configured directory against the site root.
func (b *Builder) dir(p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(b.root, p)
}

// run holds the state of a single Build call.
type run struct {
	*Builder

	outDir     string
	assets     *assets.AssetResolver
	engine     *template.Engine
	tree       *site.Tree
	graph      *site.Graph
	categories []site.Category
	global     template.Context
	cache      *cache.Cache
	native     pipeline.HTMLConverter
	commonmark pipeline.HTMLConverter
	buildDate  time.Time
}

// source is a document read from disk.
type source struct {
	doc     site.Document
	hash    string
	meta    frontmatter.Meta
	body    string
	title   string
	date    time.Time // zero when undated or unparseable
	summary string    // set once compiled or found in the cache
	err     error
}

// Build compiles the site. Per-document failures are reported in the
// Report; the returned error is reserved for failures that stop the build.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	r := &run{Builder: b, outDir: b.OutputDir(), buildDate: b.now()}
	b.log.BuildStarted(b.root, r.outDir, b.workers)

	if err := r.prepare(); err != nil {
		return nil, err
	}

	report := &Report{}
	sources := r.load(ctx)
	var live []*source
	for _, src := range sources {
		switch {
		case src.err != nil:
			report.Results = append(report.Results, Result{Source: src.doc.Source, Err: src.err})
			b.log.FileError(src.doc.Source, src.err)
		case src.meta.Draft():
			report.Results = append(report.Results, Result{Source: src.doc.Source, Skipped: true, Reason: "draft"})
			b.log.DocumentSkipped(src.doc.Source, "draft")
		default:
			live = append(live, src)
		}
	}

	if err := r.index(live); err != nil {
		return nil, err
	}

	results := make([]Result, len(live))
	runPool(ctx, b.workers, len(live),
		func(ctx context.Context, idx int) {
			results[idx] = r.compile(ctx, live[idx])
		},
		func(idx int, err error) {
			results[idx] = Result{Source: live[idx].doc.Source, Err: err}
		})
	report.Results = append(report.Results, results...)

	if err := ctx.Err(); err != nil {
		report.tally()
		return report, err
	}

	listings, err := r.writeListings(live)
	if err != nil {
		return report, err
	}
	report.Pages = len(listings)

	if err := r.writeAssets(ctx, live, listings); err != nil {
		return report, err
	}

	keep := make(map[string]bool, len(live))
	for _, src := range live {
		keep[src.doc.Source] = true
	}
	r.cache.Retain(keep)
	if b.cfg.Build.Cache {
		if err := r.cache.Save(); err != nil {
			return report, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	report.tally()
	report.Duration = time.Since(start)
	b.log.BuildCompleted(report.Built, report.Skipped, report.Failed, report.Duration)
	return report, nil
}

// prepare loads templates, scans the source tree and creates the output directory.
func (r *run) prepare() error {
	templatesDir := r.TemplatesDir()
	custom := ""
	if fileutil.DirExists(templatesDir) {
		custom = templatesDir
	}
	resolver, err := assets.NewAssetResolver(custom)
	if err != nil {
		return err
	}
	r.assets = resolver
	r.engine = template.New(resolver, template.WithLogger(r.log))

	ignore, err := site.LoadIgnore(r.root, site.BuildDirs(r.root, r.outDir, templatesDir, r.dir(r.cfg.Build.StaticDir))...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	tree, err := site.Scan(r.root, ignore)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	if len(tree.Documents) == 0 {
		return fmt.Errorf("%w: %s", ErrNoDocuments, r.root)
	}
	r.tree = tree

	if err := os.MkdirAll(r.outDir, fileutil.DirPerm); err != nil {
		return fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
	}
	return nil
}

// load reads and splits every document on the worker pool.
func (r *run) load(ctx context.Context) []*source {
	docs := r.tree.Documents
	sources := make([]*source, len(docs))
	pre := &pipeline.NativePreprocessor{}

	runPool(ctx, r.workers, len(docs),
		func(ctx context.Context, idx int) {
			sources[idx] = r.read(ctx, docs[idx], pre)
		},
		func(idx int, err error) {
			sources[idx] = &source{doc: docs[idx], err: err}
		})
	return sources
}

func (r *run) read(ctx context.Context, doc site.Document, pre pipeline.MarkdownPreprocessor) *source {
	src := &source{doc: doc}

	raw, err := os.ReadFile(filepath.Join(r.root, filepath.FromSlash(doc.Source))) // #nosec G304 -- path from the site scan
	if err != nil {
		src.err = fmt.Errorf("%w: %v", ErrReadSource, err)
		return src
	}
	src.hash = cache.HashBytes(raw)

	parsed, err := frontmatter.Read(pre.PreprocessMarkdown(ctx, string(raw)))
	if err != nil {
		r.log.FrontMatterInvalid(doc.Source, err)
	}
	src.meta = parsed.Meta
	src.body = parsed.Body

	src.title = src.meta.Get(frontmatter.KeyTitle)
	if src.title == "" {
		src.title = doc.Name
	}
	if raw := src.meta.Get(frontmatter.KeyDate); raw != "" {
		if t, err := dateutil.ParsePostDate(raw); err == nil {
			src.date = t
		}
	}
	return src
}

// index builds everything that depends on the full set of live documents:
// the site graph, listings, the sidebar, the global context and the cache.
func (r *run) index(live []*source) error {
	docs := make([]site.Document, len(live))
	for i, src := range live {
		docs[i] = src.doc
	}
	r.tree = &site.Tree{Root: r.tree.Root, Documents: docs, Images: r.tree.Images, Dirs: r.tree.Dirs}
	r.graph = site.NewGraph(r.tree, r.log)
	r.categories = site.Categories(r.tree, r.cfg.CategorySlugs)
	r.global = r.globalContext(site.Sidebar(r.tree, r.cfg.BaseURL, site.DirLinks(r.categories)))

	opts := pipeline.Options{
		BaseURL:        r.cfg.BaseURL,
		Highlight:      r.cfg.Render.Highlight,
		HighlightStyle: r.cfg.Render.HighlightStyle,
		Resolver:       r.graph,
		Logger:         r.log,
	}
	softBreak, err := render.ParseSoftBreak(r.cfg.Render.SoftBreak)
	if err != nil {
		return err
	}
	opts.SoftBreak = softBreak
	r.native = pipeline.NewNativeConverter(opts)
	r.commonmark = pipeline.NewGoldmarkConverter(opts)

	signer := cache.NewSigner(r.version)
	signer.AddJSON("config", r.cfg)
	signer.AddFrom("templates", r.assets.WriteDigest)
	signer.AddStrings("graph", r.graph.Keys())
	signature, err := signer.Sum()
	if err != nil {
		return err
	}

	path := filepath.Join(r.outDir, cache.FileName)
	if r.force || !r.cfg.Build.Cache {
		r.cache = cache.New(path, signature)
		return nil
	}
	c, err := cache.Load(path, signature)
	if err != nil {
		r.log.CacheDiscarded(path, err)
	}
	r.cache = c
	return nil
}

// globalContext holds the keys shared by every page.
func (r *run) globalContext(sidebar string) template.Context {
	cfg := r.cfg
	ctx := template.NewContext()
	for k, v := range cfg.Params {
		ctx.Set("params."+k, v)
	}
	ctx.Set(template.KeyBaseURL, cfg.BaseURL)
	ctx.Set(template.KeySiteTitle, cfg.SiteTitle)
	ctx.Set(template.KeySiteDescription, cfg.SiteDescription)
	ctx.Set(template.KeyLanguage, cfg.Language)
	ctx.Set(template.KeySidebar, sidebar)
	ctx.Set(template.KeyBuildDate, r.formatDate(r.buildDate))
	ctx.Set(template.KeyHomeURL, site.PageURL(cfg.BaseURL, ""))
	ctx.Set(template.KeyStylesheets, r.stylesheetLinks())
	ctx.Set(template.KeyTitle, "")
	ctx.Set(template.KeyBreadcrumb, "")
	ctx.Set(template.KeyDateDisplay, "")
	return ctx
}

// formatDate applies date_format, falling back to YYYY-MM-DD.
func (r *run) formatDate(t time.Time) string {
	s, err := dateutil.FormatDisplay(t, r.cfg.DateFormat)
	if err != nil {
		return t.Format(time.DateOnly)
	}
	return s
}

// dateDisplay is the formatted date of src, or the raw value when it does
// not parse.
func (r *run) dateDisplay(src *source) string {
	if !src.date.IsZero() {
		return r.formatDate(src.date)
	}
	return src.meta.Get(frontmatter.KeyDate)
}
