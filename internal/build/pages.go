package build

import (
	"context"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/cache"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/feed"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/frontmatter"
	"github.com/alnah/go-md2site/internal/pipeline"
	"github.com/alnah/go-md2site/internal/site"
	"github.com/alnah/go-md2site/internal/template"
)

// compile converts one document and writes its page.
func (r *run) compile(ctx context.Context, src *source) Result {
	start := time.Now()
	outPath := filepath.Join(r.outDir, filepath.FromSlash(src.doc.Output))
	res := Result{Source: src.doc.Source, OutputPath: outPath, Layout: r.layout(src)}

	if r.cache.Unchanged(src.doc.Source, src.hash, outPath) {
		if entry, ok := r.cache.Lookup(src.doc.Source); ok {
			src.summary = entry.Summary
		}
		res.Skipped, res.Reason = true, "unchanged"
		r.log.DocumentSkipped(src.doc.Source, res.Reason)
		return res
	}

	page, err := r.renderDocument(ctx, src)
	if err == nil {
		err = fileutil.WriteFileAtomic(outPath, []byte(page))
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if err != nil {
		r.cache.Forget(src.doc.Source)
		r.log.FileError(src.doc.Source, err)
		res.Err = err
		return res
	}

	r.cache.Store(src.doc.Source, cache.Entry{Hash: src.hash, Output: src.doc.Output, Summary: src.summary})
	res.Duration = time.Since(start)
	r.log.DocumentBuilt(src.doc.Source, outPath, res.Duration)
	return res
}

// renderDocument converts the body of src and expands its layout.
func (r *run) renderDocument(ctx context.Context, src *source) (string, error) {
	conv, body := r.native, src.body
	if r.markup(src) == config.MarkupCommonMark {
		conv = r.commonmark
		body = (&pipeline.CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, body)
	}
	content, err := conv.ToHTML(ctx, pipeline.Input{Output: src.doc.Output, Content: body})
	if err != nil {
		return "", err
	}

	src.summary = src.meta.Get(frontmatter.KeyDescription)
	if src.summary == "" {
		src.summary = feed.Summary(content, feed.MaxSummaryRunes)
	}

	doc := template.NewContext()
	for k, v := range src.meta {
		doc.Set(k, v)
	}
	doc.Set(template.KeyTitle, html.EscapeString(src.title))
	doc.Set(template.KeyBreadcrumb, site.Breadcrumb(r.cfg.BaseURL, src.doc.Slug))
	doc.Set(template.KeyPostContent, content)
	doc.Set(template.KeySlug, src.doc.Slug)
	doc.Set(template.KeyPageURL, site.PageURL(r.cfg.BaseURL, src.doc.Output))
	doc.Set(template.KeyDateDisplay, r.dateDisplay(src))

	return r.renderPage(r.layout(src), template.Layered(r.global, doc))
}

// layout returns the layout named by src, else the site default.
func (r *run) layout(src *source) string {
	if l := src.meta.Get(frontmatter.KeyLayout); l != "" {
		return l
	}
	return r.cfg.DefaultLayout
}

// markup returns the dialect of src: its front matter, else the site default.
func (r *run) markup(src *source) string {
	if m := strings.ToLower(strings.TrimSpace(src.meta.Get(frontmatter.KeyMarkup))); m != "" {
		return m
	}
	return r.cfg.Markup
}

// renderPage expands layout, then wraps the result in the base layout.
func (r *run) renderPage(layout string, ctx template.Context) (string, error) {
	body, err := r.engine.Render(layout, ctx)
	if err != nil {
		return "", err
	}
	ctx.Set(template.KeyContent, body)
	return r.engine.Render(assets.BaseLayout, ctx)
}

// listing is a generated page that lists posts.
type listing struct {
	slug  string
	title string
	posts []*source
}

func (l listing) output() string {
	return l.slug + ".html"
}

// listings returns the category pages followed by the all-posts page.
func (r *run) listings(live []*source) []listing {
	bySource := make(map[string]*source, len(live))
	for _, src := range live {
		bySource[src.doc.Source] = src
	}

	var out []listing
	for _, cat := range r.categories {
		l := listing{slug: cat.Slug, title: cat.Title}
		for _, d := range cat.Documents {
			if src, ok := bySource[d.Source]; ok {
				l.posts = append(l.posts, src)
			}
		}
		out = append(out, l)
	}
	if r.cfg.AllPostsSlug != "" {
		out = append(out, listing{slug: r.cfg.AllPostsSlug, title: r.cfg.AllPostsTitle, posts: live})
	}
	return out
}

// writeListings renders every listing page. Pages whose output would
// overwrite a document are skipped. It returns the pages written.
func (r *run) writeListings(live []*source) ([]listing, error) {
	taken := make(map[string]bool, len(live))
	for _, src := range live {
		taken[src.doc.Output] = true
	}

	var written []listing
	for _, l := range r.listings(live) {
		if taken[l.output()] {
			r.log.PageSkipped(l.output(), "a document has the same output path")
			continue
		}
		taken[l.output()] = true

		page, err := r.renderListing(l)
		if err != nil {
			return written, err
		}
		if err := fileutil.WriteFileAtomic(filepath.Join(r.outDir, filepath.FromSlash(l.output())), []byte(page)); err != nil {
			return written, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		r.log.PageWritten(l.output())
		written = append(written, l)
	}
	return written, nil
}

func (r *run) renderListing(l listing) (string, error) {
	posts := append([]*source(nil), l.posts...)
	site.SortPosts(posts, func(s *source) site.SortKey {
		return site.NewSortKey(s.doc.Slug, s.meta)
	})

	var cards strings.Builder
	for _, src := range posts {
		card := template.Layered(r.global, template.Context{
			template.KeyCardTitle:   html.EscapeString(src.title),
			template.KeyCardLink:    html.EscapeString(site.PageURL(r.cfg.BaseURL, src.doc.Output)),
			template.KeyCardContent: html.EscapeString(src.summary),
			template.KeyDateDisplay: r.dateDisplay(src),
		})
		cards.WriteString(r.engine.RenderComponent(assets.CardComponent, card))
		cards.WriteString("\n")
	}

	title := html.EscapeString(l.title)
	ctx := template.Layered(r.global, template.Context{
		template.KeyListTitle:  title,
		template.KeyTitle:      title,
		template.KeyPostList:   cards.String(),
		template.KeySlug:       l.slug,
		template.KeyPageURL:    site.PageURL(r.cfg.BaseURL, l.output()),
		template.KeyBreadcrumb: site.Breadcrumb(r.cfg.BaseURL, l.slug),
	})
	return r.renderPage(r.cfg.PostListLayout, ctx)
}
