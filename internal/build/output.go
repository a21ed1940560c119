package build

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/feed"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/gitdate"
	"github.com/alnah/go-md2site/internal/render"
	"github.com/alnah/go-md2site/internal/site"
)

// Stylesheet paths relative to the output directory.
const (
	SiteStylesheet      = "css/site.css"
	HighlightStylesheet = "css/highlight.css"
)

// stylesheetLinks renders the <link> tags for the generated stylesheets.
func (r *run) stylesheetLinks() string {
	sheets := []string{SiteStylesheet}
	if r.cfg.Render.Highlight {
		sheets = append(sheets, HighlightStylesheet)
	}
	var b strings.Builder
	for i, s := range sheets {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, `<link rel="stylesheet" href="%s">`, site.PageURL(r.cfg.BaseURL, s))
	}
	return b.String()
}

// writeAssets copies static files and images and writes stylesheets, the
// feed and the sitemap, concurrently.
func (r *run) writeAssets(ctx context.Context, live []*source, listings []listing) error {
	copies, err := r.copyPlan()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for dst, src := range copies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if upToDate(src, dst) {
				return nil
			}
			if err := fileutil.CopyFile(src, dst); err != nil {
				return fmt.Errorf("%w: %v", ErrWriteOutput, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		css, err := r.assets.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return err
		}
		return r.write(SiteStylesheet, []byte(css))
	})
	if r.cfg.Render.Highlight {
		g.Go(func() error {
			var buf bytes.Buffer
			if err := render.NewChromaHighlighter(r.cfg.Render.HighlightStyle).WriteCSS(&buf); err != nil {
				return err
			}
			return r.write(HighlightStylesheet, buf.Bytes())
		})
	}
	if r.cfg.Feed.Enabled {
		g.Go(func() error {
			return r.writeFeed(live)
		})
	}
	if r.cfg.Sitemap && r.cfg.BaseURL != "" {
		g.Go(func() error {
			return r.writeSitemap(live, listings)
		})
	}

	return g.Wait()
}

// copyPlan maps each output file to the source it is copied from. Static
// files land at the output root; images keep their path in the site.
func (r *run) copyPlan() (map[string]string, error) {
	plan := make(map[string]string)

	for _, img := range r.tree.Images {
		dst := filepath.Join(r.outDir, filepath.FromSlash(img.Source))
		plan[dst] = filepath.Join(r.root, filepath.FromSlash(img.Source))
	}

	staticDir := r.dir(r.cfg.Build.StaticDir)
	if !fileutil.DirExists(staticDir) {
		return plan, nil
	}
	err := filepath.WalkDir(staticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != staticDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(staticDir, p)
		if err != nil {
			return err
		}
		plan[filepath.Join(r.outDir, rel)] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	return plan, nil
}

// upToDate reports whether dst exists with the size of src and is not older.
func upToDate(src, dst string) bool {
	s, err := os.Stat(src)
	if err != nil {
		return false
	}
	d, err := os.Stat(dst)
	if err != nil {
		return false
	}
	return s.Size() == d.Size() && !d.ModTime().Before(s.ModTime())
}

// write stores data at rel inside the output directory.
func (r *run) write(rel string, data []byte) error {
	if err := fileutil.WriteFileAtomic(filepath.Join(r.outDir, filepath.FromSlash(rel)), data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	r.log.PageWritten(rel)
	return nil
}

func (r *run) writeFeed(live []*source) error {
	items := make([]feed.Item, 0, len(live))
	for _, src := range live {
		items = append(items, feed.Item{
			Title:       src.title,
			URL:         site.PageURL(r.cfg.BaseURL, src.doc.Output),
			Date:        src.date,
			Description: src.summary,
		})
	}
	channel := feed.Site{
		Title:       r.cfg.SiteTitle,
		Link:        site.PageURL(r.cfg.BaseURL, ""),
		Description: r.cfg.SiteDescription,
		Language:    r.cfg.Language,
	}

	limit := r.cfg.Feed.Limit
	if limit == 0 {
		limit = feed.DefaultLimit
	}
	var buf bytes.Buffer
	if err := feed.WriteRSS(&buf, channel, items, limit, r.buildDate); err != nil {
		return err
	}
	return r.write(feed.FileName, buf.Bytes())
}

// writeSitemap lists every document, dated by its last commit, followed by
// the listing pages, dated by the build.
func (r *run) writeSitemap(live []*source, listings []listing) error {
	dates := gitdate.Open(r.root)

	urls := make([]feed.URL, 0, len(live)+len(listings))
	for _, src := range live {
		u := feed.URL{Loc: site.PageURL(r.cfg.BaseURL, src.doc.Output)}
		if t, err := dates.LastModified(filepath.Join(r.root, filepath.FromSlash(src.doc.Source))); err == nil {
			u.LastMod = t
		}
		urls = append(urls, u)
	}
	for _, l := range listings {
		urls = append(urls, feed.URL{Loc: site.PageURL(r.cfg.BaseURL, l.output()), LastMod: r.buildDate})
	}

	var buf bytes.Buffer
	if err := feed.WriteSitemap(&buf, urls); err != nil {
		return err
	}
	return r.write(feed.SitemapFileName, buf.Bytes())
}
