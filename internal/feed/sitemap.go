package feed

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/alnah/go-md2site/internal/dateutil"
)

// SitemapFileName is the sitemap path relative to the output directory.
const SitemapFileName = "sitemap.xml"

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URL is one sitemap entry. A zero LastMod is omitted.
type URL struct {
	Loc     string
	LastMod time.Time
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes a sitemap listing urls in the given order.
func WriteSitemap(w io.Writer, urls []URL) error {
	doc := urlset{Xmlns: sitemapNS}
	for _, u := range urls {
		entry := sitemapURL{Loc: u.Loc}
		if !u.LastMod.IsZero() {
			entry.LastMod = dateutil.FormatLastMod(u.LastMod)
		}
		doc.URLs = append(doc.URLs, entry)
	}
	return encode(w, doc)
}
