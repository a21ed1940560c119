// Package feed writes the RSS feed and the sitemap of a built site.
package feed

import (
	"cmp"
	"encoding/xml"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/alnah/go-md2site/internal/dateutil"
)

// DefaultLimit is the number of items kept when no limit is configured.
const DefaultLimit = 20

// MaxSummaryRunes bounds descriptions derived from post content.
const MaxSummaryRunes = 200

// FileName is the feed path relative to the output directory.
const FileName = "feed.xml"

// Site describes the channel.
type Site struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// Item is one post in the feed. Items with a zero Date are left out.
type Item struct {
	Title       string
	URL         string
	Date        time.Time
	Description string
}

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	PubDate     string  `xml:"pubDate"`
	Description string  `xml:"description,omitempty"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// GUID returns the stable identifier of the item at url.
func GUID(url string) string {
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
}

// SelectItems drops undated items, orders the rest newest first and keeps
// at most limit of them. A limit of zero means DefaultLimit.
func SelectItems(items []Item, limit int) []Item {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var dated []Item
	for _, it := range items {
		if !it.Date.IsZero() {
			dated = append(dated, it)
		}
	}
	slices.SortStableFunc(dated, func(a, b Item) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.URL, b.URL)
	})
	if len(dated) > limit {
		dated = dated[:limit]
	}
	return dated
}

// WriteRSS writes an RSS 2.0 document for the selected items.
func WriteRSS(w io.Writer, site Site, items []Item, limit int, now time.Time) error {
	doc := rss{
		Version: "2.0",
		Channel: channel{
			Title:         site.Title,
			Link:          site.Link,
			Description:   site.Description,
			Language:      site.Language,
			LastBuildDate: dateutil.FormatRFC822(now),
		},
	}
	for _, it := range SelectItems(items, limit) {
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       it.Title,
			Link:        it.URL,
			GUID:        rssGUID{Value: GUID(it.URL)},
			PubDate:     dateutil.FormatRFC822(it.Date),
			Description: it.Description,
		})
	}
	return encode(w, doc)
}

func encode(w io.Writer, v any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Summary returns the text of the first paragraph of an HTML fragment with
// whitespace collapsed, cut to maxRunes.
func Summary(fragment string, maxRunes int) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var words []string
	depth := 0

loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			break loop
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "p" {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "p" && depth > 0 {
				depth--
				if depth == 0 && len(words) > 0 {
					break loop
				}
			}
		case html.TextToken:
			if depth > 0 {
				words = append(words, strings.Fields(string(z.Text()))...)
			}
		}
	}
	return truncate(strings.Join(words, " "), maxRunes)
}

func truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:maxRunes-1])) + "…"
}
