package site

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/dateutil"
)

// undated sorts documents without a date ahead of dated ones, newest first.
const undated = "9999-99-99"

// SortKey holds the front matter fields that order a post list.
type SortKey struct {
	Order    int
	HasOrder bool
	ID       int
	Date     string // comparable form: RFC 3339 when parseable, else raw
	Slug     string
}

// NewSortKey reads order, id and date from front matter values.
func NewSortKey(slug string, meta map[string]string) SortKey {
	k := SortKey{Slug: slug, Date: undated}
	if v, err := strconv.Atoi(strings.TrimSpace(meta["order"])); err == nil {
		k.Order, k.HasOrder = v, true
	}
	if v, err := strconv.Atoi(strings.TrimSpace(meta["id"])); err == nil {
		k.ID = v
	}
	if raw := strings.TrimSpace(meta["date"]); raw != "" {
		k.Date = raw
		if t, err := dateutil.ParsePostDate(raw); err == nil {
			k.Date = t.UTC().Format(time.RFC3339)
		}
	}
	return k
}

// Compare orders posts: explicit order first (ascending), then id
// descending, then date descending, then slug ascending.
func Compare(a, b SortKey) int {
	if a.HasOrder != b.HasOrder {
		if a.HasOrder {
			return -1
		}
		return 1
	}
	if a.HasOrder {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(b.ID, a.ID); c != 0 {
		return c
	}
	if c := strings.Compare(b.Date, a.Date); c != 0 {
		return c
	}
	return strings.Compare(a.Slug, b.Slug)
}

// SortPosts sorts posts in place by the key each one reports.
func SortPosts[T any](posts []T, key func(T) SortKey) {
	slices.SortStableFunc(posts, func(a, b T) int {
		return Compare(key(a), key(b))
	})
}
