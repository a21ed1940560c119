// Package cache records which documents were compiled from which source
// bytes so unchanged documents can be skipped on the next build.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// FileName is the cache file written inside the output directory.
const FileName = ".md2site-cache.json"

// formatVersion changes whenever the on-disk layout changes.
const formatVersion = 1

// ErrCorruptCache indicates a cache file that could not be decoded.
var ErrCorruptCache = errors.New("corrupt build cache")

// Entry is the cached state of one source document.
type Entry struct {
	Hash   string `json:"hash"`
	Output string `json:"output"`
	// Summary is the listing and feed description derived from the body.
	Summary string `json:"summary,omitempty"`
}

type cacheFile struct {
	Version   int              `json:"version"`
	Signature string           `json:"signature"`
	Entries   map[string]Entry `json:"entries"`
}

// Cache maps source paths to their last compiled state. It is safe for
// concurrent use.
type Cache struct {
	mu        sync.Mutex
	path      string
	signature string
	entries   map[string]Entry
}

// New returns an empty cache that will be saved to path.
func New(path, signature string) *Cache {
	return &Cache{
		path:      path,
		signature: signature,
		entries:   make(map[string]Entry),
	}
}

// Load reads the cache at path. A missing file, or one written under a
// different signature, yields an empty cache. A file that cannot be decoded
// yields an empty cache and an error wrapping ErrCorruptCache, so the caller
// can warn and carry on.
func Load(path, signature string) (*Cache, error) {
	c := New(path, signature)

	data, err := os.ReadFile(path) // #nosec G304 -- path is inside the output directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("reading cache: %w", err)
	}

	var f cacheFile
	if err := json.Unmarshal(data, &f); err != nil {
		return c, fmt.Errorf("%w: %s: %v", ErrCorruptCache, path, err)
	}
	if f.Version != formatVersion || f.Signature != signature {
		return c, nil
	}
	for input, e := range f.Entries {
		c.entries[input] = e
	}
	return c, nil
}

// Signature returns the signature the cache was created for.
func (c *Cache) Signature() string {
	return c.signature
}

// Lookup returns the entry stored for input.
func (c *Cache) Lookup(input string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[input]
	return e, ok
}

// Unchanged reports whether input was last compiled from bytes with the
// given hash and its output file still exists at outputPath.
func (c *Cache) Unchanged(input, hash, outputPath string) bool {
	e, ok := c.Lookup(input)
	return ok && e.Hash == hash && fileutil.FileExists(outputPath)
}

// Store records the state of input after a successful compile.
func (c *Cache) Store(input string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[input] = e
}

// Forget drops the entry for input, as after a failed compile.
func (c *Cache) Forget(input string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, input)
}

// Retain drops every entry whose input is not in keep.
func (c *Cache) Retain(keep map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for input := range c.entries {
		if !keep[input] {
			delete(c.entries, input)
		}
	}
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Save writes the cache atomically.
func (c *Cache) Save() error {
	c.mu.Lock()
	f := cacheFile{
		Version:   formatVersion,
		Signature: c.signature,
		Entries:   make(map[string]Entry, len(c.entries)),
	}
	for input, e := range c.entries {
		f.Entries[input] = e
	}
	c.mu.Unlock()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.path, data); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
