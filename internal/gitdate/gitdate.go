// Package gitdate finds when a source file last changed, preferring the
// commit history over the file system.
package gitdate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
)

// Resolver answers last-modified queries for files under one directory.
// It is safe for concurrent use.
type Resolver struct {
	mu    sync.Mutex
	repo  *git.Repository
	root  string // work tree root, empty without a repository
	dates map[string]time.Time
}

// Open looks for a git repository containing dir. Without one, every
// query falls back to the file modification time.
func Open(dir string) *Resolver {
	r := &Resolver{dates: make(map[string]time.Time)}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return r
	}
	wt, err := repo.Worktree()
	if err != nil {
		return r
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		root = wt.Filesystem.Root()
	}
	r.repo = repo
	r.root = root
	return r
}

// InRepository reports whether a repository was found.
func (r *Resolver) InRepository() bool {
	return r.repo != nil
}

// LastModified returns the author date of the newest commit touching path,
// or the file modification time when path has no history.
func (r *Resolver) LastModified(path string) (time.Time, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return time.Time{}, err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.dates[abs]; ok {
		return t, nil
	}
	t, err := r.lastCommit(abs)
	if err != nil || t.IsZero() {
		t, err = modTime(abs)
		if err != nil {
			return time.Time{}, err
		}
	}
	r.dates[abs] = t
	return t, nil
}

// lastCommit returns the zero time when abs is outside the work tree or
// has never been committed.
func (r *Resolver) lastCommit(abs string) (time.Time, error) {
	if r.repo == nil {
		return time.Time{}, nil
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return time.Time{}, nil
	}
	rel = filepath.ToSlash(rel)

	ref, err := r.repo.Head()
	if err != nil {
		// Empty repository.
		return time.Time{}, nil
	}
	iter, err := r.repo.Log(&git.LogOptions{From: ref.Hash(), FileName: &rel})
	if err != nil {
		return time.Time{}, fmt.Errorf("reading history of %s: %w", rel, err)
	}
	defer iter.Close()

	c, err := iter.Next()
	if errors.Is(err, io.EOF) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading history of %s: %w", rel, err)
	}
	return c.Author.When, nil
}

func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
