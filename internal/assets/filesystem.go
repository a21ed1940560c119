package assets

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads assets from a site templates directory.
// Implements AssetLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path so containment checks compare real paths.
	realPath, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// BasePath returns the resolved templates directory.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// LoadLayout loads {basePath}/layout/{name}.html.
func (f *FilesystemLoader) LoadLayout(name string) (string, error) {
	return f.load(layoutDir, name, ".html", ValidateAssetName, ErrLayoutNotFound)
}

// LoadComponent loads {basePath}/components/{name}.html. The name may hold
// slash-separated subdirectories.
func (f *FilesystemLoader) LoadComponent(name string) (string, error) {
	return f.load(componentDir, name, ".html", ValidateComponentName, ErrComponentNotFound)
}

// LoadStyle loads {basePath}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.load(styleDir, name, ".css", ValidateAssetName, ErrStyleNotFound)
}

func (f *FilesystemLoader) load(dir, name, ext string, validate func(string) error, notFound error) (string, error) {
	if err := validate(name); err != nil {
		return "", err
	}

	filePath := filepath.Join(f.basePath, dir, filepath.FromSlash(name)+ext)

	if err := f.verifyPathContainment(filePath); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", notFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return string(content), nil
}

// WriteDigest writes every file under basePath, path then content, in lexical
// order to w. Two directories with the same digest render identically.
func (f *FilesystemLoader) WriteDigest(w io.Writer) error {
	return filepath.WalkDir(f.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(f.basePath, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path) // #nosec G304 -- walked from basePath
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		fmt.Fprintf(w, "%s\x00%d\x00", filepath.ToSlash(rel), len(content))
		_, err = w.Write(content)
		return err
	})
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Symlinks are resolved first so a link cannot point outside basePath.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	realPath, err := filepath.EvalSymlinks(absFilePath)
	if err == nil {
		absFilePath = realPath
	}
	// A missing file keeps its unresolved path; the read fails afterwards.

	// The trailing separator rejects siblings such as /base/pathevil.
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
