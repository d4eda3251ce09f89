// Package fs provides filesystem-based page sources and atomic index
// output for builds over locally generated documentation.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docdex"
)

// Ensure DirSource implements docdex.URLSource at compile time.
var _ docdex.URLSource = (*DirSource)(nil)

// DirSource discovers pages by walking a local HTML directory tree.
// Discovery order is lexical, so repeated builds see pages in the same
// order.
type DirSource struct{}

// NewDirSource creates a new DirSource.
func NewDirSource() *DirSource {
	return &DirSource{}
}

// Discover walks dir and returns the HTML page paths passing the filter.
func (s *DirSource) Discover(ctx context.Context, dir string, filter *docdex.URLFilter) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "directory %q not found", dir)
	}
	if !info.IsDir() {
		return nil, docdex.Errorf(docdex.EINVALID, "%q is not a directory", dir)
	}

	pages := []string{}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".html" && ext != ".htm" {
			return nil
		}
		if !filter.Match(path) {
			return nil
		}
		pages = append(pages, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// Ensure FileFetcher implements docdex.Fetcher at compile time.
var _ docdex.Fetcher = (*FileFetcher)(nil)

// FileFetcher reads page markup from disk.
type FileFetcher struct{}

// NewFileFetcher creates a new FileFetcher.
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// Fetch reads the file at path.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", docdex.Errorf(docdex.ENOTFOUND, "page %q not found", path)
		}
		return "", err
	}
	return string(data), nil
}

// Close releases resources. For the file fetcher this is a no-op.
func (f *FileFetcher) Close() error {
	return nil
}
