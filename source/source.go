// Package source opens CaFe analysis products by name, either from a local
// directory tree or from an S3 bucket.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cafe-experiment/cafeplot/dataset"
)

// File is an opened analysis product. ROOT files need random access, so
// every source hands out seekable readers.
type File interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer
}

// Source opens files by slash-separated name. A missing file is reported
// with dataset.ErrNotFound.
type Source interface {
	Open(ctx context.Context, name string) (File, error)
}

// Dir is a Source rooted at a local directory. Absolute names are opened
// as is.
type Dir string

func (d Dir) Open(ctx context.Context, name string) (File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fname := filepath.FromSlash(name)
	if !filepath.IsAbs(fname) {
		fname = filepath.Join(string(d), fname)
	}
	f, err := os.Open(fname)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("could not open %q: %w", fname, dataset.ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("could not open %q: %w", fname, err)
	}
	return f, nil
}

// memFile serves a fully downloaded object.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }
