// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"

	tarfs "github.com/nlepage/go-tarfs"
)

// FS is a read-only view of an archive. Close releases the underlying file.
type FS interface {
	fs.FS
	io.Closer
}

type memFS struct {
	fs.FS
}

func (memFS) Close() error { return nil }

// OpenFS exposes the archive at path as a file system without extracting it.
// Zip archives are read lazily; tar.gz archives are decompressed into memory.
func OpenFS(path string) (FS, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if format == FormatZip {
		zr, err := zip.OpenReader(path)
		if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
			return nil, &ExtractError{Archive: path, Err: err}
		}
		return zr, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ExtractError{Archive: path, Err: err}
	}
	defer func() { _ = f.Close() }() // read-only

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, &ExtractError{Archive: path, Err: err}
	}
	defer func() { _ = gz.Close() }() // read-only

	tfs, err := tarfs.New(gz)
	if err != nil {
		return nil, &ExtractError{Archive: path, Err: err}
	}
	return memFS{FS: tfs}, nil
}
