// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
)

func extractTarGz(archivePath, root string) (_ int, err error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return 0, &ExtractError{Archive: archivePath, Err: err}
	}
	defer func() { _ = f.Close() }() // read-only

	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, &ExtractError{Archive: archivePath, Err: err}
	}
	defer func() { _ = gz.Close() }() // read-only

	tr := tar.NewReader(gz)
	n := 0
	for {
		hdr, nextErr := tr.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil && !errors.Is(nextErr, tar.ErrInsecurePath) {
			return n, &ExtractError{Archive: archivePath, Err: nextErr}
		}

		name := cleanEntryName(hdr.Name)
		if name == "" {
			continue
		}
		extracted, entryErr := extractTarEntry(tr, hdr, name, root)
		if entryErr != nil {
			return n, &ExtractError{Archive: archivePath, Entry: hdr.Name, Err: entryErr}
		}
		if extracted {
			n++
		}
	}
	return n, nil
}

// extractTarEntry materialises one entry. Device nodes and FIFOs, which JDK
// archives never contain, are skipped and reported as not extracted.
func extractTarEntry(tr *tar.Reader, hdr *tar.Header, name, root string) (bool, error) {
	target, err := entryTarget(root, name)
	if err != nil {
		return false, err
	}
	mode := hdr.FileInfo().Mode()

	switch hdr.Typeflag {
	case tar.TypeDir:
		return true, mkdirEntry(target, mode)
	case tar.TypeReg:
		return true, writeEntry(target, mode, tr)
	case tar.TypeSymlink:
		if err := checkLinkTarget(name, hdr.Linkname); err != nil {
			return false, err
		}
		return true, symlinkEntry(target, hdr.Linkname)
	case tar.TypeLink:
		source, err := entryTarget(root, cleanEntryName(hdr.Linkname))
		if err != nil {
			return false, err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return false, err
		}
		if err := removeExisting(target); err != nil {
			return false, err
		}
		return true, os.Link(source, target)
	default:
		return false, nil
	}
}
