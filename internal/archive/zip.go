// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
)

// maxLinkTargetBytes bounds the body of a zip symlink entry.
const maxLinkTargetBytes = 4096

func extractZip(archivePath, root string) (_ int, err error) {
	// entryTarget confines insecure names.
	zr, err := zip.OpenReader(archivePath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return 0, &ExtractError{Archive: archivePath, Err: err}
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	n := 0
	for _, f := range zr.File {
		name := cleanEntryName(f.Name)
		if name == "" {
			continue
		}
		if entryErr := extractZipEntry(f, name, root); entryErr != nil {
			return n, &ExtractError{Archive: archivePath, Entry: f.Name, Err: entryErr}
		}
		n++
	}
	return n, nil
}

func extractZipEntry(f *zip.File, name, root string) (err error) {
	target, err := entryTarget(root, name)
	if err != nil {
		return err
	}

	mode := f.Mode()
	if mode.IsDir() {
		return mkdirEntry(target, mode)
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if mode&os.ModeSymlink != 0 {
		link, readErr := io.ReadAll(io.LimitReader(rc, maxLinkTargetBytes))
		if readErr != nil {
			return readErr
		}
		if err := checkLinkTarget(name, string(link)); err != nil {
			return err
		}
		return symlinkEntry(target, string(link))
	}

	if mode.Perm() == 0 {
		// Archivers that record no Unix attributes.
		mode |= 0o644
	}
	return writeEntry(target, mode, rc)
}
