// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	securejoin "github.com/cyphar/filepath-securejoin"
)

type (
	// Extractor unpacks archives into directories.
	Extractor struct {
		logger *log.Logger
	}

	// Option configures an Extractor.
	Option func(*Extractor)
)

// WithLogger sets the logger for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "archive"})
	}
	return e
}

// Extract unpacks archivePath into destDir using a default Extractor.
func Extract(archivePath, destDir string) error {
	return New().Extract(archivePath, destDir)
}

// Extract replaces destDir with the contents of archivePath. The format is
// checked first, so an unsupported archive leaves destDir untouched.
func (e *Extractor) Extract(archivePath, destDir string) error {
	format, err := DetectFormat(archivePath)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(destDir); err != nil {
		return &ExtractError{Archive: archivePath, Err: fmt.Errorf("clearing %s: %w", destDir, err)}
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return &ExtractError{Archive: archivePath, Err: err}
	}

	return e.extract(format, archivePath, destDir)
}

// ExtractFresh unpacks archivePath into a new, uniquely named directory under
// parentDir and returns its path. Nothing existing is deleted.
func (e *Extractor) ExtractFresh(archivePath, parentDir string) (string, error) {
	stem, format, err := SplitName(archivePath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(parentDir, 0o755); err != nil {
		return "", &ExtractError{Archive: archivePath, Err: err}
	}
	destDir, err := os.MkdirTemp(parentDir, stem+"-*")
	if err != nil {
		return "", &ExtractError{Archive: archivePath, Err: err}
	}

	if err := e.extract(format, archivePath, destDir); err != nil {
		return "", err
	}
	return destDir, nil
}

func (e *Extractor) extract(format Format, archivePath, destDir string) error {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return &ExtractError{Archive: archivePath, Err: err}
	}

	e.logger.Debug("extracting", "archive", archivePath, "dest", absDest, "format", format)

	var n int
	switch format {
	case FormatZip:
		n, err = extractZip(archivePath, absDest)
	case FormatTarGz:
		n, err = extractTarGz(archivePath, absDest)
	default:
		return &UnsupportedFormatError{Filename: filepath.Base(archivePath)}
	}
	if err != nil {
		return err
	}

	e.logger.Info("extracted", "archive", filepath.Base(archivePath), "entries", n, "dest", absDest)
	return nil
}

// cleanEntryName normalises an archive entry name to a slash-separated
// relative path. It returns "" for the archive root.
func cleanEntryName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Clean("/" + name)
	return strings.TrimPrefix(name, "/")
}

// entryTarget returns the host path for an entry. The parent directory is
// resolved inside root, following symlinks already extracted; the last
// element is kept as is so that an existing symlink at that location is
// replaced rather than followed.
func entryTarget(root, name string) (string, error) {
	parent, err := securejoin.SecureJoin(root, filepath.FromSlash(path.Dir(name)))
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, path.Base(name)), nil
}

// checkLinkTarget rejects symlink targets that are absolute or climb above
// the archive root when resolved from the directory holding the link.
func checkLinkTarget(name, linkname string) error {
	if linkname == "" {
		return fmt.Errorf("empty symlink target")
	}
	slashed := filepath.ToSlash(linkname)
	if filepath.IsAbs(linkname) || path.IsAbs(slashed) {
		return fmt.Errorf("absolute symlink target %q", linkname)
	}

	depth := 0
	if dir := path.Dir(name); dir != "." {
		depth = len(strings.Split(dir, "/"))
	}
	for _, part := range strings.Split(slashed, "/") {
		switch part {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return fmt.Errorf("symlink target %q escapes the destination", linkname)
			}
		default:
			depth++
		}
	}
	return nil
}

func mkdirEntry(target string, mode os.FileMode) error {
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	// Owner needs write access to populate the directory.
	return os.Chmod(target, mode.Perm()|0o700)
}

func writeEntry(target string, mode os.FileMode, r io.Reader) (err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := removeExisting(target); err != nil {
		return err
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	//nolint:gosec // G110: archives come from checksum-verified downloads
	if _, err = io.Copy(f, r); err != nil {
		return err
	}
	// OpenFile is subject to the umask; set the archived bits exactly.
	return f.Chmod(mode.Perm())
}

func symlinkEntry(target, linkname string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := removeExisting(target); err != nil {
		return err
	}
	return os.Symlink(filepath.FromSlash(linkname), target)
}

func removeExisting(target string) error {
	fi, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s already exists as a directory", target)
	}
	return os.Remove(target)
}
