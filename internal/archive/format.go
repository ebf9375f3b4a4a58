// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a supported archive format.
type Format string

const (
	FormatZip   Format = "zip"
	FormatTarGz Format = "tar.gz"
)

var (
	// ErrUnsupportedFormat is returned for file names without a known suffix.
	ErrUnsupportedFormat = errors.New("unsupported archive format")

	// ErrExtract is wrapped by every ExtractError.
	ErrExtract = errors.New("extraction failed")
)

type (
	// UnsupportedFormatError names the rejected archive.
	UnsupportedFormatError struct {
		Filename string
	}

	// ExtractError reports the entry that aborted an extraction.
	ExtractError struct {
		Archive string
		Entry   string
		Err     error
	}
)

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported archive format: %s", e.Filename)
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

func (e *ExtractError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("extracting %s: %v", e.Archive, e.Err)
	}
	return fmt.Sprintf("extracting %s from %s: %v", e.Entry, e.Archive, e.Err)
}

func (e *ExtractError) Unwrap() []error { return []error{ErrExtract, e.Err} }

// Extension returns the file name suffix of the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// DetectFormat selects the format from the suffix of name.
func DetectFormat(name string) (Format, error) {
	base := filepath.Base(name)
	switch {
	case strings.HasSuffix(base, FormatZip.Extension()):
		return FormatZip, nil
	case strings.HasSuffix(base, FormatTarGz.Extension()):
		return FormatTarGz, nil
	default:
		return "", &UnsupportedFormatError{Filename: base}
	}
}

// SplitName splits an archive file name into its stem and format:
// "OpenJDK21U-jdk_x64_linux.tar.gz" gives ("OpenJDK21U-jdk_x64_linux", FormatTarGz).
func SplitName(name string) (string, Format, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return "", "", err
	}
	base := filepath.Base(name)
	return strings.TrimSuffix(base, format.Extension()), format, nil
}
