// SPDX-License-Identifier: MPL-2.0

package download

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAlgorithm is returned before any network I/O when the
	// checksum algorithm is unknown.
	ErrUnsupportedAlgorithm = errors.New("unsupported checksum algorithm")

	// ErrDownloadFailed indicates the server answered with a status other than 200.
	ErrDownloadFailed = errors.New("download failed")

	// ErrChecksumMismatch indicates the computed digest differs from the expected one.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrTransport covers network and local file errors during a download.
	ErrTransport = errors.New("transport error")

	// ErrInvalidSpec is returned by Spec.Validate.
	ErrInvalidSpec = errors.New("invalid download spec")

	// ErrChecksumNotListed indicates a checksums file has no entry for the archive.
	ErrChecksumNotListed = errors.New("archive not listed in checksums file")
)

type (
	// UnsupportedAlgorithmError names the rejected algorithm.
	UnsupportedAlgorithmError struct {
		Algorithm string
	}

	// DownloadFailedError carries the HTTP status of a failed download.
	DownloadFailedError struct {
		Source     string
		StatusCode int
	}

	// ChecksumError provides both digests of a failed verification.
	ChecksumError struct {
		Source   string
		Expected string
		Actual   string
	}

	// TransportError wraps a network or file system failure.
	TransportError struct {
		Source string
		Err    error
	}
)

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported checksum algorithm %q (supported: SHA-256, SHA-384, SHA-512)", e.Algorithm)
}

func (e *UnsupportedAlgorithmError) Unwrap() error { return ErrUnsupportedAlgorithm }

func (e *DownloadFailedError) Error() string {
	return fmt.Sprintf("the download of %s failed with status code %d", e.Source, e.StatusCode)
}

func (e *DownloadFailedError) Unwrap() error { return ErrDownloadFailed }

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("the actual checksum %s does not match the expected checksum %s for %s", e.Actual, e.Expected, e.Source)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksumMismatch }

func (e *TransportError) Error() string {
	return fmt.Sprintf("downloading %s: %v", e.Source, e.Err)
}

// Unwrap returns both ErrTransport and the underlying cause, so errors.Is
// matches either (for example context.Canceled).
func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }
