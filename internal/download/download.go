// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/opencontainers/go-digest"
)

// maxChecksumFileBytes bounds the size of a fetched checksums file.
const maxChecksumFileBytes = 1 << 20

type (
	// Spec describes one verified download.
	Spec struct {
		// Source is the http(s) URL to fetch.
		Source string
		// ExpectedChecksum is the hex digest, compared case-insensitively.
		ExpectedChecksum string
		// Algorithm names the digest ("SHA-256" when empty).
		Algorithm string
		// Destination is the file to create or overwrite.
		Destination string
	}

	// Result describes a completed, verified download.
	Result struct {
		Path   string
		Digest digest.Digest
		Size   int64
	}

	// Downloader streams remote archives to disk while hashing them.
	Downloader struct {
		httpClient *http.Client
		userAgent  string
		logger     *log.Logger
	}

	// Option configures a Downloader.
	Option func(*Downloader)
)

// Validate checks that all required fields are set.
func (s Spec) Validate() error {
	switch {
	case strings.TrimSpace(s.Source) == "":
		return fmt.Errorf("%w: source is empty", ErrInvalidSpec)
	case strings.TrimSpace(s.Destination) == "":
		return fmt.Errorf("%w: destination is empty", ErrInvalidSpec)
	case strings.TrimSpace(s.ExpectedChecksum) == "":
		return fmt.Errorf("%w: expected checksum is empty for %s", ErrInvalidSpec, s.Source)
	}
	return nil
}

// WithHTTPClient sets the client used for requests. Its redirect policy
// applies; the default client follows up to 10 redirects.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Downloader) {
		d.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(d *Downloader) {
		d.userAgent = ua
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(d *Downloader) {
		d.logger = l
	}
}

// New creates a Downloader. Defaults: http.DefaultClient, "jlinker/dev" and
// a logger writing to stderr.
func New(opts ...Option) *Downloader {
	d := &Downloader{
		httpClient: http.DefaultClient,
		userAgent:  "jlinker/dev",
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "download"})
	}
	return d
}

// Download fetches spec.Source into spec.Destination and verifies it.
//
// The algorithm is resolved before any network I/O. Every byte of the body is
// hashed once, in order, as it is copied to the file. The file is closed
// before the digest is compared, and it is left in place on any failure.
func (d *Downloader) Download(ctx context.Context, spec Spec) (_ *Result, err error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	alg, err := ResolveAlgorithm(spec.Algorithm)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(spec.Destination), 0o755); err != nil {
		return nil, &TransportError{Source: spec.Source, Err: err}
	}

	d.logger.Debug("downloading", "url", redactURL(spec.Source), "dest", spec.Destination, "algorithm", DisplayName(alg))

	resp, err := d.get(ctx, spec.Source)
	if err != nil {
		return nil, &TransportError{Source: spec.Source, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return nil, &DownloadFailedError{Source: spec.Source, StatusCode: resp.StatusCode}
	}

	digester := alg.Digester()
	size, err := writeFile(spec.Destination, &digestingReader{r: resp.Body, d: digester})
	if err != nil {
		return nil, &TransportError{Source: spec.Source, Err: err}
	}

	actual := digester.Digest()
	if !strings.EqualFold(actual.Encoded(), strings.TrimSpace(spec.ExpectedChecksum)) {
		return nil, &ChecksumError{
			Source:   spec.Source,
			Expected: strings.ToLower(strings.TrimSpace(spec.ExpectedChecksum)),
			Actual:   actual.Encoded(),
		}
	}

	d.logger.Info("downloaded", "file", filepath.Base(spec.Destination), "bytes", size, "digest", actual.String())

	return &Result{Path: spec.Destination, Digest: actual, Size: size}, nil
}

// FetchChecksum downloads a checksums file and returns the entry for
// filename (the basename of the archive it accompanies).
func (d *Downloader) FetchChecksum(ctx context.Context, checksumURL, filename string) (string, error) {
	resp, err := d.get(ctx, checksumURL)
	if err != nil {
		return "", &TransportError{Source: checksumURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return "", &DownloadFailedError{Source: checksumURL, StatusCode: resp.StatusCode}
	}

	entries, err := ParseChecksums(io.LimitReader(resp.Body, maxChecksumFileBytes))
	if err != nil {
		return "", &TransportError{Source: checksumURL, Err: err}
	}
	return FindChecksum(entries, filename)
}

func (d *Downloader) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	return resp, nil
}

// writeFile copies r into a freshly truncated file at dst. The close error is
// reported when the copy itself succeeded.
func writeFile(dst string, r io.Reader) (_ int64, err error) {
	f, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	n, err := io.Copy(f, r)
	if err != nil {
		return n, fmt.Errorf("writing %s: %w", dst, err)
	}
	return n, nil
}

// FileName returns the last path segment of a download URL, which names the
// archive on disk.
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("URL %q has no file name", redactURL(rawURL))
	}
	return name, nil
}

// redactURL strips query and fragment, which may carry access tokens.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
