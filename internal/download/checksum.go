// SPDX-License-Identifier: MPL-2.0

package download

import (
	"bufio"
	_ "crypto/sha256" // registers SHA-256 with the digest package
	_ "crypto/sha512" // registers SHA-384 and SHA-512
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/opencontainers/go-digest"
)

// DefaultAlgorithm is used when a Spec does not name one.
const DefaultAlgorithm = digest.SHA256

// ResolveAlgorithm maps a user-facing algorithm name ("SHA-256", "sha256",
// "Sha-512") to a digest.Algorithm. An empty name selects DefaultAlgorithm.
func ResolveAlgorithm(name string) (digest.Algorithm, error) {
	if strings.TrimSpace(name) == "" {
		return DefaultAlgorithm, nil
	}
	alg := digest.Algorithm(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", ""))
	if !alg.Available() {
		return "", &UnsupportedAlgorithmError{Algorithm: name}
	}
	return alg, nil
}

// DisplayName returns the conventional upper-case name ("SHA-256").
func DisplayName(alg digest.Algorithm) string {
	s := strings.ToUpper(alg.String())
	if strings.HasPrefix(s, "SHA") && len(s) > 3 {
		return "SHA-" + s[3:]
	}
	return s
}

// digestingReader feeds every chunk read from r to the digester before
// handing it to the caller. The chunk is only read, never modified, and each
// byte is hashed exactly once in stream order.
type digestingReader struct {
	r io.Reader
	d digest.Digester
}

func (dr *digestingReader) Read(p []byte) (int, error) {
	n, err := dr.r.Read(p)
	if n > 0 {
		// hash.Hash.Write never returns an error.
		_, _ = dr.d.Hash().Write(p[:n])
	}
	return n, err
}

// ComputeFileHash returns the lowercase hex digest of the file at path.
func ComputeFileHash(path string, alg digest.Algorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }() // read-only

	d, err := alg.FromReader(f)
	if err != nil {
		return "", fmt.Errorf("hashing file %s: %w", path, err)
	}
	return d.Encoded(), nil
}

// VerifyFile recomputes the digest of path and compares it with expected,
// ignoring case. A mismatch is reported as *ChecksumError.
func VerifyFile(path, expected string, alg digest.Algorithm) error {
	got, err := ComputeFileHash(path, alg)
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, expected) {
		return &ChecksumError{
			Source:   path,
			Expected: strings.ToLower(expected),
			Actual:   got,
		}
	}
	return nil
}

// ChecksumEntry is one line of a sha256sum-style checksums file.
type ChecksumEntry struct {
	Hash     string
	Filename string
}

// ParseChecksums parses "<hex>  <filename>" or "<hex> *<filename>" lines, the
// format vendors publish next to JDK archives. A file holding a bare digest
// yields a single entry with an empty Filename. Malformed lines are skipped.
func ParseChecksums(r io.Reader) ([]ChecksumEntry, error) {
	var entries []ChecksumEntry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || !isHex(fields[0]) {
			continue
		}
		entry := ChecksumEntry{Hash: strings.ToLower(fields[0])}
		if len(fields) > 1 {
			entry.Filename = strings.TrimPrefix(fields[1], "*")
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading checksums: %w", err)
	}
	return entries, nil
}

// FindChecksum returns the hash listed for filename. An entry without a
// filename matches anything when it is the only entry.
func FindChecksum(entries []ChecksumEntry, filename string) (string, error) {
	for _, e := range entries {
		if e.Filename == filename {
			return e.Hash, nil
		}
	}
	if len(entries) == 1 && entries[0].Filename == "" {
		return entries[0].Hash, nil
	}
	return "", fmt.Errorf("%w: %s", ErrChecksumNotListed, filename)
}

func isHex(s string) bool {
	if len(s) < 32 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
