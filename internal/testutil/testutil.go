// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes data to path, creating parent directories.
func MustWriteFile(t testing.TB, path string, data []byte, perm os.FileMode) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, data, perm); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustClose closes the given io.Closer.
// The test fails immediately if the close fails.
func MustClose(t testing.TB, c io.Closer) {
	t.Helper()
	if err := c.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}
}

// SHA256Hex returns the lower-case hex SHA-256 digest of b.
func SHA256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
