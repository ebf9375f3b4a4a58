// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"path/filepath"
	"testing"
)

// ReleaseFile returns the content of a JDK release file for version on
// Linux/x86_64.
func ReleaseFile(version string) string {
	return fmt.Sprintf("JAVA_VERSION=%q\nOS_NAME=\"Linux\"\nOS_ARCH=\"x86_64\"\nIMPLEMENTOR=\"Eclipse Adoptium\"\n", version)
}

// NewJDKHome creates a JDK home in a temporary directory holding a release
// file and, when withJmods is set, jmods/java.base.jmod.
func NewJDKHome(t testing.TB, version string, withJmods bool) string {
	t.Helper()
	home := t.TempDir()
	MustWriteFile(t, filepath.Join(home, "release"), []byte(ReleaseFile(version)), 0o644)
	if withJmods {
		MustWriteFile(t, filepath.Join(home, "jmods", "java.base.jmod"), []byte("JM"), 0o644)
	}
	return home
}

// JDKTarGz builds a .tar.gz holding <top>/release and, when withJmods is
// set, <top>/jmods/java.base.jmod. Parent directories of top get no entries.
func JDKTarGz(t testing.TB, top, version string, withJmods bool) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	write := func(hdr *tar.Header, body string) {
		hdr.Size = int64(len(body))
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("writing tar header %s: %v", hdr.Name, err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatalf("writing tar entry %s: %v", hdr.Name, err)
		}
	}
	write(&tar.Header{Name: top + "/", Typeflag: tar.TypeDir, Mode: 0o755}, "")
	write(&tar.Header{Name: top + "/release", Typeflag: tar.TypeReg, Mode: 0o644}, ReleaseFile(version))
	if withJmods {
		write(&tar.Header{Name: top + "/jmods/", Typeflag: tar.TypeDir, Mode: 0o755}, "")
		write(&tar.Header{Name: top + "/jmods/java.base.jmod", Typeflag: tar.TypeReg, Mode: 0o644}, "JM")
	}

	MustClose(t, tw)
	MustClose(t, gz)
	return buf.Bytes()
}
