// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestJDKTarGz(t *testing.T) {
	t.Parallel()

	gz, err := gzip.NewReader(bytes.NewReader(JDKTarGz(t, "jdk-21", "21.0.1", true)))
	if err != nil {
		t.Fatal(err)
	}
	tr := tar.NewReader(gz)

	var names []string
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, hdr.Name)
		if hdr.Name == "jdk-21/release" {
			data, _ := io.ReadAll(tr)
			if !strings.Contains(string(data), `JAVA_VERSION="21.0.1"`) {
				t.Errorf("release = %q", data)
			}
		}
	}

	want := []string{"jdk-21/", "jdk-21/release", "jdk-21/jmods/", "jdk-21/jmods/java.base.jmod"}
	if !slices.Equal(names, want) {
		t.Errorf("entries = %v, want %v", names, want)
	}
}

func TestNewJDKHome(t *testing.T) {
	t.Parallel()

	home := NewJDKHome(t, "17.0.2", false)
	if _, err := os.Stat(filepath.Join(home, "release")); err != nil {
		t.Errorf("release missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "jmods")); !os.IsNotExist(err) {
		t.Errorf("jmods exists without withJmods: %v", err)
	}
}

func TestSHA256Hex(t *testing.T) {
	t.Parallel()

	const emptyDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := SHA256Hex(nil); got != emptyDigest {
		t.Errorf("SHA256Hex(nil) = %s", got)
	}
}
