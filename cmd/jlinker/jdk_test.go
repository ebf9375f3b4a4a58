// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jlinker/jlinker/internal/download"
	"github.com/jlinker/jlinker/internal/jdk"
	"github.com/jlinker/jlinker/internal/testutil"
)

func writeJdkArchive(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "OpenJDK21U-jdk_aarch64_linux.tar.gz")
	if err := os.WriteFile(path, testutil.JDKTarGz(t, "jdk-21.0.2+13", "21.0.2", true), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestJdkInspect(t *testing.T) {
	t.Parallel()

	res := runCLI(t, Dependencies{}, "jdk", "inspect", writeJdkArchive(t))
	if res.err != nil {
		t.Fatalf("inspect error = %v", res.err)
	}

	for _, want := range []string{"jdk-21.0.2+13", "Jmods: yes", "Version: 21.0.2", "Feature release: 21", "Linux/x86_64", "Eclipse Adoptium"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout %q missing %q", res.stdout, want)
		}
	}
}

func TestJdkExtractAndResolve(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "linux")
	res := runCLI(t, Dependencies{}, "jdk", "extract", writeJdkArchive(t), dest)
	if res.err != nil {
		t.Fatalf("extract error = %v", res.err)
	}
	if !strings.Contains(res.stdout, dest) {
		t.Errorf("stdout = %q", res.stdout)
	}

	res = runCLI(t, Dependencies{}, "jdk", "resolve", dest)
	if res.err != nil {
		t.Fatalf("resolve error = %v", res.err)
	}
	wantJmods := filepath.Join(dest, "jdk-21.0.2+13", jdk.JmodsDirName)
	if !strings.Contains(res.stdout, wantJmods) {
		t.Errorf("stdout %q missing %s", res.stdout, wantJmods)
	}
}

func TestJdkExtractFresh(t *testing.T) {
	t.Parallel()

	archivePath := writeJdkArchive(t)
	res := runCLI(t, Dependencies{}, "jdk", "extract", archivePath)
	if res.err != nil {
		t.Fatalf("extract error = %v", res.err)
	}

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(archivePath), "OpenJDK21U-jdk_aarch64_linux-*", "jdk-21.0.2+13", "release"))
	if err != nil || len(matches) != 1 {
		t.Errorf("fresh extraction not found: %v %v", matches, err)
	}
}

func TestJdkResolveWithoutJmods(t *testing.T) {
	t.Parallel()

	home := newHostJDK(t, "24")
	res := runCLI(t, Dependencies{}, "jdk", "resolve", home)
	if !errors.Is(res.err, jdk.ErrJmodsNotFound) {
		t.Fatalf("error = %v, want ErrJmodsNotFound", res.err)
	}
}

func TestJdkDownload(t *testing.T) {
	t.Parallel()

	body := testutil.JDKTarGz(t, "jdk-21.0.2+13", "21.0.2", true)
	const name = "OpenJDK21U-jdk_aarch64_linux.tar.gz"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/" + name:
			_, _ = w.Write(body)
		case "/sha256.txt":
			fmt.Fprintf(w, "%s  %s\n", testutil.SHA256Hex(body), name)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	t.Run("checksum url", func(t *testing.T) {
		t.Parallel()
		dest := filepath.Join(t.TempDir(), name)
		res := runCLI(t, Dependencies{HTTPClient: srv.Client()}, "jdk", "download", srv.URL+"/"+name,
			"--checksum-url", srv.URL+"/sha256.txt", "--output", dest)
		if res.err != nil {
			t.Fatalf("download error = %v", res.err)
		}
		if !strings.Contains(res.stdout, "sha256:"+testutil.SHA256Hex(body)) {
			t.Errorf("stdout = %q", res.stdout)
		}
		if _, err := os.Stat(dest); err != nil {
			t.Errorf("archive not written: %v", err)
		}
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		t.Parallel()
		dest := filepath.Join(t.TempDir(), name)
		res := runCLI(t, Dependencies{HTTPClient: srv.Client()}, "jdk", "download", srv.URL+"/"+name,
			"--checksum", strings.Repeat("0", 64), "--output", dest)
		if !errors.Is(res.err, download.ErrChecksumMismatch) {
			t.Fatalf("error = %v, want ErrChecksumMismatch", res.err)
		}
	})

	t.Run("missing checksum flags", func(t *testing.T) {
		t.Parallel()
		res := runCLI(t, Dependencies{HTTPClient: srv.Client()}, "jdk", "download", srv.URL+"/"+name)
		if res.err == nil {
			t.Fatal("download without --checksum or --checksum-url succeeded")
		}
	})
}

func TestJdkVerify(t *testing.T) {
	t.Parallel()

	path := writeJdkArchive(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	res := runCLI(t, Dependencies{}, "jdk", "verify", path, "--checksum", strings.ToUpper(testutil.SHA256Hex(data)))
	if res.err != nil {
		t.Fatalf("verify error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "Verified") || !strings.Contains(res.stdout, "SHA-256") {
		t.Errorf("stdout = %q", res.stdout)
	}

	res = runCLI(t, Dependencies{}, "jdk", "verify", path, "--checksum", testutil.SHA256Hex(data), "--algorithm", "MD5")
	if !errors.Is(res.err, download.ErrUnsupportedAlgorithm) {
		t.Errorf("error = %v, want ErrUnsupportedAlgorithm", res.err)
	}
}
