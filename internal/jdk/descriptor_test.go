// SPDX-License-Identifier: MPL-2.0

package jdk

import (
	"errors"
	"strings"
	"testing"

	"github.com/jlinker/jlinker/internal/archive"
	"github.com/jlinker/jlinker/internal/download"
)

var validChecksum = strings.Repeat("a", 64)

func TestDescriptorValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		desc    Descriptor
		wantErr string
	}{
		{
			name: "url with checksum",
			desc: Descriptor{Name: "linuxX64", URL: "https://example.com/jdk.tar.gz", Checksum: validChecksum},
		},
		{
			name: "url with checksum file",
			desc: Descriptor{Name: "linuxX64", URL: "https://example.com/jdk.zip", ChecksumURL: "https://example.com/jdk.zip.sha256.txt"},
		},
		{
			name: "coordinate",
			desc: Descriptor{Name: "macAarch64", Group: "adoptium", Archive: "OpenJDK21U-jdk_aarch64_mac.tar.gz", Checksum: validChecksum},
		},
		{
			name: "installed home",
			desc: Descriptor{Name: "local", Home: "/opt/jdk-21"},
		},
		{
			name:    "blank name",
			desc:    Descriptor{Name: "  ", URL: "https://example.com/jdk.zip", Checksum: validChecksum},
			wantErr: "name must not be blank",
		},
		{
			name:    "parent directory name",
			desc:    Descriptor{Name: "..", URL: "https://example.com/jdk.zip", Checksum: validChecksum},
			wantErr: "single path element",
		},
		{
			name:    "nested name",
			desc:    Descriptor{Name: "linux/x64", URL: "https://example.com/jdk.zip", Checksum: validChecksum},
			wantErr: "single path element",
		},
		{
			name:    "no source",
			desc:    Descriptor{Name: "x", Checksum: validChecksum},
			wantErr: "exactly one of",
		},
		{
			name:    "two sources",
			desc:    Descriptor{Name: "x", URL: "https://example.com/jdk.zip", Home: "/opt/jdk", Checksum: validChecksum},
			wantErr: "exactly one of",
		},
		{
			name:    "group without archive",
			desc:    Descriptor{Name: "x", Group: "adoptium", Checksum: validChecksum},
			wantErr: "requires an archive",
		},
		{
			name:    "unsupported extension",
			desc:    Descriptor{Name: "x", URL: "https://example.com/jdk.7z", Checksum: validChecksum},
			wantErr: "unsupported archive format: jdk.7z",
		},
		{
			name:    "missing checksum",
			desc:    Descriptor{Name: "x", URL: "https://example.com/jdk.zip"},
			wantErr: "checksum or checksum_url is required",
		},
		{
			name:    "unsupported algorithm",
			desc:    Descriptor{Name: "x", URL: "https://example.com/jdk.zip", Checksum: validChecksum, ChecksumAlgorithm: "MD5"},
			wantErr: "unsupported checksum algorithm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.desc.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidDescriptor) {
				t.Fatalf("Validate() error = %v, want ErrInvalidDescriptor", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDescriptorValidateWrapsCause(t *testing.T) {
	t.Parallel()

	err := (&Descriptor{Name: "x", URL: "https://example.com/jdk.rar", Checksum: validChecksum}).Validate()
	if !errors.Is(err, archive.ErrUnsupportedFormat) {
		t.Errorf("Validate() error = %v, want ErrUnsupportedFormat", err)
	}

	err = (&Descriptor{Name: "x", URL: "https://example.com/jdk.zip", Checksum: validChecksum, ChecksumAlgorithm: "sha1"}).Validate()
	if !errors.Is(err, download.ErrUnsupportedAlgorithm) {
		t.Errorf("Validate() error = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestDescriptorCoordinate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		archive string
		want    Coordinate
	}{
		{"OpenJDK21U-jdk_x64_linux_hotspot_21.0.1_12.tar.gz", Coordinate{Group: "adoptium", Name: "OpenJDK21U-jdk_x64_linux_hotspot_21.0.1_12", Ext: "tar.gz"}},
		{"OpenJDK21U-jdk_x64_windows_hotspot_21.0.1_12.zip", Coordinate{Group: "adoptium", Name: "OpenJDK21U-jdk_x64_windows_hotspot_21.0.1_12", Ext: "zip"}},
	}

	for _, tt := range tests {
		t.Run(tt.archive, func(t *testing.T) {
			t.Parallel()

			d := Descriptor{Name: "x", Group: "adoptium", Archive: tt.archive}
			got, err := d.Coordinate()
			if err != nil {
				t.Fatalf("Coordinate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Coordinate() = %+v, want %+v", got, tt.want)
			}
		})
	}

	_, err := (&Descriptor{Name: "x", Group: "g", Archive: "jdk.tar.bz2"}).Coordinate()
	if !errors.Is(err, archive.ErrUnsupportedFormat) {
		t.Errorf("Coordinate() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestCoordinateString(t *testing.T) {
	t.Parallel()

	c := Coordinate{Group: "adoptium", Name: "jdk", Ext: "zip"}
	if got := c.String(); got != "adoptium:jdk@zip" {
		t.Errorf("String() = %q, want adoptium:jdk@zip", got)
	}
}

func TestDescriptorCapitalizedName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"linuxX64":   "LinuxX64",
		"MacAarch64": "MacAarch64",
		"":           "",
	}
	for name, want := range tests {
		if got := (&Descriptor{Name: name}).CapitalizedName(); got != want {
			t.Errorf("CapitalizedName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestDescriptorDownloadSource(t *testing.T) {
	t.Parallel()

	repos := []Repository{
		{Group: "other", URL: "https://other.example.com"},
		{Group: "adoptium", URL: "https://github.com/adoptium/temurin21-binaries/releases/download/jdk-21.0.1+12/"},
	}

	d := Descriptor{Name: "linux", Group: "adoptium", Archive: "OpenJDK21U-jdk_x64_linux.tar.gz", Checksum: validChecksum}
	src, err := d.DownloadSource(repos)
	if err != nil {
		t.Fatalf("DownloadSource() error = %v", err)
	}
	if want := "https://github.com/adoptium/temurin21-binaries/releases/download/jdk-21.0.1+12/OpenJDK21U-jdk_x64_linux.tar.gz"; src != want {
		t.Errorf("DownloadSource() = %q, want %q", src, want)
	}

	direct := Descriptor{Name: "linux", URL: "https://example.com/jdk.zip"}
	src, err = direct.DownloadSource(nil)
	if err != nil {
		t.Fatalf("DownloadSource() error = %v", err)
	}
	if src != "https://example.com/jdk.zip" {
		t.Errorf("DownloadSource() = %q, want the direct url", src)
	}

	if _, err := d.DownloadSource(repos[:1]); !errors.Is(err, ErrNoRepository) {
		t.Errorf("DownloadSource() error = %v, want ErrNoRepository", err)
	}
}
