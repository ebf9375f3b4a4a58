// SPDX-License-Identifier: MPL-2.0

package jdk

import (
	"slices"
	"testing"
)

const temurinRelease = `IMPLEMENTOR="Eclipse Adoptium"
IMPLEMENTOR_VERSION="Temurin-21.0.1+12"
JAVA_RUNTIME_VERSION="21.0.1+12-LTS"
JAVA_VERSION="21.0.1"
JAVA_VERSION_DATE="2023-10-17"
LIBC="gnu"
MODULES="java.base java.compiler java.datatransfer"
OS_ARCH="x86_64"
OS_NAME="Linux"
SOURCE=".:git:5bd3d6e1d0ce"
`

func TestParseRelease(t *testing.T) {
	t.Parallel()

	meta, err := ParseRelease([]byte(temurinRelease))
	if err != nil {
		t.Fatalf("ParseRelease() error = %v", err)
	}

	fields := []struct {
		name string
		got  string
		want string
	}{
		{"JavaVersion", meta.JavaVersion, "21.0.1"},
		{"OSName", meta.OSName, "Linux"},
		{"OSArch", meta.OSArch, "x86_64"},
		{"Implementor", meta.Implementor, "Eclipse Adoptium"},
		{"ImplementorVersion", meta.ImplementorVersion, "Temurin-21.0.1+12"},
		{"LIBC", meta.Properties["LIBC"], "gnu"},
		{"Platform", meta.Platform(), "Linux/x86_64"},
	}
	for _, f := range fields {
		if f.got != f.want {
			t.Errorf("%s = %q, want %q", f.name, f.got, f.want)
		}
	}

	if want := []string{"java.base", "java.compiler", "java.datatransfer"}; !slices.Equal(meta.Modules, want) {
		t.Errorf("Modules = %v, want %v", meta.Modules, want)
	}
}

func TestParseReleaseUnquoted(t *testing.T) {
	t.Parallel()

	meta, err := ParseRelease([]byte("JAVA_VERSION=21\nOS_NAME=Darwin\n"))
	if err != nil {
		t.Fatalf("ParseRelease() error = %v", err)
	}
	if meta.JavaVersion != "21" || meta.OSName != "Darwin" {
		t.Errorf("ParseRelease() = %q on %q, want 21 on Darwin", meta.JavaVersion, meta.OSName)
	}
}

func TestReleaseVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		semver  string
		feature int
	}{
		{"21.0.1", "v21.0.1", 21},
		{"21", "v21.0.0", 21},
		{"17.0.9", "v17.0.9", 17},
		{"11.0.20.1", "v11.0.20", 11},
		{"1.8.0_392", "v1.8.0", 8},
		{"22-ea", "v22.0.0", 22},
		{"", "", 0},
		{"unknown", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()

			meta := &ReleaseMetadata{JavaVersion: tt.version}
			if got := meta.SemVer(); got != tt.semver {
				t.Errorf("SemVer() = %q, want %q", got, tt.semver)
			}
			if got := meta.FeatureRelease(); got != tt.feature {
				t.Errorf("FeatureRelease() = %d, want %d", got, tt.feature)
			}
		})
	}
}

func TestSameFeatureRelease(t *testing.T) {
	t.Parallel()

	a := &ReleaseMetadata{JavaVersion: "21.0.1"}
	b := &ReleaseMetadata{JavaVersion: "21.0.5"}
	c := &ReleaseMetadata{JavaVersion: "17.0.9"}
	unknown := &ReleaseMetadata{}

	if !a.SameFeatureRelease(b) {
		t.Error("21.0.1 and 21.0.5 should share a feature release")
	}
	if a.SameFeatureRelease(c) {
		t.Error("21.0.1 and 17.0.9 should not share a feature release")
	}
	if unknown.SameFeatureRelease(unknown) {
		t.Error("unknown versions should never match")
	}
	if a.SameFeatureRelease(nil) {
		t.Error("nil metadata should never match")
	}
}
