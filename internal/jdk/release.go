// SPDX-License-Identifier: MPL-2.0

package jdk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"golang.org/x/mod/semver"
)

// ReleaseFileName is the metadata file found in every JDK home directory.
const ReleaseFileName = "release"

// ReleaseMetadata holds the keys of a JDK release file.
type ReleaseMetadata struct {
	JavaVersion        string
	OSName             string
	OSArch             string
	Implementor        string
	ImplementorVersion string
	Modules            []string
	// Properties holds every key with surrounding quotes removed.
	Properties map[string]string
}

// ParseRelease parses release file content. Values may be quoted, as in
// JAVA_VERSION="21.0.1"; the quotes are removed.
func ParseRelease(data []byte) (*ReleaseMetadata, error) {
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing release file: %w", err)
	}

	values := make(map[string]string, props.Len())
	for _, key := range props.Keys() {
		raw, _ := props.Get(key)
		values[key] = unquote(raw)
	}

	meta := &ReleaseMetadata{
		JavaVersion:        values["JAVA_VERSION"],
		OSName:             values["OS_NAME"],
		OSArch:             values["OS_ARCH"],
		Implementor:        values["IMPLEMENTOR"],
		ImplementorVersion: values["IMPLEMENTOR_VERSION"],
		Modules:            strings.Fields(values["MODULES"]),
		Properties:         values,
	}
	return meta, nil
}

// SemVer returns JAVA_VERSION as a semantic version ("21.0.1" becomes
// "v21.0.1", "1.8.0_392" becomes "v1.8.0"). It returns "" when the version
// has no numeric prefix.
func (m *ReleaseMetadata) SemVer() string {
	v := m.JavaVersion
	end := 0
	for end < len(v) && (v[end] == '.' || (v[end] >= '0' && v[end] <= '9')) {
		end++
	}
	parts := strings.Split(strings.Trim(v[:end], "."), ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	sv := "v" + strings.Join(parts, ".")
	if !semver.IsValid(sv) {
		return ""
	}
	return semver.Canonical(sv)
}

// FeatureRelease returns the Java feature release number: 21 for "21.0.1"
// and 8 for "1.8.0_392". It returns 0 when the version cannot be parsed.
func (m *ReleaseMetadata) FeatureRelease() int {
	sv := m.SemVer()
	if sv == "" {
		return 0
	}
	major, _ := strconv.Atoi(strings.TrimPrefix(semver.Major(sv), "v"))
	if major == 1 {
		// Pre-JDK 9 versioning: 1.<feature>.0
		minor := strings.Split(strings.TrimPrefix(semver.MajorMinor(sv), "v"), ".")
		if len(minor) == 2 {
			major, _ = strconv.Atoi(minor[1])
		}
	}
	return major
}

// SameFeatureRelease reports whether both JDKs have the same known feature
// release. jlink refuses jmods from a different feature release.
func (m *ReleaseMetadata) SameFeatureRelease(other *ReleaseMetadata) bool {
	if m == nil || other == nil {
		return false
	}
	a, b := m.FeatureRelease(), other.FeatureRelease()
	return a != 0 && a == b
}

// Platform returns "OS_NAME/OS_ARCH", for example "Linux/x86_64".
func (m *ReleaseMetadata) Platform() string {
	return m.OSName + "/" + m.OSArch
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
