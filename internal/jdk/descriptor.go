// SPDX-License-Identifier: MPL-2.0

package jdk

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jlinker/jlinker/internal/archive"
	"github.com/jlinker/jlinker/internal/download"
)

var (
	// ErrInvalidDescriptor is wrapped by every Descriptor validation failure.
	ErrInvalidDescriptor = errors.New("invalid JDK image descriptor")

	// ErrNoRepository indicates no repository serves a descriptor's group.
	ErrNoRepository = errors.New("no repository configured for group")
)

type (
	// Descriptor names a target JDK an image is linked against. Exactly one
	// source is set: a download URL, a Maven-style group plus archive file
	// name resolved against a Repository, or an already installed Home.
	Descriptor struct {
		Name              string
		URL               string
		Checksum          string
		ChecksumAlgorithm string
		// ChecksumURL points at a published checksums file used when
		// Checksum is empty.
		ChecksumURL string
		Group       string
		Archive     string
		Home        string
	}

	// Coordinate is the group:name@ext form of an archive dependency.
	Coordinate struct {
		Group string
		Name  string
		Ext   string
	}

	// Repository serves archives for one group from a base URL.
	Repository struct {
		Group string
		URL   string
	}
)

func (c Coordinate) String() string {
	return c.Group + ":" + c.Name + "@" + c.Ext
}

// Validate checks the descriptor shape.
func (d *Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalidDescriptor)
	}
	if d.Name == "." || d.Name == ".." || strings.ContainsAny(d.Name, `/\`) {
		return fmt.Errorf("%w: name %q must be a single path element", ErrInvalidDescriptor, d.Name)
	}

	sources := 0
	for _, s := range []string{d.URL, d.Group, d.Home} {
		if strings.TrimSpace(s) != "" {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("%w: %s: exactly one of url, group or java_home must be set", ErrInvalidDescriptor, d.Name)
	}
	if d.Home != "" {
		return nil
	}

	if d.Group != "" && d.Archive == "" {
		return fmt.Errorf("%w: %s: group requires an archive file name", ErrInvalidDescriptor, d.Name)
	}
	if _, err := d.ArchiveName(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDescriptor, d.Name, err)
	}
	if strings.TrimSpace(d.Checksum) == "" && strings.TrimSpace(d.ChecksumURL) == "" {
		return fmt.Errorf("%w: %s: checksum or checksum_url is required", ErrInvalidDescriptor, d.Name)
	}
	if _, err := download.ResolveAlgorithm(d.ChecksumAlgorithm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDescriptor, d.Name, err)
	}
	return nil
}

// IsInstalled reports whether the descriptor points at a local JDK home.
func (d *Descriptor) IsInstalled() bool {
	return d.Home != ""
}

// ArchiveName returns the archive file name, from Archive or the last URL
// segment. It fails unless the name ends in ".zip" or ".tar.gz".
func (d *Descriptor) ArchiveName() (string, error) {
	name := d.Archive
	if name == "" {
		var err error
		if name, err = download.FileName(d.URL); err != nil {
			return "", err
		}
	}
	if _, err := archive.DetectFormat(name); err != nil {
		return "", err
	}
	return name, nil
}

// Coordinate derives the dependency coordinate by stripping the archive
// suffix: "OpenJDK21U-jdk_x64_linux.tar.gz" gives name
// "OpenJDK21U-jdk_x64_linux" and ext "tar.gz".
func (d *Descriptor) Coordinate() (Coordinate, error) {
	name, err := d.ArchiveName()
	if err != nil {
		return Coordinate{}, err
	}
	stem, format, err := archive.SplitName(name)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{Group: d.Group, Name: stem, Ext: string(format)}, nil
}

// CapitalizedName returns Name with an upper-case first letter, used to
// derive identifiers such as "downloadJdkLinuxX64".
func (d *Descriptor) CapitalizedName() string {
	r, size := utf8.DecodeRuneInString(d.Name)
	if r == utf8.RuneError {
		return d.Name
	}
	return string(unicode.ToUpper(r)) + d.Name[size:]
}

// DownloadSource returns the URL the archive is fetched from. A coordinate is
// resolved as <repository url>/<name>.<ext> against the first repository
// serving its group.
func (d *Descriptor) DownloadSource(repos []Repository) (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	coord, err := d.Coordinate()
	if err != nil {
		return "", err
	}
	for _, repo := range repos {
		if repo.Group == coord.Group {
			return strings.TrimRight(repo.URL, "/") + "/" + coord.Name + "." + coord.Ext, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrNoRepository, coord.Group)
}
