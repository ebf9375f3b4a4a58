// SPDX-License-Identifier: MPL-2.0

package jdk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/jlinker/jlinker/pkg/platform"
)

// JmodsDirName is the directory holding packaged modules in a JDK home.
const JmodsDirName = "jmods"

var (
	// ErrJmodsNotFound indicates a JDK without a jmods directory.
	ErrJmodsNotFound = errors.New("jmods directory not found")

	// ErrReleaseFileNotFound indicates no usable release file below a directory.
	ErrReleaseFileNotFound = errors.New("release file not found")
)

type (
	// JmodsNotFoundError is returned for JDK builds that link from the run-time
	// image and ship no jmods directory.
	JmodsNotFoundError struct {
		JdkHome string
	}

	// ReleaseFileNotFoundError is returned when no release file with a
	// JAVA_VERSION entry exists below SearchedDir.
	ReleaseFileNotFoundError struct {
		SearchedDir string
	}

	// Installation is a located JDK home.
	Installation struct {
		Home    string
		Release *ReleaseMetadata
	}

	// Resolver locates JDK homes inside extracted distributions.
	Resolver struct {
		logger *log.Logger
	}

	// ResolverOption configures a Resolver.
	ResolverOption func(*Resolver)
)

func (e *JmodsNotFoundError) Error() string {
	return fmt.Sprintf("jmods directory is not found in %s. Cross-linking is not available with the given distribution. See https://openjdk.org/jeps/493 for details", e.JdkHome)
}

func (e *JmodsNotFoundError) Unwrap() error { return ErrJmodsNotFound }

func (e *ReleaseFileNotFoundError) Error() string {
	return fmt.Sprintf("cannot find a valid 'release' file in %s or any of its subdirectories", e.SearchedDir)
}

func (e *ReleaseFileNotFoundError) Unwrap() error { return ErrReleaseFileNotFound }

// JmodsDir returns <home>/jmods.
func (i *Installation) JmodsDir() string {
	return filepath.Join(i.Home, JmodsDirName)
}

// JlinkPath returns <home>/bin/jlink[.exe].
func (i *Installation) JlinkPath() string {
	return BinPath(i.Home, "jlink")
}

// JavaPath returns <home>/bin/java[.exe].
func (i *Installation) JavaPath() string {
	return BinPath(i.Home, "java")
}

// BinPath returns the path of a JDK tool for the host OS.
func BinPath(home, tool string) string {
	return filepath.Join(home, "bin", platform.ExecutableName(tool))
}

// WithResolverLogger sets the logger that reports skipped candidates.
func WithResolverLogger(l *log.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "jdk"})
	}
	return r
}

// Resolve walks root in lexical order and returns the JDK home holding the
// first release file with a JAVA_VERSION entry. Unreadable or unparsable
// candidates are logged and skipped. The result is never cached.
func (r *Resolver) Resolve(root string) (*Installation, error) {
	dir, meta, err := r.findRelease(os.DirFS(root), root)
	if err != nil {
		return nil, err
	}
	return &Installation{
		Home:    filepath.Join(root, filepath.FromSlash(dir)),
		Release: meta,
	}, nil
}

// ResolveJmodsDir resolves the JDK below root and returns its jmods
// directory, failing with *JmodsNotFoundError when it does not exist.
func (r *Resolver) ResolveJmodsDir(root string) (string, error) {
	inst, err := r.ResolveWithJmods(root)
	if err != nil {
		return "", err
	}
	return inst.JmodsDir(), nil
}

// ResolveWithJmods is Resolve for JDKs that must ship a jmods directory.
func (r *Resolver) ResolveWithJmods(root string) (*Installation, error) {
	inst, err := r.Resolve(root)
	if err != nil {
		return nil, err
	}

	jmods := inst.JmodsDir()
	fi, err := os.Stat(jmods)
	if err != nil || !fi.IsDir() {
		return nil, &JmodsNotFoundError{JdkHome: inst.Home}
	}

	r.logger.Debug("resolved jmods", "dir", jmods, "version", inst.Release.JavaVersion, "platform", inst.Release.Platform())
	return inst, nil
}

// ReadReleaseFS finds the release file of the JDK inside fsys, which is
// typically an unextracted archive opened with archive.OpenFS. It returns the
// slash-separated home directory and its metadata.
func (r *Resolver) ReadReleaseFS(fsys fs.FS, label string) (string, *ReleaseMetadata, error) {
	return r.findRelease(fsys, label)
}

// findRelease implements the first-match search shared by Resolve and
// ReadReleaseFS. label names the tree in errors and logs.
func (r *Resolver) findRelease(fsys fs.FS, label string) (string, *ReleaseMetadata, error) {
	var (
		foundDir  string
		foundMeta *ReleaseMetadata
	)

	walkErr := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			r.logger.Info("skipping unreadable path", "path", path.Join(label, p), "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || d.Name() != ReleaseFileName || !d.Type().IsRegular() {
			return nil
		}

		data, readErr := fs.ReadFile(fsys, p)
		if readErr != nil {
			r.logger.Info("skipping release file", "path", path.Join(label, p), "err", readErr)
			return nil
		}
		meta, parseErr := ParseRelease(data)
		if parseErr != nil {
			r.logger.Info("skipping release file", "path", path.Join(label, p), "err", parseErr)
			return nil
		}
		if meta.JavaVersion == "" {
			r.logger.Debug("release file has no JAVA_VERSION", "path", path.Join(label, p))
			return nil
		}

		foundDir, foundMeta = path.Dir(p), meta
		return fs.SkipAll
	})
	if walkErr != nil {
		if errors.Is(walkErr, fs.ErrNotExist) {
			return "", nil, &ReleaseFileNotFoundError{SearchedDir: label}
		}
		return "", nil, fmt.Errorf("searching %s: %w", label, walkErr)
	}
	if foundMeta == nil {
		return "", nil, &ReleaseFileNotFoundError{SearchedDir: label}
	}
	return foundDir, foundMeta, nil
}
