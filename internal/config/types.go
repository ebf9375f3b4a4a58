// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jlinker/jlinker/internal/jdk"
	"github.com/jlinker/jlinker/internal/jlink"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultBuildDir is where downloads, JDKs and images go by default.
	DefaultBuildDir = "build"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnknownTarget is returned when no target has the requested name.
	ErrUnknownTarget = errors.New("unknown target")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects the checks CUE cannot express.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// LauncherConfig is one application launcher.
	LauncherConfig struct {
		Name   string `json:"name" mapstructure:"name"`
		Module string `json:"module" mapstructure:"module"`
		Class  string `json:"class,omitempty" mapstructure:"class"`
	}

	// ApplicationConfig describes the image to link.
	ApplicationConfig struct {
		Name           string           `json:"name" mapstructure:"name"`
		MainModule     string           `json:"main_module" mapstructure:"main_module"`
		MainClass      string           `json:"main_class" mapstructure:"main_class"`
		Launchers      []LauncherConfig `json:"launchers" mapstructure:"launchers"`
		AddModules     []string         `json:"add_modules" mapstructure:"add_modules"`
		AddOptions     []string         `json:"add_options" mapstructure:"add_options"`
		DisablePlugins []string         `json:"disable_plugins" mapstructure:"disable_plugins"`

		NoHeaderFiles             bool `json:"no_header_files" mapstructure:"no_header_files"`
		NoManPages                bool `json:"no_man_pages" mapstructure:"no_man_pages"`
		BindServices              bool `json:"bind_services" mapstructure:"bind_services"`
		Verbose                   bool `json:"verbose" mapstructure:"verbose"`
		StripDebug                bool `json:"strip_debug" mapstructure:"strip_debug"`
		StripJavaDebugAttributes  bool `json:"strip_java_debug_attributes" mapstructure:"strip_java_debug_attributes"`
		StripNativeCommands       bool `json:"strip_native_commands" mapstructure:"strip_native_commands"`
		IgnoreSigningInformation  bool `json:"ignore_signing_information" mapstructure:"ignore_signing_information"`
		GenerateCDSArchive        bool `json:"generate_cds_archive" mapstructure:"generate_cds_archive"`
		DedupLegalNoticesStrictly bool `json:"dedup_legal_notices_strictly" mapstructure:"dedup_legal_notices_strictly"`

		Compress       string `json:"compress" mapstructure:"compress"`
		VM             string `json:"vm" mapstructure:"vm"`
		Endian         string `json:"endian" mapstructure:"endian"`
		VendorBugURL   string `json:"vendor_bug_url" mapstructure:"vendor_bug_url"`
		VendorVersion  string `json:"vendor_version" mapstructure:"vendor_version"`
		VendorVMBugURL string `json:"vendor_vm_bug_url" mapstructure:"vendor_vm_bug_url"`

		ExcludeFiles     []string `json:"exclude_files" mapstructure:"exclude_files"`
		ExcludeResources []string `json:"exclude_resources" mapstructure:"exclude_resources"`
		IncludeLocales   []string `json:"include_locales" mapstructure:"include_locales"`
		LimitModules     []string `json:"limit_modules" mapstructure:"limit_modules"`
	}

	// TargetConfig is a named cross-target JDK.
	TargetConfig struct {
		Name              string `json:"name" mapstructure:"name"`
		URL               string `json:"url" mapstructure:"url"`
		Checksum          string `json:"checksum" mapstructure:"checksum"`
		ChecksumAlgorithm string `json:"checksum_algorithm" mapstructure:"checksum_algorithm"`
		ChecksumURL       string `json:"checksum_url" mapstructure:"checksum_url"`
		Group             string `json:"group" mapstructure:"group"`
		Archive           string `json:"archive" mapstructure:"archive"`
		JavaHome          string `json:"java_home" mapstructure:"java_home"`
	}

	// RepositoryConfig serves the archives of one group.
	RepositoryConfig struct {
		Group string `json:"group" mapstructure:"group"`
		URL   string `json:"url" mapstructure:"url"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme ("auto", "dark", "light").
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// Config is the jlinker project file.
	Config struct {
		// JavaHome is the host JDK whose jlink builds every image.
		JavaHome string `json:"java_home" mapstructure:"java_home"`
		// BuildDir holds downloads, extracted JDKs and images.
		BuildDir string `json:"build_dir" mapstructure:"build_dir"`
		// ModulePath lists the application's module directories and jars.
		ModulePath   []string           `json:"module_path" mapstructure:"module_path"`
		Application  ApplicationConfig  `json:"application" mapstructure:"application"`
		Targets      []TargetConfig     `json:"targets" mapstructure:"targets"`
		Repositories []RepositoryConfig `json:"repositories" mapstructure:"repositories"`
		UI           UIConfig           `json:"ui" mapstructure:"ui"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid returns whether the ColorScheme is one of the defined schemes.
// The zero value counts as auto.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case "", ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// Error lists every field error.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Descriptor converts the target to a jdk.Descriptor.
func (t TargetConfig) Descriptor() jdk.Descriptor {
	return jdk.Descriptor{
		Name:              t.Name,
		URL:               t.URL,
		Checksum:          t.Checksum,
		ChecksumAlgorithm: t.ChecksumAlgorithm,
		ChecksumURL:       t.ChecksumURL,
		Group:             t.Group,
		Archive:           t.Archive,
		Home:              t.JavaHome,
	}
}

// IsValid checks what the CUE schema cannot: unique target names, the
// shape of every target descriptor and repository groups used by targets.
// The application section is checked when an image is built, so that
// "jdk" and "config" commands work with a partial file.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}

	groups := make(map[string]bool, len(c.Repositories))
	for _, r := range c.Repositories {
		groups[r.Group] = true
	}

	seen := make(map[string]int, len(c.Targets))
	for i, t := range c.Targets {
		if first, ok := seen[t.Name]; ok {
			errs = append(errs, fmt.Errorf("targets[%d]: duplicate name %q (same as targets[%d])", i, t.Name, first))
			continue
		}
		seen[t.Name] = i

		d := t.Descriptor()
		if err := d.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("targets[%d]: %w", i, err))
			continue
		}
		if t.Group != "" && !groups[t.Group] {
			errs = append(errs, fmt.Errorf("targets[%d]: %w %q", i, jdk.ErrNoRepository, t.Group))
		}
	}

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// ImageConfig converts the application section.
func (c *Config) ImageConfig() jlink.ImageConfig {
	a := c.Application
	launchers := make([]jlink.Launcher, 0, len(a.Launchers))
	for _, l := range a.Launchers {
		launchers = append(launchers, jlink.Launcher{Name: l.Name, Module: l.Module, Class: l.Class})
	}
	return jlink.ImageConfig{
		ApplicationName:           a.Name,
		MainModule:                a.MainModule,
		MainClass:                 a.MainClass,
		Launchers:                 launchers,
		AddModules:                a.AddModules,
		AddOptions:                a.AddOptions,
		DisablePlugins:            a.DisablePlugins,
		NoHeaderFiles:             a.NoHeaderFiles,
		NoManPages:                a.NoManPages,
		BindServices:              a.BindServices,
		Verbose:                   a.Verbose,
		StripDebug:                a.StripDebug,
		StripJavaDebugAttributes:  a.StripJavaDebugAttributes,
		StripNativeCommands:       a.StripNativeCommands,
		IgnoreSigningInformation:  a.IgnoreSigningInformation,
		GenerateCDSArchive:        a.GenerateCDSArchive,
		DedupLegalNoticesStrictly: a.DedupLegalNoticesStrictly,
		Compress:                  a.Compress,
		VM:                        a.VM,
		Endian:                    a.Endian,
		VendorBugURL:              a.VendorBugURL,
		VendorVersion:             a.VendorVersion,
		VendorVMBugURL:            a.VendorVMBugURL,
		ExcludeFiles:              a.ExcludeFiles,
		ExcludeResources:          a.ExcludeResources,
		IncludeLocales:            a.IncludeLocales,
		LimitModules:              a.LimitModules,
	}
}

// Descriptors returns every target in file order.
func (c *Config) Descriptors() []jdk.Descriptor {
	out := make([]jdk.Descriptor, 0, len(c.Targets))
	for _, t := range c.Targets {
		out = append(out, t.Descriptor())
	}
	return out
}

// Target returns the descriptor of the named target.
func (c *Config) Target(name string) (*jdk.Descriptor, error) {
	for _, t := range c.Targets {
		if t.Name == name {
			d := t.Descriptor()
			return &d, nil
		}
	}
	names := make([]string, 0, len(c.Targets))
	for _, t := range c.Targets {
		names = append(names, t.Name)
	}
	return nil, fmt.Errorf("%w %q (configured: %s)", ErrUnknownTarget, name, strings.Join(names, ", "))
}

// JdkRepositories converts the repositories section.
func (c *Config) JdkRepositories() []jdk.Repository {
	out := make([]jdk.Repository, 0, len(c.Repositories))
	for _, r := range c.Repositories {
		out = append(out, jdk.Repository{Group: r.Group, URL: r.URL})
	}
	return out
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		BuildDir:     DefaultBuildDir,
		ModulePath:   []string{},
		Targets:      []TargetConfig{},
		Repositories: []RepositoryConfig{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}
