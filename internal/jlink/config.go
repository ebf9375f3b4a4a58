// SPDX-License-Identifier: MPL-2.0

package jlink

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jlinker/jlinker/pkg/platform"
)

// Values accepted by jlink's --vm and --endian options.
const (
	VMServer  = "server"
	VMClient  = "client"
	VMMinimal = "minimal"
	VMAll     = "all"

	EndianLittle = "little"
	EndianBig    = "big"
)

var (
	// ErrInvalidConfig is wrapped by every ImageConfig validation failure.
	ErrInvalidConfig = errors.New("invalid image configuration")

	// ErrInvalidLauncher is wrapped by launcher parse and validation failures.
	ErrInvalidLauncher = errors.New("invalid launcher")

	compressPattern = regexp.MustCompile(`^([012]|zip-[0-9])$`)
)

type (
	// Launcher is a named executable in the image's bin directory that runs
	// Module, or Module/Class when Class is set.
	Launcher struct {
		Name   string
		Module string
		Class  string
	}

	// ImageConfig is everything jlink needs to know about an image besides
	// the module path and the output directory.
	ImageConfig struct {
		// ApplicationName names the primary launcher. When empty, only the
		// explicit Launchers are created.
		ApplicationName string
		MainModule      string
		MainClass       string

		// Launchers are added after the primary launcher, in order. A launcher
		// with the primary launcher's name replaces it.
		Launchers []Launcher

		AddModules     []string
		AddOptions     []string
		DisablePlugins []string

		NoHeaderFiles             bool
		NoManPages                bool
		BindServices              bool
		Verbose                   bool
		StripDebug                bool
		StripJavaDebugAttributes  bool
		StripNativeCommands       bool
		IgnoreSigningInformation  bool
		GenerateCDSArchive        bool
		DedupLegalNoticesStrictly bool

		Compress       string
		VM             string
		Endian         string
		VendorBugURL   string
		VendorVersion  string
		VendorVMBugURL string

		ExcludeFiles     []string
		ExcludeResources []string
		IncludeLocales   []string
		LimitModules     []string
	}
)

// ParseLauncher parses the "name=module[/class]" form used on the command
// line and by jlink itself.
func ParseLauncher(s string) (Launcher, error) {
	name, target, ok := strings.Cut(s, "=")
	if !ok {
		return Launcher{}, fmt.Errorf("%w: %q: expected name=module[/class]", ErrInvalidLauncher, s)
	}
	module, class, _ := strings.Cut(target, "/")
	l := Launcher{Name: strings.TrimSpace(name), Module: strings.TrimSpace(module), Class: strings.TrimSpace(class)}
	if err := l.Validate(); err != nil {
		return Launcher{}, err
	}
	return l, nil
}

// Target returns "module" or "module/class".
func (l Launcher) Target() string {
	if l.Class == "" {
		return l.Module
	}
	return l.Module + "/" + l.Class
}

// String returns the "name=module[/class]" form passed to --launcher.
func (l Launcher) String() string {
	return l.Name + "=" + l.Target()
}

// Validate checks that the launcher can become a file in bin/.
func (l Launcher) Validate() error {
	switch {
	case l.Name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidLauncher)
	case strings.ContainsAny(l.Name, `=/\ `):
		return fmt.Errorf("%w: name %q must not contain '=', '/', '\\' or spaces", ErrInvalidLauncher, l.Name)
	case l.Name == "." || l.Name == "..":
		return fmt.Errorf("%w: name %q is not a file name", ErrInvalidLauncher, l.Name)
	case platform.IsWindowsReservedName(l.Name):
		return fmt.Errorf("%w: name %q is reserved on Windows", ErrInvalidLauncher, l.Name)
	case l.Module == "":
		return fmt.Errorf("%w: %s: module is empty", ErrInvalidLauncher, l.Name)
	}
	return nil
}

// PrimaryLauncher returns the launcher derived from the application name,
// main module and main class, and false when ApplicationName is empty.
func (c *ImageConfig) PrimaryLauncher() (Launcher, bool) {
	if c.ApplicationName == "" {
		return Launcher{}, false
	}
	return Launcher{Name: c.ApplicationName, Module: c.MainModule, Class: c.MainClass}, true
}

// EffectiveLaunchers returns the primary launcher followed by the explicit
// ones. A repeated name keeps its first position and takes the later target.
func (c *ImageConfig) EffectiveLaunchers() []Launcher {
	var out []Launcher
	index := make(map[string]int)

	put := func(l Launcher) {
		if i, ok := index[l.Name]; ok {
			out[i] = l
			return
		}
		index[l.Name] = len(out)
		out = append(out, l)
	}

	if primary, ok := c.PrimaryLauncher(); ok {
		put(primary)
	}
	for _, l := range c.Launchers {
		put(l)
	}
	return out
}

// Modules returns the --add-modules list: the main module first, then the
// additional modules in configured order, without duplicates or blanks.
func (c *ImageConfig) Modules() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range append([]string{c.MainModule}, c.AddModules...) {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// Validate checks the configuration before any file is touched.
func (c *ImageConfig) Validate() error {
	if strings.TrimSpace(c.MainModule) == "" {
		return fmt.Errorf("%w: main module must not be empty", ErrInvalidConfig)
	}

	launchers := c.EffectiveLaunchers()
	if len(launchers) == 0 {
		return fmt.Errorf("%w: an application name or at least one launcher is required", ErrInvalidConfig)
	}
	for _, l := range launchers {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	switch c.VM {
	case "", VMServer, VMClient, VMMinimal, VMAll:
	default:
		return fmt.Errorf("%w: vm %q must be one of server, client, minimal or all", ErrInvalidConfig, c.VM)
	}

	switch c.Endian {
	case "", EndianLittle, EndianBig:
	default:
		return fmt.Errorf("%w: endian %q must be little or big", ErrInvalidConfig, c.Endian)
	}

	if c.Compress != "" && !compressPattern.MatchString(c.Compress) {
		return fmt.Errorf("%w: compress %q must be zip-0 to zip-9 (or the legacy 0, 1, 2)", ErrInvalidConfig, c.Compress)
	}

	for _, p := range c.DisablePlugins {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: disabled plugin name is empty", ErrInvalidConfig)
		}
	}
	return nil
}
