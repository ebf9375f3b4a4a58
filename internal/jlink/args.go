// SPDX-License-Identifier: MPL-2.0

package jlink

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// BuildArgs returns the jlink arguments for cfg. The order is fixed:
//
//	--module-path, --output, --add-modules,
//	boolean flags, value flags, --dedup-legal-notices, --add-options,
//	--launcher (one per launcher), --disable-plugin (one per plugin),
//	--exclude-files, --exclude-resources, --include-locales, --limit-modules
//
// Flags whose value is false or empty are omitted, except --module-path,
// which is always present.
func BuildArgs(cfg *ImageConfig, modulePath, outputDir string) []string {
	args := []string{"--module-path", modulePath, "--output", outputDir}

	if modules := cfg.Modules(); len(modules) > 0 {
		args = append(args, "--add-modules", strings.Join(modules, ","))
	}

	flags := []struct {
		set  bool
		name string
	}{
		{cfg.NoHeaderFiles, "--no-header-files"},
		{cfg.NoManPages, "--no-man-pages"},
		{cfg.BindServices, "--bind-services"},
		{cfg.Verbose, "--verbose"},
		{cfg.StripDebug, "--strip-debug"},
		{cfg.StripJavaDebugAttributes, "--strip-java-debug-attributes"},
		{cfg.StripNativeCommands, "--strip-native-commands"},
		{cfg.IgnoreSigningInformation, "--ignore-signing-information"},
		{cfg.GenerateCDSArchive, "--generate-cds-archive"},
	}
	for _, f := range flags {
		if f.set {
			args = append(args, f.name)
		}
	}

	values := []struct {
		name  string
		value string
	}{
		{"--compress", cfg.Compress},
		{"--vm", cfg.VM},
		{"--endian", cfg.Endian},
		{"--vendor-bug-url", cfg.VendorBugURL},
		{"--vendor-version", cfg.VendorVersion},
		{"--vendor-vm-bug-url", cfg.VendorVMBugURL},
	}
	for _, v := range values {
		if v.value != "" {
			args = append(args, v.name, v.value)
		}
	}

	if cfg.DedupLegalNoticesStrictly {
		args = append(args, "--dedup-legal-notices", "error-if-not-same-content")
	}

	if len(cfg.AddOptions) > 0 {
		args = append(args, "--add-options="+strings.Join(cfg.AddOptions, " "))
	}

	for _, l := range cfg.EffectiveLaunchers() {
		args = append(args, "--launcher", l.String())
	}

	for _, p := range cfg.DisablePlugins {
		args = append(args, "--disable-plugin", p)
	}

	lists := []struct {
		name   string
		values []string
	}{
		{"--exclude-files", cfg.ExcludeFiles},
		{"--exclude-resources", cfg.ExcludeResources},
		{"--include-locales", cfg.IncludeLocales},
		{"--limit-modules", cfg.LimitModules},
	}
	for _, l := range lists {
		if len(l.values) > 0 {
			args = append(args, l.name, strings.Join(l.values, ","))
		}
	}

	return args
}

// ResolveModulePath merges the local entries with the cross-target jmods
// directory, makes every entry absolute, removes duplicates and sorts the
// result by path string.
func ResolveModulePath(local []string, crossJmods string) ([]string, error) {
	entries := slices.Clone(local)
	if crossJmods != "" {
		entries = append(entries, crossJmods)
	}

	resolved := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e) == "" {
			continue
		}
		abs, err := filepath.Abs(e)
		if err != nil {
			return nil, fmt.Errorf("resolving module path entry %s: %w", e, err)
		}
		resolved = append(resolved, abs)
	}

	slices.Sort(resolved)
	return slices.Compact(resolved), nil
}

// JoinModulePath is ResolveModulePath joined with the OS path list
// separator. No entries yield "".
func JoinModulePath(local []string, crossJmods string) (string, error) {
	entries, err := ResolveModulePath(local, crossJmods)
	if err != nil {
		return "", err
	}
	return strings.Join(entries, string(os.PathListSeparator)), nil
}
