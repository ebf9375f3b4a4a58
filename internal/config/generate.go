// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"
)

// GenerateCUE renders cfg as a project file that loads back to the same
// configuration. Empty optional fields are left out.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// jlinker project file\n")
	sb.WriteString("// See 'jlinker config --help' for the available settings.\n\n")

	if cfg.JavaHome != "" {
		fmt.Fprintf(&sb, "java_home: %q\n", cfg.JavaHome)
	}
	fmt.Fprintf(&sb, "build_dir: %q\n", cfg.BuildDir)
	writeList(&sb, "", "module_path", cfg.ModulePath)

	a := cfg.Application
	sb.WriteString("\napplication: {\n")
	writeString(&sb, "\t", "name", a.Name)
	writeString(&sb, "\t", "main_module", a.MainModule)
	writeString(&sb, "\t", "main_class", a.MainClass)
	if len(a.Launchers) > 0 {
		sb.WriteString("\tlaunchers: [\n")
		for _, l := range a.Launchers {
			if l.Class != "" {
				fmt.Fprintf(&sb, "\t\t{name: %q, module: %q, class: %q},\n", l.Name, l.Module, l.Class)
			} else {
				fmt.Fprintf(&sb, "\t\t{name: %q, module: %q},\n", l.Name, l.Module)
			}
		}
		sb.WriteString("\t]\n")
	}
	writeList(&sb, "\t", "add_modules", a.AddModules)
	writeList(&sb, "\t", "add_options", a.AddOptions)
	writeList(&sb, "\t", "disable_plugins", a.DisablePlugins)

	bools := []struct {
		name string
		set  bool
	}{
		{"no_header_files", a.NoHeaderFiles},
		{"no_man_pages", a.NoManPages},
		{"bind_services", a.BindServices},
		{"verbose", a.Verbose},
		{"strip_debug", a.StripDebug},
		{"strip_java_debug_attributes", a.StripJavaDebugAttributes},
		{"strip_native_commands", a.StripNativeCommands},
		{"ignore_signing_information", a.IgnoreSigningInformation},
		{"generate_cds_archive", a.GenerateCDSArchive},
		{"dedup_legal_notices_strictly", a.DedupLegalNoticesStrictly},
	}
	for _, b := range bools {
		if b.set {
			fmt.Fprintf(&sb, "\t%s: true\n", b.name)
		}
	}

	writeString(&sb, "\t", "compress", a.Compress)
	writeString(&sb, "\t", "vm", a.VM)
	writeString(&sb, "\t", "endian", a.Endian)
	writeString(&sb, "\t", "vendor_bug_url", a.VendorBugURL)
	writeString(&sb, "\t", "vendor_version", a.VendorVersion)
	writeString(&sb, "\t", "vendor_vm_bug_url", a.VendorVMBugURL)
	writeList(&sb, "\t", "exclude_files", a.ExcludeFiles)
	writeList(&sb, "\t", "exclude_resources", a.ExcludeResources)
	writeList(&sb, "\t", "include_locales", a.IncludeLocales)
	writeList(&sb, "\t", "limit_modules", a.LimitModules)
	sb.WriteString("}\n")

	if len(cfg.Targets) > 0 {
		sb.WriteString("\ntargets: [\n")
		for _, t := range cfg.Targets {
			sb.WriteString("\t{\n")
			writeString(&sb, "\t\t", "name", t.Name)
			writeString(&sb, "\t\t", "url", t.URL)
			writeString(&sb, "\t\t", "checksum", t.Checksum)
			writeString(&sb, "\t\t", "checksum_algorithm", t.ChecksumAlgorithm)
			writeString(&sb, "\t\t", "checksum_url", t.ChecksumURL)
			writeString(&sb, "\t\t", "group", t.Group)
			writeString(&sb, "\t\t", "archive", t.Archive)
			writeString(&sb, "\t\t", "java_home", t.JavaHome)
			sb.WriteString("\t},\n")
		}
		sb.WriteString("]\n")
	}

	if len(cfg.Repositories) > 0 {
		sb.WriteString("\nrepositories: [\n")
		for _, r := range cfg.Repositories {
			fmt.Fprintf(&sb, "\t{group: %q, url: %q},\n", r.Group, r.URL)
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	if cfg.UI.ColorScheme != "" {
		fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	}
	sb.WriteString("}\n")

	return sb.String()
}

func writeString(sb *strings.Builder, indent, name, value string) {
	if value != "" {
		fmt.Fprintf(sb, "%s%s: %q\n", indent, name, value)
	}
}

func writeList(sb *strings.Builder, indent, name string, values []string) {
	if len(values) == 0 {
		return
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	fmt.Fprintf(sb, "%s%s: [%s]\n", indent, name, strings.Join(quoted, ", "))
}
