// SPDX-License-Identifier: MPL-2.0

package jlink

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func TestBuildArgsMinimal(t *testing.T) {
	t.Parallel()

	cfg := &ImageConfig{
		MainModule: "demo.main",
		Launchers:  []Launcher{{Name: "demo", Module: "demo.main", Class: "com.example.demo.DemoApplication"}},
	}
	out := filepath.Join("build", "images", "demo")

	got := BuildArgs(cfg, "", out)
	want := []string{
		"--module-path", "",
		"--output", out,
		"--add-modules", "demo.main",
		"--launcher", "demo=demo.main/com.example.demo.DemoApplication",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildArgs() =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildArgsFullOrder(t *testing.T) {
	t.Parallel()

	cfg := &ImageConfig{
		ApplicationName:           "app",
		MainModule:                "com.example.app",
		MainClass:                 "com.example.app.Main",
		Launchers:                 []Launcher{{Name: "cli", Module: "com.example.cli"}},
		AddModules:                []string{"jdk.crypto.ec", "java.sql"},
		AddOptions:                []string{"-Xmx512m", "-Dfile.encoding=UTF-8"},
		DisablePlugins:            []string{"generate-jli-classes", "release-info"},
		NoHeaderFiles:             true,
		NoManPages:                true,
		BindServices:              true,
		Verbose:                   true,
		StripDebug:                true,
		StripJavaDebugAttributes:  true,
		StripNativeCommands:       true,
		IgnoreSigningInformation:  true,
		GenerateCDSArchive:        true,
		DedupLegalNoticesStrictly: true,
		Compress:                  "zip-6",
		VM:                        VMServer,
		Endian:                    EndianLittle,
		VendorBugURL:              "https://example.com/bugs",
		VendorVersion:             "App 1.0",
		VendorVMBugURL:            "https://example.com/vm-bugs",
		ExcludeFiles:              []string{"/**/legal/**", "/**/man/**"},
		ExcludeResources:          []string{"/java.base/META-INF/**"},
		IncludeLocales:            []string{"en", "de-DE"},
		LimitModules:              []string{"java.base", "java.sql"},
	}

	got := BuildArgs(cfg, "/mp", "/out")
	want := []string{
		"--module-path", "/mp",
		"--output", "/out",
		"--add-modules", "com.example.app,jdk.crypto.ec,java.sql",
		"--no-header-files",
		"--no-man-pages",
		"--bind-services",
		"--verbose",
		"--strip-debug",
		"--strip-java-debug-attributes",
		"--strip-native-commands",
		"--ignore-signing-information",
		"--generate-cds-archive",
		"--compress", "zip-6",
		"--vm", "server",
		"--endian", "little",
		"--vendor-bug-url", "https://example.com/bugs",
		"--vendor-version", "App 1.0",
		"--vendor-vm-bug-url", "https://example.com/vm-bugs",
		"--dedup-legal-notices", "error-if-not-same-content",
		"--add-options=-Xmx512m -Dfile.encoding=UTF-8",
		"--launcher", "app=com.example.app/com.example.app.Main",
		"--launcher", "cli=com.example.cli",
		"--disable-plugin", "generate-jli-classes",
		"--disable-plugin", "release-info",
		"--exclude-files", "/**/legal/**,/**/man/**",
		"--exclude-resources", "/java.base/META-INF/**",
		"--include-locales", "en,de-DE",
		"--limit-modules", "java.base,java.sql",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildArgs() =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildArgsOmitsEmptyModules(t *testing.T) {
	t.Parallel()

	got := BuildArgs(&ImageConfig{}, "", "/out")
	if slices.Contains(got, "--add-modules") {
		t.Errorf("BuildArgs() with no modules should omit --add-modules: %q", got)
	}
	if !reflect.DeepEqual(got, []string{"--module-path", "", "--output", "/out"}) {
		t.Errorf("BuildArgs() = %q", got)
	}
}

func TestBuildArgsExcludeFiles(t *testing.T) {
	t.Parallel()

	cfg := &ImageConfig{
		MainModule:   "demo.main",
		Launchers:    []Launcher{{Name: "demo", Module: "demo.main"}},
		ExcludeFiles: []string{"/**/legal/**", "/**/man/**"},
	}
	joined := strings.Join(BuildArgs(cfg, "", "/out"), " ")
	if !strings.Contains(joined, "--exclude-files /**/legal/**,/**/man/**") {
		t.Errorf("args = %s", joined)
	}
}

func TestBuildArgsDeterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	cfg := &ImageConfig{ApplicationName: "x", MainModule: "m"}

	var first string
	for _, local := range [][]string{{a, b, c}, {c, b, a}, {b, a, c, a}} {
		mp, err := JoinModulePath(local, "")
		if err != nil {
			t.Fatal(err)
		}
		got := strings.Join(BuildArgs(cfg, mp, "/out"), "\x00")
		if first == "" {
			first = got
			continue
		}
		if got != first {
			t.Errorf("args differ for input order %v", local)
		}
	}
}

func TestJoinModulePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jmods := filepath.Join(dir, "jdks", "linux", "jdk-21.0.1", "jmods")
	local := []string{
		filepath.Join(dir, "mods", "z.jar"),
		filepath.Join(dir, "app"),
		filepath.Join(dir, "mods", "z.jar"),
		"",
	}

	got, err := JoinModulePath(local, jmods)
	if err != nil {
		t.Fatalf("JoinModulePath() error = %v", err)
	}
	want := strings.Join([]string{
		filepath.Join(dir, "app"),
		jmods,
		filepath.Join(dir, "mods", "z.jar"),
	}, string(os.PathListSeparator))
	if got != want {
		t.Errorf("JoinModulePath() = %q, want %q", got, want)
	}
}

func TestJoinModulePathRelativeAndEmpty(t *testing.T) {
	t.Parallel()

	got, err := JoinModulePath(nil, "")
	if err != nil || got != "" {
		t.Errorf("JoinModulePath(nil) = %q, %v; want empty", got, err)
	}

	entries, err := ResolveModulePath([]string{"lib"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !filepath.IsAbs(entries[0]) {
		t.Errorf("ResolveModulePath() = %q, want one absolute entry", entries)
	}
}
