// SPDX-License-Identifier: MPL-2.0

package jlink

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestImageConfigValidate(t *testing.T) {
	t.Parallel()

	base := func() ImageConfig {
		return ImageConfig{ApplicationName: "app", MainModule: "m", MainClass: "m.Main"}
	}

	tests := []struct {
		name    string
		mutate  func(*ImageConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*ImageConfig) {}},
		{name: "empty main module", mutate: func(c *ImageConfig) { c.MainModule = " " }, wantErr: "main module"},
		{name: "no launcher", mutate: func(c *ImageConfig) { c.ApplicationName = "" }, wantErr: "at least one launcher"},
		{name: "explicit launcher only", mutate: func(c *ImageConfig) {
			c.ApplicationName = ""
			c.Launchers = []Launcher{{Name: "tool", Module: "m"}}
		}},
		{name: "bad vm", mutate: func(c *ImageConfig) { c.VM = "turbo" }, wantErr: "vm"},
		{name: "all vm", mutate: func(c *ImageConfig) { c.VM = VMAll }},
		{name: "bad endian", mutate: func(c *ImageConfig) { c.Endian = "middle" }, wantErr: "endian"},
		{name: "big endian", mutate: func(c *ImageConfig) { c.Endian = EndianBig }},
		{name: "zip compress", mutate: func(c *ImageConfig) { c.Compress = "zip-9" }},
		{name: "legacy compress", mutate: func(c *ImageConfig) { c.Compress = "2" }},
		{name: "bad compress", mutate: func(c *ImageConfig) { c.Compress = "zip-10" }, wantErr: "compress"},
		{name: "reserved launcher", mutate: func(c *ImageConfig) { c.ApplicationName = "CON" }, wantErr: "reserved"},
		{name: "launcher with slash", mutate: func(c *ImageConfig) { c.ApplicationName = "bin/app" }, wantErr: "must not contain"},
		{name: "parent directory application", mutate: func(c *ImageConfig) { c.ApplicationName = ".." }, wantErr: "not a file name"},
		{name: "current directory launcher", mutate: func(c *ImageConfig) {
			c.Launchers = []Launcher{{Name: ".", Module: "m"}}
		}, wantErr: "not a file name"},
		{name: "blank plugin", mutate: func(c *ImageConfig) { c.DisablePlugins = []string{""} }, wantErr: "plugin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseLauncher(t *testing.T) {
	t.Parallel()

	l, err := ParseLauncher("demo=demo.main/com.example.demo.DemoApplication")
	if err != nil {
		t.Fatalf("ParseLauncher() error = %v", err)
	}
	want := Launcher{Name: "demo", Module: "demo.main", Class: "com.example.demo.DemoApplication"}
	if l != want {
		t.Errorf("ParseLauncher() = %+v, want %+v", l, want)
	}
	if l.String() != "demo=demo.main/com.example.demo.DemoApplication" {
		t.Errorf("String() = %q", l.String())
	}

	l, err = ParseLauncher("tool=jdk.jshell")
	if err != nil || l.Target() != "jdk.jshell" {
		t.Errorf("ParseLauncher(module only) = %+v, %v", l, err)
	}

	for _, bad := range []string{"noequals", "=m/c", "name=", "NUL=m", "..=m/c"} {
		if _, err := ParseLauncher(bad); !errors.Is(err, ErrInvalidLauncher) {
			t.Errorf("ParseLauncher(%q) error = %v, want ErrInvalidLauncher", bad, err)
		}
	}
}

func TestEffectiveLaunchers(t *testing.T) {
	t.Parallel()

	cfg := ImageConfig{
		ApplicationName: "app",
		MainModule:      "m",
		MainClass:       "m.Main",
		Launchers: []Launcher{
			{Name: "second", Module: "m", Class: "m.Second"},
			{Name: "app", Module: "m", Class: "m.Override"},
			{Name: "third", Module: "other"},
		},
	}

	got := cfg.EffectiveLaunchers()
	want := []Launcher{
		{Name: "app", Module: "m", Class: "m.Override"},
		{Name: "second", Module: "m", Class: "m.Second"},
		{Name: "third", Module: "other"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EffectiveLaunchers() = %+v, want %+v", got, want)
	}
}

func TestPrimaryLauncherWithoutClass(t *testing.T) {
	t.Parallel()

	cfg := ImageConfig{ApplicationName: "app", MainModule: "m"}
	l, ok := cfg.PrimaryLauncher()
	if !ok || l.String() != "app=m" {
		t.Errorf("PrimaryLauncher() = %v, %v", l, ok)
	}
}

func TestModules(t *testing.T) {
	t.Parallel()

	cfg := ImageConfig{MainModule: "main", AddModules: []string{"b", "main", "", "a", "b"}}
	got := cfg.Modules()
	want := []string{"main", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Modules() = %q, want %q", got, want)
	}
}
