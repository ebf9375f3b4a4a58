// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jlinker/jlinker/internal/config"
)

// newConfigCommand creates the `jlinker config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the jlinker project file",
		Long: `Manage the jlinker project file.

The project file is looked up in this order:
  - the --config flag
  - ./jlinker.cue
  - the user configuration directory (jlinker/jlinker.cue)

Every key can be overridden with a JLINKER_ environment variable, for
example JLINKER_JAVA_HOME or JLINKER_BUILD_DIR.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the project file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.Config.Locate(app.loadOptions())
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no project file, using defaults)"))
				return nil
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Create a starter project file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName()
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("Project file already exists:"), path)
					return nil
				}
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created"), CmdStyle.Render(path))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, app.loadOptions())
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, _ := app.Config.Locate(app.loadOptions())
	if path == "" {
		path = SubtitleStyle.Render("(using defaults)")
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Project file"), path)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("java_home"), valueOrUnset(cfg.JavaHome))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("build_dir"), valueStyle.Render(cfg.BuildDir))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("module_path"), valueOrUnset(strings.Join(cfg.ModulePath, ", ")))

	application := cfg.Application
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("application"))
	fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render("name"), valueOrUnset(application.Name))
	fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render("main_module"), valueOrUnset(application.MainModule))
	fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render("main_class"), valueOrUnset(application.MainClass))
	imageCfg := cfg.ImageConfig()
	for _, l := range imageCfg.EffectiveLaunchers() {
		fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render("launcher"), valueStyle.Render(l.String()))
	}

	if len(cfg.Targets) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, TitleStyle.Render("targets"))
		for _, t := range cfg.Targets {
			source := t.URL
			switch {
			case t.JavaHome != "":
				source = t.JavaHome
			case t.Group != "":
				source = t.Group + ":" + t.Archive
			}
			fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render(t.Name), valueStyle.Render(source))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("ui.verbose"), valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("ui.color_scheme"), valueStyle.Render(string(cfg.UI.ColorScheme)))
	return nil
}

func valueOrUnset(v string) string {
	if v == "" {
		return SubtitleStyle.Render("(not set)")
	}
	return SuccessStyle.Render(v)
}
