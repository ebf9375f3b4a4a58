// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"

	"github.com/jlinker/jlinker/internal/config"
	"github.com/jlinker/jlinker/internal/image"
	"github.com/jlinker/jlinker/internal/jdk"
	"github.com/jlinker/jlinker/internal/jlink"
	"github.com/jlinker/jlinker/internal/pipeline"
)

type (
	// buildFlags are the flags of `jlinker image build`.
	buildFlags struct {
		target     string
		all        bool
		output     string
		dryRun     bool
		addOptions string
		launchers  []string
	}

	// imageFlags select an already linked image.
	imageFlags struct {
		target string
		output string
	}
)

// newImageCommand creates the `jlinker image` command tree.
func newImageCommand(app *App) *cobra.Command {
	imageCmd := &cobra.Command{
		Use:   "image",
		Short: "Build and run runtime images",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	imageCmd.AddCommand(newImageBuildCommand(app))
	imageCmd.AddCommand(newImageRunCommand(app))
	imageCmd.AddCommand(newImageModulesCommand(app))

	return imageCmd
}

func newImageBuildCommand(app *App) *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Link the application's runtime image",
		Long: `Link the application's runtime image with the host JDK's jlink.

Without --target the image is built for the host. With --target the named
JDK is downloaded, verified and extracted into the build directory and its
jmods are linked instead. --all builds every configured target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImageBuild(cmd.Context(), app, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "cross-target JDK to link against")
	cmd.Flags().BoolVar(&flags.all, "all", false, "build an image for every configured target")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "image directory (default <build>/images/<name>)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the jlink command without linking")
	cmd.Flags().StringVar(&flags.addOptions, "add-options", "", "JVM options baked into the image, split like a shell command line")
	cmd.Flags().StringArrayVar(&flags.launchers, "launcher", nil, "extra launcher as name=module[/class] (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("target", "all")
	cmd.MarkFlagsMutuallyExclusive("output", "all")

	return cmd
}

func newImageRunCommand(app *App) *cobra.Command {
	var flags imageFlags

	cmd := &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Run the application from a linked image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(cmd.Context(), app, &flags, args)
		},
	}
	addImageFlags(cmd, &flags)

	return cmd
}

func newImageModulesCommand(app *App) *cobra.Command {
	var flags imageFlags

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the modules of a linked image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			dir, err := linkedImageDir(cfg, &flags)
			if err != nil {
				return err
			}
			return image.New(dir).ListModules(cmd.Context(), app.stdout)
		},
	}
	addImageFlags(cmd, &flags)

	return cmd
}

func addImageFlags(cmd *cobra.Command, flags *imageFlags) {
	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "image built for this target")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "image directory (default <build>/images/<name>)")
}

func runImageBuild(ctx context.Context, app *App, flags *buildFlags) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	imageCfg, err := buildImageConfig(cfg, flags)
	if err != nil {
		return err
	}

	targets, err := selectTargets(cfg, flags)
	if err != nil {
		return err
	}

	p, err := app.newPipeline(cfg)
	if err != nil {
		return err
	}

	for _, target := range targets {
		req := &pipeline.Request{
			Config:          imageCfg,
			LocalModulePath: cfg.ModulePath,
			Target:          target,
			BuildDir:        cfg.BuildDir,
			OutputDir:       flags.output,
		}

		if flags.dryRun {
			res, err := p.Plan(ctx, req)
			if err != nil {
				return withExitCode(err)
			}
			command := append([]string{jdk.BinPath(p.JavaHome(), "jlink")}, res.Args...)
			fmt.Fprintln(app.stdout, shellescape.QuoteCommand(command))
			continue
		}

		res, err := p.BuildImage(ctx, req)
		if err != nil {
			return withExitCode(err)
		}
		fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Built image"), CmdStyle.Render(res.OutputDir))
	}
	return nil
}

// keepVariable leaves $NAME references for the launcher script to expand.
// IFS is the one variable shell.Fields reads for itself.
func keepVariable(name string) string {
	if name == "IFS" {
		return " \t\n"
	}
	return "$" + name
}

// buildImageConfig applies the command-line overrides to the project's
// application section.
func buildImageConfig(cfg *config.Config, flags *buildFlags) (jlink.ImageConfig, error) {
	imageCfg := cfg.ImageConfig()

	if strings.TrimSpace(flags.addOptions) != "" {
		opts, err := shell.Fields(flags.addOptions, keepVariable)
		if err != nil {
			return jlink.ImageConfig{}, fmt.Errorf("invalid --add-options %q: %w", flags.addOptions, err)
		}
		imageCfg.AddOptions = opts
	}

	for _, s := range flags.launchers {
		l, err := jlink.ParseLauncher(s)
		if err != nil {
			return jlink.ImageConfig{}, err
		}
		imageCfg.Launchers = append(imageCfg.Launchers, l)
	}
	return imageCfg, nil
}

// selectTargets returns the targets to build; a nil entry is the host.
func selectTargets(cfg *config.Config, flags *buildFlags) ([]*jdk.Descriptor, error) {
	switch {
	case flags.all:
		descriptors := cfg.Descriptors()
		if len(descriptors) == 0 {
			return nil, fmt.Errorf("--all: no targets configured in %s", config.FileName())
		}
		out := make([]*jdk.Descriptor, len(descriptors))
		for i := range descriptors {
			out[i] = &descriptors[i]
		}
		return out, nil
	case flags.target != "":
		d, err := cfg.Target(flags.target)
		if err != nil {
			return nil, err
		}
		return []*jdk.Descriptor{d}, nil
	default:
		return []*jdk.Descriptor{nil}, nil
	}
}

// linkedImageDir returns the directory of a previously built image.
func linkedImageDir(cfg *config.Config, flags *imageFlags) (string, error) {
	if flags.output != "" {
		return flags.output, nil
	}
	var target *jdk.Descriptor
	if flags.target != "" {
		d, err := cfg.Target(flags.target)
		if err != nil {
			return "", err
		}
		target = d
	}
	imageCfg := cfg.ImageConfig()
	return pipeline.DefaultOutputDir(cfg.BuildDir, &imageCfg, target), nil
}

func runImage(ctx context.Context, app *App, flags *imageFlags, args []string) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}
	dir, err := linkedImageDir(cfg, flags)
	if err != nil {
		return err
	}

	code, err := image.New(dir).Run(ctx, image.RunOptions{
		MainModule: cfg.Application.MainModule,
		MainClass:  cfg.Application.MainClass,
		Args:       args,
		Stdin:      app.stdin,
		Stdout:     app.stdout,
		Stderr:     app.stderr,
	})
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}
