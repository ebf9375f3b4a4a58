// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jlinker/jlinker/internal/archive"
	"github.com/jlinker/jlinker/internal/download"
	"github.com/jlinker/jlinker/internal/jdk"
)

// downloadFlags are the flags of `jlinker jdk download`.
type downloadFlags struct {
	checksum    string
	checksumURL string
	algorithm   string
	output      string
}

// newJdkCommand creates the `jlinker jdk` command tree. Its subcommands work
// on single archives and directories and need no project file.
func newJdkCommand(app *App) *cobra.Command {
	jdkCmd := &cobra.Command{
		Use:   "jdk",
		Short: "Download, verify and inspect JDK distributions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	jdkCmd.AddCommand(newJdkDownloadCommand(app))
	jdkCmd.AddCommand(newJdkVerifyCommand(app))
	jdkCmd.AddCommand(newJdkExtractCommand(app))
	jdkCmd.AddCommand(newJdkResolveCommand(app))
	jdkCmd.AddCommand(newJdkInspectCommand(app))

	return jdkCmd
}

func newJdkDownloadCommand(app *App) *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download an archive and verify its checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJdkDownload(cmd.Context(), app, args[0], &flags)
		},
	}

	cmd.Flags().StringVar(&flags.checksum, "checksum", "", "expected hex digest")
	cmd.Flags().StringVar(&flags.checksumURL, "checksum-url", "", "checksums file listing the archive")
	cmd.Flags().StringVar(&flags.algorithm, "algorithm", "SHA-256", "digest algorithm (SHA-256, SHA-384, SHA-512)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "destination file (default: the archive name in the current directory)")
	cmd.MarkFlagsOneRequired("checksum", "checksum-url")
	cmd.MarkFlagsMutuallyExclusive("checksum", "checksum-url")

	return cmd
}

func newJdkVerifyCommand(app *App) *cobra.Command {
	var checksum, algorithm string

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Verify the checksum of a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := download.ResolveAlgorithm(algorithm)
			if err != nil {
				return err
			}
			if err := download.VerifyFile(args[0], checksum, alg); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s (%s)\n", SuccessStyle.Render("Verified"), CmdStyle.Render(args[0]), download.DisplayName(alg))
			return nil
		},
	}

	cmd.Flags().StringVar(&checksum, "checksum", "", "expected hex digest")
	cmd.Flags().StringVar(&algorithm, "algorithm", "SHA-256", "digest algorithm (SHA-256, SHA-384, SHA-512)")
	_ = cmd.MarkFlagRequired("checksum")

	return cmd
}

func newJdkExtractCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <archive> [dest]",
		Short: "Extract a .zip or .tar.gz archive",
		Long: `Extract a .zip or .tar.gz archive.

With dest, its previous contents are replaced. Without it, the archive is
extracted into a new directory next to it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			extractor := archive.New(archive.WithLogger(app.logger))

			dest := ""
			if len(args) == 2 {
				dest = args[1]
				if err := extractor.Extract(args[0], dest); err != nil {
					return err
				}
			} else {
				var err error
				if dest, err = extractor.ExtractFresh(args[0], filepath.Dir(args[0])); err != nil {
					return err
				}
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Extracted to"), CmdStyle.Render(dest))
			return nil
		},
	}
}

func newJdkResolveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <dir>",
		Short: "Locate the JDK home and jmods below a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := jdk.NewResolver(jdk.WithResolverLogger(app.logger))
			inst, err := resolver.Resolve(args[0])
			if err != nil {
				return err
			}
			jmods, err := resolver.ResolveJmodsDir(args[0])
			if err != nil {
				return err
			}

			printField(app, "Home", inst.Home)
			printField(app, "Jmods", jmods)
			printRelease(app, inst.Release)
			return nil
		},
	}
}

func newJdkInspectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <archive>",
		Short: "Show the release metadata of an archive without extracting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			fsys, err := archive.OpenFS(args[0])
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := fsys.Close(); closeErr != nil && err == nil {
					err = closeErr
				}
			}()

			resolver := jdk.NewResolver(jdk.WithResolverLogger(app.logger))
			home, meta, err := resolver.ReadReleaseFS(fsys, args[0])
			if err != nil {
				return err
			}

			jmods := "no"
			if fi, statErr := fs.Stat(fsys, path.Join(home, jdk.JmodsDirName)); statErr == nil && fi.IsDir() {
				jmods = "yes"
			}

			printField(app, "Home", home)
			printField(app, "Jmods", jmods)
			printRelease(app, meta)
			return nil
		},
	}
}

func runJdkDownload(ctx context.Context, app *App, source string, flags *downloadFlags) error {
	name, err := download.FileName(source)
	if err != nil {
		return err
	}
	dest := flags.output
	if dest == "" {
		dest = name
	}

	checksum := flags.checksum
	d := app.newDownloader()
	if checksum == "" {
		if checksum, err = d.FetchChecksum(ctx, flags.checksumURL, name); err != nil {
			return err
		}
	}

	res, err := d.Download(ctx, download.Spec{
		Source:           source,
		ExpectedChecksum: checksum,
		Algorithm:        flags.algorithm,
		Destination:      dest,
	})
	if err != nil {
		if errors.Is(err, download.ErrChecksumMismatch) {
			app.logger.Warn("unverified download left in place", "file", dest)
		}
		return err
	}
	fmt.Fprintf(app.stdout, "%s %s (%s)\n", SuccessStyle.Render("Downloaded"), CmdStyle.Render(res.Path), res.Digest)
	return nil
}

func printField(app *App, key, value string) {
	fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render(key), value)
}

func printRelease(app *App, meta *jdk.ReleaseMetadata) {
	printField(app, "Version", meta.JavaVersion)
	printField(app, "Feature release", fmt.Sprint(meta.FeatureRelease()))
	printField(app, "Platform", meta.Platform())
	if meta.Implementor != "" {
		printField(app, "Implementor", meta.Implementor)
	}
	if len(meta.Modules) > 0 {
		printField(app, "Modules", fmt.Sprint(len(meta.Modules)))
	}
}
