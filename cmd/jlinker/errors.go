// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/fang"

	"github.com/jlinker/jlinker/internal/archive"
	"github.com/jlinker/jlinker/internal/config"
	"github.com/jlinker/jlinker/internal/download"
	"github.com/jlinker/jlinker/internal/issue"
	"github.com/jlinker/jlinker/internal/jdk"
	"github.com/jlinker/jlinker/internal/jlink"
	"github.com/jlinker/jlinker/internal/pipeline"
)

// issueClasses maps sentinel errors to catalog entries. The first match wins.
var issueClasses = []struct {
	sentinel error
	id       issue.Id
}{
	{download.ErrChecksumMismatch, issue.ChecksumMismatchId},
	{download.ErrChecksumNotListed, issue.ChecksumMismatchId},
	{download.ErrUnsupportedAlgorithm, issue.UnsupportedAlgorithmId},
	{download.ErrDownloadFailed, issue.DownloadFailedId},
	{download.ErrTransport, issue.DownloadFailedId},
	{archive.ErrUnsupportedFormat, issue.UnsupportedArchiveId},
	{jdk.ErrReleaseFileNotFound, issue.ReleaseFileNotFoundId},
	{jdk.ErrJmodsNotFound, issue.JmodsNotFoundId},
	{jlink.ErrInvalidConfig, issue.InvalidImageConfigId},
	{jlink.ErrInvalidLauncher, issue.InvalidImageConfigId},
	{jlink.ErrLinkFailed, issue.LinkFailedId},
	{pipeline.ErrNoJavaHome, issue.JavaNotFoundId},
	{config.ErrInvalidConfig, issue.ConfigLoadFailedId},
}

// classifyError returns the catalog entry that explains err, or 0.
func classifyError(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if entry := ae.Issue(); entry != nil {
			return entry.Id()
		}
	}
	for _, c := range issueClasses {
		if errors.Is(err, c.sentinel) {
			return c.id
		}
	}
	return 0
}

// withExitCode carries jlink's exit code to the process exit status.
func withExitCode(err error) error {
	var linkErr *jlink.LinkFailedError
	if errors.As(err, &linkErr) && !linkErr.ExitCode.IsSuccess() {
		return &ExitError{Code: linkErr.ExitCode, Err: err}
	}
	return err
}

// handleError is the fang error handler: actionable errors are printed with
// their suggestions, anything else in fang's style, followed by the catalog
// entry for the failure when there is one.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(a.verbose))
	} else {
		fang.DefaultErrorHandler(w, styles, err)
	}

	renderIssue(w, classifyError(err), a.issueStyle(), a.verbose)
}

// renderIssue prints the catalog entry for id. Without verbose output only
// a pointer to it is printed.
func renderIssue(w io.Writer, id issue.Id, style string, verbose bool) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	if !verbose {
		fmt.Fprintln(w, SubtitleStyle.Render("Run again with --verbose for troubleshooting steps."))
		return
	}
	rendered, err := entry.Render(style)
	if err != nil {
		fmt.Fprint(w, entry.Markdown())
		return
	}
	fmt.Fprint(w, rendered)
}
