// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// ValidationError is a CUE error rewritten with readable field paths. It
// unwraps to the original CUE error.
type ValidationError struct {
	File  string
	Lines []string
	Err   error
}

func (e *ValidationError) Error() string {
	if len(e.Lines) == 1 {
		return e.File + ": " + e.Lines[0]
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(e.Lines, "\n  "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

// FormatError rewrites a CUE error as "<file>: <path>: <message>", one line
// per underlying error. Errors that are not CUE errors are wrapped with the
// file name only.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var cueErr errors.Error
	if !errors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	cueErrors := errors.Errors(err)
	lines := make([]string, 0, len(cueErrors))
	for _, e := range cueErrors {
		parts := errors.Path(e)
		msg := e.Error()
		// CUE repeats the raw path at the start of the message.
		if raw := strings.Join(parts, "."); raw != "" && strings.HasPrefix(msg, raw) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, raw), ":"))
		}
		if path := formatPath(parts); path != "" {
			msg = path + ": " + msg
		}
		lines = append(lines, msg)
	}
	return &ValidationError{File: filePath, Lines: lines, Err: err}
}

// formatPath turns ["#Config", "targets", "0", "url"] into "targets[0].url".
// A leading definition names the schema, not a field, and is dropped.
func formatPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}

	var b strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize fails when data is larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxSize)
	}
	return nil
}
