// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is the status a linked tool or an assembled image's java
	// launcher returned. The zero value means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the POSIX range.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether the code is zero.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal form of the code.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// ExitCodeFromError extracts the process exit status carried by err.
// The second result is false when err did not come from a process that ran
// to completion (binary missing, permission denied, context canceled before
// start), in which case the returned code is 1.
func ExitCodeFromError(err error) (ExitCode, bool) {
	if err == nil {
		return 0, true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal.
			return 1, true
		}
		return ExitCode(code), true
	}
	return 1, false
}
