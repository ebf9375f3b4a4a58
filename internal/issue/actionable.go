// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError decorates an error with what was being attempted, the
	// file or URL involved and hints for fixing it.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("download JDK").
	//		WithResource(src).
	//		WithIssue(issue.DownloadFailedId).
	//		Wrap(cause).
	//		Build()
	ActionableError struct {
		// Operation is a verb phrase such as "link image" or "extract JDK".
		Operation string

		// Resource identifies the path or URL involved (optional).
		Resource string

		// Suggestions are one-line hints printed under the message (optional).
		Suggestions []string

		// IssueID points at a catalog page with longer guidance (optional).
		IssueID Id

		// Cause is the underlying error (optional).
		Cause error
	}

	// ErrorContext incrementally builds an ActionableError.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		issueID     Id
		cause       error
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error returns "failed to <operation>: <resource>: <cause>", leaving out
// the parts that are not set.
func (e *ActionableError) Error() string {
	var parts []string
	if e.Operation != "" {
		parts = append(parts, "failed to "+e.Operation)
	}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause for errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message with its suggestions. In verbose mode the full
// unwrap chain of the cause is listed as well.
//
//	failed to <operation>: <resource>: <cause>
//
//	  • <suggestion>
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}

	return msg.String()
}

// Issue returns the catalog entry attached to the error, or nil.
func (e *ActionableError) Issue() *Issue {
	if e.IssueID == 0 {
		return nil
	}
	return Get(e.IssueID)
}

// WithOperation sets the operation being performed.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the path or URL involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends a hint. It may be called repeatedly.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithIssue attaches a catalog page.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issueID = id
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build creates the ActionableError. It returns nil only when neither an
// operation, a resource nor a cause was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" && c.resource == "" && c.cause == nil {
		return nil
	}

	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		IssueID:     c.issueID,
		Cause:       c.cause,
	}
}

// BuildError is Build returning the error interface, so a nil result stays a
// nil interface in return statements.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
