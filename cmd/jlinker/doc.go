// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for jlinker.
//
// Every command receives an *App, the composition root that owns the config
// provider, the output streams and the logger. Business logic lives in the
// internal packages; handlers only translate flags and render results.
package cmd
