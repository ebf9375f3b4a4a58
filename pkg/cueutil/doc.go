// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles user CUE files against an embedded schema
// definition and reports validation failures with JSON-style paths, such as
// "jlinker.cue: application.vm: 3 errors in empty disjunction".
package cueutil
