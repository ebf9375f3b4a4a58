// SPDX-License-Identifier: MPL-2.0

// Package jlink turns an ImageConfig into the argument list of the JDK's
// jlink tool and runs it.
//
// Argument order is fixed and module path entries are sorted, so the same
// configuration always yields byte-identical arguments. The tool runs
// either as a subprocess (<jdk>/bin/jlink) or in-process through a
// ToolProvider; both report a non-zero status as *LinkFailedError.
package jlink
