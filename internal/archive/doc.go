// SPDX-License-Identifier: MPL-2.0

// Package archive unpacks JDK distributions.
//
// Two formats are recognised by file name suffix: ".zip" and ".tar.gz".
// Extraction keeps relative paths, permission bits, symbolic links and hard
// links so that the bin/ executables of a JDK stay runnable. Every entry is
// confined to the destination directory.
package archive
