// SPDX-License-Identifier: MPL-2.0

// Package platform holds the small amount of OS-specific knowledge jlinker
// needs: executable suffixes inside a JDK's bin directory and file names that
// Windows refuses to create, which matters for launcher scripts.
package platform
