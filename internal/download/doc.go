// SPDX-License-Identifier: MPL-2.0

// Package download fetches JDK archives over HTTP(S) and verifies them.
//
// The response body is hashed while it is written to disk, so each byte is
// read from the network once and the file is never re-read for verification.
// The destination file is always written in full and closed before the
// checksum is compared; a mismatching file stays on disk for inspection.
package download
