// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown help
// pages for the failures jlinker users run into most: failed downloads,
// checksum mismatches, JDKs without cross-linking support and jlink errors.
//
// Components return ordinary typed errors. The CLI wraps them with an
// ActionableError that names the operation, the resource involved and an
// optional catalog Id, then renders the matching Issue with glamour.
package issue
