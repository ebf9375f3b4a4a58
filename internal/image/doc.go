// SPDX-License-Identifier: MPL-2.0

// Package image runs the java launcher of a linked runtime image.
package image
