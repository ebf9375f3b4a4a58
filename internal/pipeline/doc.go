// SPDX-License-Identifier: MPL-2.0

// Package pipeline wires the downloader, extractor, JDK resolver and linker
// into the single build step that turns a project configuration into a
// runtime image, for the host platform or for a cross-target JDK.
package pipeline
