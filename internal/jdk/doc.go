// SPDX-License-Identifier: MPL-2.0

// Package jdk understands JDK installations: it parses the "release" file a
// JDK ships in its home directory, locates the home and jmods directories of
// an extracted cross-target distribution, and describes the target JDKs a
// project links against.
package jdk
