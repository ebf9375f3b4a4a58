// SPDX-License-Identifier: MPL-2.0

// Package testutil provides fixtures shared by tests: fake JDK homes, JDK
// archives built in memory, and Must* helpers that fail the test instead of
// returning errors.
package testutil
