// SPDX-License-Identifier: MPL-2.0

// Package config loads the jlinker project file using Viper with CUE as the
// file format.
//
// The project file is jlinker.cue. It is looked up at the path given with
// --config, then in the working directory, then in the user configuration
// directory (~/.config/jlinker on Linux, ~/Library/Application Support/jlinker
// on macOS, %APPDATA%\jlinker on Windows). Files are validated against the
// embedded config_schema.cue before they are merged into Viper, and
// JLINKER_* environment variables override scalar settings such as
// JLINKER_JAVA_HOME and JLINKER_BUILD_DIR.
package config
