// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/blendzip/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/blendzip/config.cue on macOS, %APPDATA%\blendzip\config.cue
// on Windows). The package provides type-safe configuration access and supports output
// format selection, UI settings, and diagnosis tuning such as the nesting depth cutoff
// and the target Blender version.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
