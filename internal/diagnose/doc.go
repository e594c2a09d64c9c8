// SPDX-License-Identifier: MPL-2.0

// Package diagnose inspects a zip archive and determines whether it is an
// installable Blender package, classifying it as an extension, a legacy
// add-on, or one of several broken shapes, and emitting severity-tagged
// findings describing what is wrong and how to fix it.
//
// The package follows a two-tier error model: only an unreadable archive is
// an error (wrapping ErrArchiveUnreadable). Everything about the package's
// content — missing markers, bad manifest, wrong nesting depth — is domain
// information collected as Finding values inside the returned Report.
//
// Each Diagnose call owns only local state, so concurrent calls on
// independent paths are safe.
package diagnose
