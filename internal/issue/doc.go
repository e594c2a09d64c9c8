// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It defines error types that carry remediation suggestions for infrastructure
// failures (unreadable archives, broken config files), and a registry of
// Markdown help pages for the diagnostic finding codes emitted by the core.
// Domain-level packaging problems are never errors; those are findings,
// produced by internal/diagnose.
package issue
