// SPDX-License-Identifier: MPL-2.0

package diagnose

import (
	"fmt"
	"path/filepath"
)

type (
	// Severity ranks a finding. Lower values sort first in a report.
	Severity int

	// Finding is one structured diagnostic statement. Findings are pure
	// output value objects: created by rules, never mutated.
	Finding struct {
		// Severity is the finding's rank.
		Severity Severity `json:"severity" yaml:"severity"`
		// Code is a stable identifier for the finding type.
		Code string `json:"code" yaml:"code"`
		// Message is the human-readable text.
		Message string `json:"message" yaml:"message"`
		// RelatedPath is the archive entry the finding refers to, when any.
		RelatedPath string `json:"related_path,omitempty" yaml:"related_path,omitempty"`
	}

	// Report is the sole artifact returned to the caller: one report per
	// invocation, immutable once produced.
	Report struct {
		// ArchivePath is the path the diagnosis ran against.
		ArchivePath string `json:"archive_path" yaml:"archive_path"`
		// Kind is the package classification.
		Kind Kind `json:"kind" yaml:"kind"`
		// Route is the recommended install route, RouteNone when no
		// recommendation applies.
		Route Route `json:"recommended_route,omitempty" yaml:"recommended_route,omitempty"`
		// Findings is the ordered finding list: stable-sorted by severity
		// rank, then by rule emission order within a rank.
		Findings []Finding `json:"findings" yaml:"findings"`
		// Manifest is the manifest validation outcome, attached only for
		// Extension and Mixed kinds.
		Manifest *ManifestResult `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	}

	// Option configures a diagnosis.
	Option func(*options)

	options struct {
		errorDepth  int
		hostVersion string
	}
)

const (
	// SeverityError means the package cannot be expected to install.
	SeverityError Severity = iota
	// SeverityWarning means the package will likely misbehave or confuse.
	SeverityWarning
	// SeverityOK records a check that passed.
	SeverityOK
	// SeverityInfo carries guidance that is neither pass nor fail.
	SeverityInfo
)

// DefaultErrorDepth is the nesting depth from which a marker is considered
// structurally unusable rather than merely mis-zipped. The cutoff is a
// heuristic; override it with WithErrorDepth.
const DefaultErrorDepth = 4

// String returns the display name of the Severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityOK:
		return "OK"
	case SeverityInfo:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalJSON renders the severity as its display name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// MarshalYAML renders the severity as its display name.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// MarshalJSON renders the kind as its display name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// MarshalYAML renders the kind as its display name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// MarshalJSON renders the route as its display name.
func (r Route) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// MarshalYAML renders the route as its display name.
func (r Route) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// WithErrorDepth overrides the depth cutoff separating a re-zip warning from
// a structurally-unusable error.
func WithErrorDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.errorDepth = depth
		}
	}
}

// WithHostVersion supplies the Blender version of the host ("4.2.0") so the
// diagnosis can check it against the manifest's declared version range.
func WithHostVersion(version string) Option {
	return func(o *options) {
		o.hostVersion = version
	}
}

// HasErrors reports whether the report contains at least one ERROR finding.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Diagnose inspects the archive at path and produces a DiagnosisReport. It
// fails only when the archive cannot be opened or listed (the error wraps
// ErrArchiveUnreadable); every other anomaly is captured as a Finding inside
// a successfully returned report.
func Diagnose(path string, opts ...Option) (*Report, error) {
	cfg := options{errorDepth: DefaultErrorDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	archive, err := OpenArchive(path)
	if err != nil {
		return nil, err
	}

	entries := archive.Entries()
	markers := LocateMarkers(entries)

	// Only the shallowest manifest marker's content is parsed when multiple
	// exist; deeper duplicates are reported by the duplicate-marker rule.
	var manifest *ManifestResult
	if m := canonicalOfKind(markers, ExtensionManifest); m != nil {
		data, readErr := archive.ReadEntry(m.Path)
		var mr ManifestResult
		if readErr != nil {
			mr = unreadableManifest(readErr)
		} else {
			mr = ValidateManifest(data)
		}
		manifest = &mr
	}

	// The handle is released before the report is built; everything from
	// here on is pure computation over local state.
	_ = archive.Close()

	kind, canonical := Classify(markers, cfg.errorDepth)
	route := RouteFor(kind)

	report := &Report{
		ArchivePath: path,
		Kind:        kind,
		Route:       route,
		Findings: buildFindings(ruleContext{
			kind:        kind,
			route:       route,
			markers:     markers,
			canonical:   canonical,
			manifest:    manifest,
			entries:     entries,
			archiveName: filepath.Base(path),
			hostVersion: cfg.hostVersion,
			errorDepth:  cfg.errorDepth,
		}),
	}

	// ManifestResult is only ever attached for Extension and Mixed kinds.
	if kind == KindExtension || kind == KindMixed {
		report.Manifest = manifest
	}

	return report, nil
}
