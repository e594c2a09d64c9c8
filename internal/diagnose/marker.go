// SPDX-License-Identifier: MPL-2.0

package diagnose

import "strings"

const (
	// ManifestFileName marks an extension-style package.
	ManifestFileName = "blender_manifest.toml"

	// LegacyInitFileName marks a legacy add-on package.
	LegacyInitFileName = "__init__.py"
)

type (
	// MarkerKind identifies which package style a marker file signals.
	MarkerKind int

	// Marker is one occurrence of a known marker file inside the archive.
	// Multiple markers of the same kind may exist (nested archives,
	// duplicated structures); all are retained, not just the first.
	Marker struct {
		// Kind is the package style the marker signals.
		Kind MarkerKind
		// Path is the entry path of the marker, original case preserved.
		Path Entry
		// Depth is the number of path segments preceding the filename.
		// Depth 0 means the marker filename sits directly at top level.
		Depth int
		// Root is the directory that would become the installed package
		// root if the archive were re-zipped at this marker. Empty string
		// means the archive root.
		Root string
	}
)

const (
	// ExtensionManifest is a blender_manifest.toml marker.
	ExtensionManifest MarkerKind = iota
	// LegacyInitFile is an __init__.py marker.
	LegacyInitFile
)

// String returns the marker filename for the kind.
func (k MarkerKind) String() string {
	switch k {
	case ExtensionManifest:
		return ManifestFileName
	case LegacyInitFile:
		return LegacyInitFileName
	default:
		return "unknown marker"
	}
}

// LocateMarkers scans entry paths for known marker files. Filenames are
// matched case-insensitively; no entries are excluded from scanning
// regardless of extension or nested-archive-looking names. The locator does
// not recurse into nested archives. An empty result is a classification
// input, not a failure.
func LocateMarkers(entries []Entry) []Marker {
	var markers []Marker
	for _, e := range entries {
		var kind MarkerKind
		switch strings.ToLower(e.Base()) {
		case ManifestFileName:
			kind = ExtensionManifest
		case LegacyInitFileName:
			kind = LegacyInitFile
		default:
			continue
		}
		markers = append(markers, Marker{
			Kind:  kind,
			Path:  e,
			Depth: e.Depth(),
			Root:  e.Root(),
		})
	}
	return markers
}

// canonicalOfKind picks the canonical marker of one kind: minimum depth,
// ties broken by lexicographically smallest root. Returns nil when no marker
// of the kind exists.
func canonicalOfKind(markers []Marker, kind MarkerKind) *Marker {
	var best *Marker
	for i := range markers {
		m := &markers[i]
		if m.Kind != kind {
			continue
		}
		if best == nil || m.Depth < best.Depth || (m.Depth == best.Depth && m.Root < best.Root) {
			best = m
		}
	}
	return best
}
