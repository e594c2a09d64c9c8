// SPDX-License-Identifier: MPL-2.0

package diagnose

type (
	// Kind is the classification assigned to an archive based on which
	// markers are present and at what depth.
	Kind int

	// Route is the recommended install route for a classified archive.
	Route int
)

const (
	// KindUnknown means no markers were found at all.
	KindUnknown Kind = iota
	// KindExtension means an extension manifest marker governs the archive.
	KindExtension
	// KindLegacyAddon means only legacy __init__.py markers exist.
	KindLegacyAddon
	// KindMixed means both marker styles were found at comparably shallow depth.
	KindMixed
	// KindMalformed means markers exist but only at structurally unusable depths.
	KindMalformed
)

const (
	// RouteNone means no install route is recommended.
	RouteNone Route = iota
	// RouteInstallAsExtension recommends the extension install route.
	RouteInstallAsExtension
	// RouteInstallAsAddon recommends the legacy add-on install route.
	RouteInstallAsAddon
)

// mixedDepthLimit is the maximum depth at which the shallower of the two
// marker styles still produces a Mixed classification.
const mixedDepthLimit = 1

// String returns the display name of the Kind.
func (k Kind) String() string {
	switch k {
	case KindExtension:
		return "Extension"
	case KindLegacyAddon:
		return "LegacyAddon"
	case KindMixed:
		return "Mixed"
	case KindMalformed:
		return "Malformed"
	default:
		return "Unknown"
	}
}

// String returns the display name of the Route.
func (r Route) String() string {
	switch r {
	case RouteInstallAsExtension:
		return "InstallAsExtension"
	case RouteInstallAsAddon:
		return "InstallAsAddon"
	default:
		return ""
	}
}

// Classify assigns a package kind from the located markers and returns the
// marker chosen as canonical root. Decision order, first match wins:
//
//  1. No markers at all: Unknown.
//  2. Both marker styles exist and the shallower of the two sits at depth
//     <= 1: Mixed.
//  3. An extension manifest exists at an installable depth: Extension,
//     rooted at the minimum-depth manifest (ties broken by lexicographically
//     smallest root).
//  4. Only legacy markers exist at an installable depth: LegacyAddon, same
//     canonical pick.
//  5. Otherwise markers exist only at unreasonably deep levels: Malformed.
//
// errorDepth is the depth from which a marker stops being an installable
// candidate (DefaultErrorDepth unless overridden).
func Classify(markers []Marker, errorDepth int) (Kind, *Marker) {
	if len(markers) == 0 {
		return KindUnknown, nil
	}

	manifest := canonicalOfKind(markers, ExtensionManifest)
	legacy := canonicalOfKind(markers, LegacyInitFile)

	if manifest != nil && legacy != nil {
		shallower := manifest
		if legacy.Depth < manifest.Depth {
			shallower = legacy
		}
		if shallower.Depth <= mixedDepthLimit {
			return KindMixed, shallower
		}
	}

	if manifest != nil && manifest.Depth < errorDepth {
		return KindExtension, manifest
	}

	if manifest == nil && legacy != nil && legacy.Depth < errorDepth {
		return KindLegacyAddon, legacy
	}

	// Markers exist but none at an installable depth. The shallowest one is
	// still the canonical root for depth reporting.
	shallowest := manifest
	if shallowest == nil || (legacy != nil && legacy.Depth < shallowest.Depth) {
		shallowest = legacy
	}
	return KindMalformed, shallowest
}

// RouteFor maps a package kind to its recommended install route. Unknown and
// Malformed archives get no recommendation.
func RouteFor(kind Kind) Route {
	switch kind {
	case KindExtension, KindMixed:
		return RouteInstallAsExtension
	case KindLegacyAddon:
		return RouteInstallAsAddon
	default:
		return RouteNone
	}
}
