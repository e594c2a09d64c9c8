// SPDX-License-Identifier: MPL-2.0

package diagnose

import (
	"fmt"
	"sort"
	"strings"
)

// Stable finding codes. These are part of the tool's output contract; the
// explain command resolves them to remediation pages.
const (
	CodeMarkerAtRoot                  = "MARKER_AT_ROOT"
	CodeNestedMarker                  = "NESTED_MARKER"
	CodeMarkerTooDeep                 = "MARKER_TOO_DEEP"
	CodeDuplicateMarker               = "DUPLICATE_MARKER"
	CodeMixedMarkers                  = "MIXED_MARKERS"
	CodeNoMarkersFound                = "NO_MARKERS_FOUND"
	CodeManifestMissingRequiredKey    = "MANIFEST_MISSING_REQUIRED_KEY"
	CodeManifestMissingRecommendedKey = "MANIFEST_MISSING_RECOMMENDED_KEY"
	CodeManifestUnparseable           = "MANIFEST_UNPARSEABLE"
	CodeInstallRoute                  = "INSTALL_ROUTE"
	CodeBlenderVersionTooOld          = "BLENDER_VERSION_TOO_OLD"
	CodeBlenderVersionTooNew          = "BLENDER_VERSION_TOO_NEW"
	CodeHostVersionUnparseable        = "HOST_VERSION_UNPARSEABLE"
	CodeSourceArchiveName             = "SOURCE_ARCHIVE_NAME"
	CodeUntidyRoot                    = "UNTIDY_ROOT"
	CodeAllClear                      = "ALL_CLEAR"
)

// Exact host menu paths, as Blender presents them.
const (
	extensionRouteMenu = "Edit > Preferences > Extensions > Install from Disk"
	addonRouteMenu     = "Edit > Preferences > Add-ons > Install from Disk"
)

// sourceArchiveTokens are filename fragments typical of code-hosting source
// downloads rather than release packages.
var sourceArchiveTokens = []string{
	"-main.zip",
	"-master.zip",
	"source code",
	"archive",
	"refs-heads",
}

// ruleContext carries everything the rules need. All fields are read-only.
type ruleContext struct {
	kind        Kind
	route       Route
	markers     []Marker
	canonical   *Marker
	manifest    *ManifestResult
	entries     []Entry
	archiveName string
	hostVersion string
	errorDepth  int
}

// buildFindings runs the ordered rule set and returns the findings sorted
// stably by severity rank, preserving rule emission order within a rank.
// No finding is ever removed once emitted; duplicate-looking findings from
// distinct rules are all kept.
func buildFindings(ctx ruleContext) []Finding {
	var findings []Finding
	emit := func(f Finding) {
		findings = append(findings, f)
	}

	depthRule(ctx, emit)
	duplicateMarkerRule(ctx, emit)
	mixedMarkerRule(ctx, emit)
	unknownRule(ctx, emit)
	manifestRequiredRule(ctx, emit)
	manifestRecommendedRule(ctx, emit)
	manifestParseRule(ctx, emit)
	installRouteRule(ctx, emit)
	versionCompatRule(ctx, emit)
	sourceArchiveNameRule(ctx, emit)
	untidyRootRule(ctx, emit)
	allClearRule(findings, emit)

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity < findings[j].Severity
	})
	return findings
}

// depthRule judges the packaging depth of the canonical marker: the most
// common source of install failures.
func depthRule(ctx ruleContext, emit func(Finding)) {
	if ctx.canonical == nil {
		return
	}
	m := ctx.canonical

	switch {
	case m.Depth >= ctx.errorDepth || ctx.kind == KindMalformed:
		emit(Finding{
			Severity:    SeverityError,
			Code:        CodeMarkerTooDeep,
			Message:     fmt.Sprintf("%s is buried %d folders deep; this archive cannot be installed as-is", m.Kind, m.Depth),
			RelatedPath: string(m.Path),
		})
	case m.Depth == 0:
		emit(Finding{
			Severity:    SeverityOK,
			Code:        CodeMarkerAtRoot,
			Message:     fmt.Sprintf("%s at archive root", m.Kind),
			RelatedPath: string(m.Path),
		})
	default:
		emit(Finding{
			Severity:    SeverityWarning,
			Code:        CodeNestedMarker,
			Message:     fmt.Sprintf("%s found under folder %q; re-zip starting from that folder so the marker sits at the archive root", m.Kind, m.Root),
			RelatedPath: string(m.Path),
		})
	}
}

// duplicateMarkerRule emits one warning per marker occurrence beyond the
// canonical one of its kind.
func duplicateMarkerRule(ctx ruleContext, emit func(Finding)) {
	for _, kind := range []MarkerKind{ExtensionManifest, LegacyInitFile} {
		canonical := canonicalOfKind(ctx.markers, kind)
		if canonical == nil {
			continue
		}

		var extras []Marker
		for _, m := range ctx.markers {
			if m.Kind == kind && m.Path != canonical.Path {
				extras = append(extras, m)
			}
		}
		sort.Slice(extras, func(i, j int) bool {
			if extras[i].Depth != extras[j].Depth {
				return extras[i].Depth < extras[j].Depth
			}
			return extras[i].Path < extras[j].Path
		})

		for _, m := range extras {
			emit(Finding{
				Severity:    SeverityWarning,
				Code:        CodeDuplicateMarker,
				Message:     fmt.Sprintf("extra %s at %q beyond the canonical one at %q; the install may pick up the wrong package", m.Kind, m.Path, canonical.Path),
				RelatedPath: string(m.Path),
			})
		}
	}
}

func mixedMarkerRule(ctx ruleContext, emit func(Finding)) {
	if ctx.kind != KindMixed {
		return
	}
	emit(Finding{
		Severity: SeverityWarning,
		Code:     CodeMixedMarkers,
		Message:  "both an extension manifest and a legacy __init__.py entry point were found; confirm the intended package type before installing",
	})
}

func unknownRule(ctx ruleContext, emit func(Finding)) {
	if ctx.kind != KindUnknown {
		return
	}
	emit(Finding{
		Severity: SeverityError,
		Code:     CodeNoMarkersFound,
		Message:  fmt.Sprintf("could not find %s or %s; this archive is likely source or documentation, not an installable package", ManifestFileName, LegacyInitFileName),
	})
}

func manifestRequiredRule(ctx ruleContext, emit func(Finding)) {
	if ctx.manifest == nil {
		return
	}
	for _, key := range ctx.manifest.MissingRequired {
		emit(Finding{
			Severity: SeverityError,
			Code:     CodeManifestMissingRequiredKey,
			Message:  fmt.Sprintf("manifest is missing required key %q (must be a non-empty string)", key),
		})
	}
}

func manifestRecommendedRule(ctx ruleContext, emit func(Finding)) {
	if ctx.manifest == nil {
		return
	}
	for _, key := range ctx.manifest.MissingRecommended {
		emit(Finding{
			Severity: SeverityWarning,
			Code:     CodeManifestMissingRecommendedKey,
			Message:  fmt.Sprintf("manifest is missing recommended key %q", key),
		})
	}
}

func manifestParseRule(ctx ruleContext, emit func(Finding)) {
	if ctx.manifest == nil || !ctx.manifest.Present || ctx.manifest.ParseOK {
		return
	}
	emit(Finding{
		Severity: SeverityError,
		Code:     CodeManifestUnparseable,
		Message:  fmt.Sprintf("manifest could not be parsed: %s", ctx.manifest.ParseError),
	})
}

func installRouteRule(ctx ruleContext, emit func(Finding)) {
	var menu string
	switch ctx.route {
	case RouteInstallAsExtension:
		menu = extensionRouteMenu
	case RouteInstallAsAddon:
		menu = addonRouteMenu
	default:
		return
	}
	emit(Finding{
		Severity: SeverityInfo,
		Code:     CodeInstallRoute,
		Message:  fmt.Sprintf("recommended install path: %s", menu),
	})
}

// versionCompatRule checks the host Blender version against the manifest's
// declared range. It only runs when the caller supplied a host version and
// the manifest parsed.
func versionCompatRule(ctx ruleContext, emit func(Finding)) {
	if ctx.hostVersion == "" || ctx.manifest == nil || !ctx.manifest.ParseOK {
		return
	}

	host, ok := ParseVersion(ctx.hostVersion)
	if !ok {
		emit(Finding{
			Severity: SeverityInfo,
			Code:     CodeHostVersionUnparseable,
			Message:  fmt.Sprintf("could not parse Blender version %q for the compatibility check", ctx.hostVersion),
		})
		return
	}

	if minVersion, ok := ParseVersion(ctx.manifest.Fields["blender_version_min"]); ok && host.Compare(minVersion) < 0 {
		emit(Finding{
			Severity: SeverityError,
			Code:     CodeBlenderVersionTooOld,
			Message:  fmt.Sprintf("Blender %s is below the manifest's blender_version_min %s; installation or runtime failures are likely", ctx.hostVersion, ctx.manifest.Fields["blender_version_min"]),
		})
	}
	if maxVersion, ok := ParseVersion(ctx.manifest.Fields["blender_version_max"]); ok && host.Compare(maxVersion) > 0 {
		emit(Finding{
			Severity: SeverityWarning,
			Code:     CodeBlenderVersionTooNew,
			Message:  fmt.Sprintf("Blender %s is above the manifest's blender_version_max %s; the package may be unsupported", ctx.hostVersion, ctx.manifest.Fields["blender_version_max"]),
		})
	}
}

// sourceArchiveNameRule flags archive names that look like GitHub/GitLab
// source downloads, which wrap the package in an extra top-level folder.
func sourceArchiveNameRule(ctx ruleContext, emit func(Finding)) {
	name := strings.ToLower(ctx.archiveName)
	for _, token := range sourceArchiveTokens {
		if strings.Contains(name, token) {
			emit(Finding{
				Severity: SeverityInfo,
				Code:     CodeSourceArchiveName,
				Message:  "this looks like a source-code download; prefer a release/install zip from the package author when available",
			})
			return
		}
	}
}

// untidyRootRule warns about multiple top-level folders when the canonical
// marker is not already at the archive root. A well-formed root-level
// package legitimately has several top-level entries next to its marker.
func untidyRootRule(ctx ruleContext, emit func(Finding)) {
	if ctx.canonical != nil && ctx.canonical.Depth == 0 {
		return
	}

	topDirs := make(map[string]struct{})
	for _, e := range ctx.entries {
		if i := strings.Index(string(e), "/"); i > 0 {
			topDirs[string(e)[:i]] = struct{}{}
		}
	}
	if len(topDirs) < 2 {
		return
	}
	emit(Finding{
		Severity: SeverityWarning,
		Code:     CodeUntidyRoot,
		Message:  fmt.Sprintf("archive has %d top-level folders; installers expect a single package root", len(topDirs)),
	})
}

// allClearRule emits the summary OK when no rule above produced an error or
// warning.
func allClearRule(findings []Finding, emit func(Finding)) {
	for _, f := range findings {
		if f.Severity == SeverityError || f.Severity == SeverityWarning {
			return
		}
	}
	emit(Finding{
		Severity: SeverityOK,
		Code:     CodeAllClear,
		Message:  "package looks well-formed",
	})
}
