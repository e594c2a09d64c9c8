// SPDX-License-Identifier: MPL-2.0

package diagnose

import (
	"sort"
	"strings"
	"testing"
)

func findingCodes(findings []Finding) []string {
	codes := make([]string, 0, len(findings))
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	return codes
}

func countCode(findings []Finding, code string) int {
	n := 0
	for _, f := range findings {
		if f.Code == code {
			n++
		}
	}
	return n
}

func findByCode(findings []Finding, code string) *Finding {
	for i := range findings {
		if findings[i].Code == code {
			return &findings[i]
		}
	}
	return nil
}

func buildFor(t *testing.T, entries []Entry, opts ...func(*ruleContext)) []Finding {
	t.Helper()

	markers := LocateMarkers(entries)
	kind, canonical := Classify(markers, DefaultErrorDepth)
	ctx := ruleContext{
		kind:        kind,
		route:       RouteFor(kind),
		markers:     markers,
		canonical:   canonical,
		entries:     entries,
		archiveName: "addon.zip",
		errorDepth:  DefaultErrorDepth,
	}
	for _, opt := range opts {
		opt(&ctx)
	}
	return buildFindings(ctx)
}

func TestDepthRuleAtRoot(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{"__init__.py"})
	f := findByCode(findings, CodeMarkerAtRoot)
	if f == nil {
		t.Fatalf("no MARKER_AT_ROOT finding: %v", findingCodes(findings))
	}
	if f.Severity != SeverityOK {
		t.Errorf("severity = %v, want OK", f.Severity)
	}
}

func TestDepthRuleNested(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{"myaddon-main/blender_manifest.toml"})
	f := findByCode(findings, CodeNestedMarker)
	if f == nil {
		t.Fatalf("no NESTED_MARKER finding: %v", findingCodes(findings))
	}
	if f.Severity != SeverityWarning {
		t.Errorf("severity = %v, want WARNING", f.Severity)
	}
	if want := `"myaddon-main"`; !contains(f.Message, want) {
		t.Errorf("message %q does not name root %s", f.Message, want)
	}
}

func TestDepthRuleTooDeep(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{"a/b/c/d/__init__.py"})
	f := findByCode(findings, CodeMarkerTooDeep)
	if f == nil {
		t.Fatalf("no MARKER_TOO_DEEP finding: %v", findingCodes(findings))
	}
	if f.Severity != SeverityError {
		t.Errorf("severity = %v, want ERROR", f.Severity)
	}
	if findByCode(findings, CodeAllClear) != nil {
		t.Error("ALL_CLEAR emitted despite an error")
	}
}

func TestDuplicateMarkerRule(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{"foo/__init__.py", "bar/__init__.py"})

	if got := countCode(findings, CodeDuplicateMarker); got != 1 {
		t.Fatalf("DUPLICATE_MARKER count = %d, want 1", got)
	}
	f := findByCode(findings, CodeDuplicateMarker)
	// bar is canonical (lexicographically smaller root), foo is the extra.
	if f.RelatedPath != "foo/__init__.py" {
		t.Errorf("RelatedPath = %q, want foo/__init__.py", f.RelatedPath)
	}
}

func TestMixedMarkerRule(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{"blender_manifest.toml", "__init__.py"},
		func(ctx *ruleContext) {
			ctx.manifest = &ManifestResult{Present: true, ParseOK: true}
		})

	if countCode(findings, CodeMixedMarkers) != 1 {
		t.Errorf("MIXED_MARKERS count = %d, want 1: %v", countCode(findings, CodeMixedMarkers), findingCodes(findings))
	}
}

func TestUnknownRule(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{"README.md"})
	f := findByCode(findings, CodeNoMarkersFound)
	if f == nil {
		t.Fatalf("no NO_MARKERS_FOUND finding: %v", findingCodes(findings))
	}
	if f.Severity != SeverityError {
		t.Errorf("severity = %v, want ERROR", f.Severity)
	}
	if findByCode(findings, CodeInstallRoute) != nil {
		t.Error("INSTALL_ROUTE emitted for Unknown kind")
	}
}

func TestManifestRules(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{"blender_manifest.toml"}, func(ctx *ruleContext) {
		ctx.manifest = &ManifestResult{
			Present:            true,
			ParseOK:            true,
			MissingRequired:    []string{"id", "version"},
			MissingRecommended: []string{"blender_version_min"},
		}
	})

	if got := countCode(findings, CodeManifestMissingRequiredKey); got != 2 {
		t.Errorf("MANIFEST_MISSING_REQUIRED_KEY count = %d, want 2", got)
	}
	if got := countCode(findings, CodeManifestMissingRecommendedKey); got != 1 {
		t.Errorf("MANIFEST_MISSING_RECOMMENDED_KEY count = %d, want 1", got)
	}
	if findByCode(findings, CodeAllClear) != nil {
		t.Error("ALL_CLEAR emitted despite errors")
	}
}

func TestManifestParseRule(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{"blender_manifest.toml"}, func(ctx *ruleContext) {
		ctx.manifest = &ManifestResult{Present: true, ParseError: "toml: line 3: boom"}
	})

	f := findByCode(findings, CodeManifestUnparseable)
	if f == nil {
		t.Fatalf("no MANIFEST_UNPARSEABLE finding: %v", findingCodes(findings))
	}
	if !contains(f.Message, "toml: line 3: boom") {
		t.Errorf("message %q does not include parse error text", f.Message)
	}
}

func TestVersionCompatRule(t *testing.T) {
	t.Parallel()

	manifest := &ManifestResult{
		Present: true,
		ParseOK: true,
		Fields: map[string]string{
			"blender_version_min": "4.2.0",
			"blender_version_max": "4.4.0",
		},
	}

	tests := []struct {
		name        string
		hostVersion string
		wantCode    string
	}{
		{"host too old", "4.1.0", CodeBlenderVersionTooOld},
		{"host too new", "4.5.0", CodeBlenderVersionTooNew},
		{"host unparsable", "four.two", CodeHostVersionUnparseable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			findings := buildFor(t, []Entry{"blender_manifest.toml"}, func(ctx *ruleContext) {
				ctx.manifest = manifest
				ctx.hostVersion = tt.hostVersion
			})
			if countCode(findings, tt.wantCode) != 1 {
				t.Errorf("%s count = %d, want 1: %v", tt.wantCode, countCode(findings, tt.wantCode), findingCodes(findings))
			}
		})
	}

	t.Run("in range emits nothing", func(t *testing.T) {
		t.Parallel()

		findings := buildFor(t, []Entry{"blender_manifest.toml"}, func(ctx *ruleContext) {
			ctx.manifest = manifest
			ctx.hostVersion = "4.3.0"
		})
		for _, code := range []string{CodeBlenderVersionTooOld, CodeBlenderVersionTooNew, CodeHostVersionUnparseable} {
			if countCode(findings, code) != 0 {
				t.Errorf("unexpected %s finding", code)
			}
		}
	})

	t.Run("no host version skips the rule", func(t *testing.T) {
		t.Parallel()

		findings := buildFor(t, []Entry{"blender_manifest.toml"}, func(ctx *ruleContext) {
			ctx.manifest = manifest
		})
		if countCode(findings, CodeBlenderVersionTooOld) != 0 {
			t.Error("version rule ran without a host version")
		}
	})
}

func TestSourceArchiveNameRule(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{"myaddon-main/blender_manifest.toml"}, func(ctx *ruleContext) {
		ctx.archiveName = "myaddon-main.zip"
	})
	if countCode(findings, CodeSourceArchiveName) != 1 {
		t.Errorf("SOURCE_ARCHIVE_NAME count = %d, want 1", countCode(findings, CodeSourceArchiveName))
	}

	findings = buildFor(t, []Entry{"myaddon-main/blender_manifest.toml"}, func(ctx *ruleContext) {
		ctx.archiveName = "myaddon-1.2.zip"
	})
	if countCode(findings, CodeSourceArchiveName) != 0 {
		t.Error("SOURCE_ARCHIVE_NAME emitted for a release-looking name")
	}
}

func TestUntidyRootRule(t *testing.T) {
	t.Parallel()

	// Nested marker with two sibling top-level folders: untidy.
	findings := buildFor(t, []Entry{
		"myaddon/__init__.py",
		"examples/demo.blend",
	})
	if countCode(findings, CodeUntidyRoot) != 1 {
		t.Errorf("UNTIDY_ROOT count = %d, want 1: %v", countCode(findings, CodeUntidyRoot), findingCodes(findings))
	}

	// Marker at archive root: multiple folders next to it are legitimate.
	findings = buildFor(t, []Entry{
		"blender_manifest.toml",
		"src/ops.py",
		"assets/icon.png",
	})
	if countCode(findings, CodeUntidyRoot) != 0 {
		t.Error("UNTIDY_ROOT emitted for a root-level package")
	}
}

func TestAllClearRule(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{"blender_manifest.toml"}, func(ctx *ruleContext) {
		ctx.manifest = &ManifestResult{Present: true, ParseOK: true}
	})

	if countCode(findings, CodeAllClear) != 1 {
		t.Fatalf("ALL_CLEAR count = %d, want 1: %v", countCode(findings, CodeAllClear), findingCodes(findings))
	}
}

func TestFindingsSortedBySeverity(t *testing.T) {
	t.Parallel()

	findings := buildFor(t, []Entry{
		"repo-main/blender_manifest.toml",
		"repo-main/legacy/__init__.py",
	}, func(ctx *ruleContext) {
		ctx.manifest = &ManifestResult{
			Present:         true,
			ParseOK:         true,
			MissingRequired: []string{"id"},
		}
	})

	if !sort.SliceIsSorted(findings, func(i, j int) bool {
		return findings[i].Severity < findings[j].Severity
	}) {
		t.Errorf("findings not sorted by severity: %+v", findings)
	}
	if findings[0].Severity != SeverityError {
		t.Errorf("first finding severity = %v, want ERROR", findings[0].Severity)
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
