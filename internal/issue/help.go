// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Code identifies a diagnostic finding code with a registered help page.
type Code string

// MarkdownMsg is Markdown text that will be rendered for the user.
type MarkdownMsg string

// HelpPage is the remediation documentation for one finding code.
type HelpPage struct {
	code  Code
	mdMsg MarkdownMsg
}

// Code returns the finding code this page documents.
func (p *HelpPage) Code() Code {
	return p.code
}

// MarkdownMsg returns the raw Markdown body of the page.
func (p *HelpPage) MarkdownMsg() MarkdownMsg {
	return p.mdMsg
}

// Render renders the page's Markdown with the given glamour style path.
// An empty stylePath uses glamour's default style.
func (p *HelpPage) Render(stylePath string) (string, error) {
	return render(string(p.mdMsg), stylePath)
}

var (
	render = glamour.Render

	nestedMarkerPage = &HelpPage{
		code: "NESTED_MARKER",
		mdMsg: `
# Package is nested one or more folders deep

The marker file that identifies your package was found inside a subfolder
instead of at the root of the zip. Blender's installers expect the package
root at the top level, so installation will likely pick up nothing.

This usually happens when a whole project folder was zipped instead of its
contents, or when a GitHub "Download ZIP" archive is installed directly.

## Things you can try
- Re-zip starting **inside** the detected root folder:
~~~
$ cd myaddon-main
$ zip -r ../myaddon.zip .
~~~
- If the zip came from a code-hosting site, look for a release/install zip
  published by the author instead.`,
	}

	markerTooDeepPage = &HelpPage{
		code: "MARKER_TOO_DEEP",
		mdMsg: `
# Package markers are buried too deep

A marker file exists, but it sits so many folders below the zip root that
the archive cannot be treated as an installable package. This is almost
always a zip of a zip, or a zip of an unrelated directory tree that merely
contains a package somewhere inside it.

## Things you can try
- Extract the archive and locate the folder that directly contains
  ` + "`blender_manifest.toml`" + ` or ` + "`__init__.py`" + `.
- Create a fresh zip from that folder's contents.`,
	}

	duplicateMarkerPage = &HelpPage{
		code: "DUPLICATE_MARKER",
		mdMsg: `
# Multiple copies of the same marker file

The zip contains more than one marker file of the same kind under different
roots. Installers expect a single install target, so the install may fail or
silently install the wrong package.

## Things you can try
- Re-zip only the one folder you actually intend to install.
- If the extras are vendored sub-packages, they are usually harmless, but
  confirm the canonical root named in the diagnosis is the right one.`,
	}

	mixedMarkersPage = &HelpPage{
		code: "MIXED_MARKERS",
		mdMsg: `
# Both extension and legacy add-on markers found

The zip contains both a ` + "`blender_manifest.toml`" + ` (extension-style
package) and an ` + "`__init__.py`" + ` (legacy add-on entry point) near the
root. Blender will happily install it through either route, but the two
routes have different update and permission semantics.

## Things you can try
- Confirm with the package author which install route is intended.
- For Blender 4.2+, prefer the extension route:
  **Edit > Preferences > Extensions > Install from Disk**.`,
	}

	noMarkersFoundPage = &HelpPage{
		code: "NO_MARKERS_FOUND",
		mdMsg: `
# No package markers found

Neither ` + "`blender_manifest.toml`" + ` nor ` + "`__init__.py`" + ` exists
anywhere in the zip. This archive is likely source code, documentation, or
assets rather than an installable package.

## Things you can try
- If this came from GitHub/GitLab, check the project's **Releases** page for
  an install zip.
- If the project ships the add-on in a subdirectory, zip only that
  subdirectory's contents.`,
	}

	manifestMissingRequiredKeyPage = &HelpPage{
		code: "MANIFEST_MISSING_REQUIRED_KEY",
		mdMsg: `
# Manifest is missing a required field

Every extension manifest must define ` + "`id`" + `, ` + "`version`" + ` and
` + "`name`" + ` as non-empty strings. Blender refuses to install an
extension whose manifest omits any of them.

## Example of a minimal valid manifest
~~~toml
schema_version = "1.0.0"
id = "my_addon"
version = "1.0.0"
name = "My Addon"
blender_version_min = "4.2.0"
~~~`,
	}

	manifestMissingRecommendedKeyPage = &HelpPage{
		code: "MANIFEST_MISSING_RECOMMENDED_KEY",
		mdMsg: `
# Manifest is missing a recommended field

The manifest parses and has all required fields, but omits a recommended
one such as ` + "`blender_version_min`" + `. Without it Blender cannot warn
users who run an older, incompatible version.

## Things you can try
- Add the field to the manifest:
~~~toml
blender_version_min = "4.2.0"
~~~`,
	}

	manifestUnparseablePage = &HelpPage{
		code: "MANIFEST_UNPARSEABLE",
		mdMsg: `
# Manifest could not be parsed

A ` + "`blender_manifest.toml`" + ` exists but its content is not valid
TOML. The rest of the diagnosis still ran using the marker's location, but
field checks were skipped.

## Things you can try
- Inspect the parse error in the diagnosis for the offending line.
- Validate the file with any TOML linter before re-zipping.`,
	}

	blenderVersionTooOldPage = &HelpPage{
		code: "BLENDER_VERSION_TOO_OLD",
		mdMsg: `
# Blender version is below the package minimum

The manifest declares a ` + "`blender_version_min`" + ` above the Blender
version this diagnosis was run against. Installation may succeed, but the
package is likely to fail at runtime.

## Things you can try
- Upgrade Blender to at least the declared minimum version.
- Check whether the author publishes an older release for your version.`,
	}

	blenderVersionTooNewPage = &HelpPage{
		code: "BLENDER_VERSION_TOO_NEW",
		mdMsg: `
# Blender version is above the package maximum

The manifest declares a ` + "`blender_version_max`" + ` below the Blender
version this diagnosis was run against. The package may still work, but the
author has not declared support for your version.

## Things you can try
- Check the project page for a newer release.`,
	}

	sourceArchiveNamePage = &HelpPage{
		code: "SOURCE_ARCHIVE_NAME",
		mdMsg: `
# Archive looks like a source-code download

The archive's file name matches the pattern of a GitHub/GitLab source
download (for example ` + "`myaddon-main.zip`" + `). Source archives wrap
the project in an extra top-level folder and often include files that are
not part of the installable package.

## Things you can try
- Prefer a zip from the project's **Releases** page when one exists.
- Otherwise, re-zip only the actual package folder before installing.`,
	}

	untidyRootPage = &HelpPage{
		code: "UNTIDY_ROOT",
		mdMsg: `
# Archive root contains multiple top-level entries

The zip has several files or folders at its top level. Installers often
expect a single package folder (legacy add-ons) or the manifest directly at
the root (extensions), so a cluttered root makes the install target
ambiguous.

## Things you can try
- Re-zip so the archive contains exactly the intended package content.`,
	}

	pages = map[Code]*HelpPage{
		nestedMarkerPage.Code():                  nestedMarkerPage,
		markerTooDeepPage.Code():                 markerTooDeepPage,
		duplicateMarkerPage.Code():               duplicateMarkerPage,
		mixedMarkersPage.Code():                  mixedMarkersPage,
		noMarkersFoundPage.Code():                noMarkersFoundPage,
		manifestMissingRequiredKeyPage.Code():    manifestMissingRequiredKeyPage,
		manifestMissingRecommendedKeyPage.Code(): manifestMissingRecommendedKeyPage,
		manifestUnparseablePage.Code():           manifestUnparseablePage,
		blenderVersionTooOldPage.Code():          blenderVersionTooOldPage,
		blenderVersionTooNewPage.Code():          blenderVersionTooNewPage,
		sourceArchiveNamePage.Code():             sourceArchiveNamePage,
		untidyRootPage.Code():                    untidyRootPage,
	}
)

// Values returns all registered help pages in stable code order.
func Values() []*HelpPage {
	codes := maps.Keys(pages)
	slices.Sort(codes)

	out := make([]*HelpPage, 0, len(codes))
	for _, c := range codes {
		out = append(out, pages[c])
	}
	return out
}

// Get returns the help page for a finding code, or nil when none is registered.
func Get(code Code) *HelpPage {
	return pages[code]
}
