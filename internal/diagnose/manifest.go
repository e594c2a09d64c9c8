// SPDX-License-Identifier: MPL-2.0

package diagnose

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// requiredManifestKeys must be present in the manifest as non-empty strings.
var requiredManifestKeys = []string{"id", "version", "name"}

// recommendedManifestKeys should be present; absence is a warning, never an
// error.
var recommendedManifestKeys = []string{"blender_version_min"}

type (
	// ManifestResult is the outcome of parsing and validating the extension
	// manifest. It is only constructed for the shallowest ExtensionManifest
	// marker when one exists; a broken manifest is diagnostic information,
	// not a fatal error for the whole run.
	ManifestResult struct {
		// Present is true when a manifest marker was found.
		Present bool `json:"present" yaml:"present"`
		// ParseOK is true when the manifest content parsed as valid TOML.
		ParseOK bool `json:"parse_ok" yaml:"parse_ok"`
		// Fields maps known keys to their string values where present.
		Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
		// MissingRequired lists required keys that are absent, empty, or
		// hold a non-string value, in sorted order.
		MissingRequired []string `json:"missing_required,omitempty" yaml:"missing_required,omitempty"`
		// MissingRecommended lists recommended keys that are absent, in
		// sorted order.
		MissingRecommended []string `json:"missing_recommended,omitempty" yaml:"missing_recommended,omitempty"`
		// ParseError holds the parse failure message when ParseOK is false.
		ParseError string `json:"parse_error,omitempty" yaml:"parse_error,omitempty"`
	}

	// Version is a parsed dotted-integer version such as 4.2.0.
	Version []int
)

// ValidateManifest parses raw manifest bytes and validates required and
// recommended fields. Parsing failures set ParseOK=false and ParseError but
// never return an error: the rest of the diagnosis still runs using
// marker-path information alone.
func ValidateManifest(content []byte) ManifestResult {
	result := ManifestResult{Present: true}

	var doc map[string]any
	if err := toml.Unmarshal(content, &doc); err != nil {
		result.ParseError = err.Error()
		return result
	}
	result.ParseOK = true
	result.Fields = make(map[string]string)

	for _, key := range requiredManifestKeys {
		s, ok := stringValue(doc[key])
		if !ok || s == "" {
			result.MissingRequired = append(result.MissingRequired, key)
			continue
		}
		result.Fields[key] = s
	}

	for _, key := range recommendedManifestKeys {
		s, ok := stringValue(doc[key])
		if !ok || s == "" {
			result.MissingRecommended = append(result.MissingRecommended, key)
			continue
		}
		result.Fields[key] = s
	}

	// blender_version_max is optional; recorded when present so the version
	// compatibility rule can use it, never flagged when absent.
	if s, ok := stringValue(doc["blender_version_max"]); ok && s != "" {
		result.Fields["blender_version_max"] = s
	}

	sort.Strings(result.MissingRequired)
	sort.Strings(result.MissingRecommended)
	return result
}

// unreadableManifest builds the result for a manifest entry whose bytes
// could not be read from the archive. Downgraded to diagnostic information,
// same as a parse failure.
func unreadableManifest(err error) ManifestResult {
	return ManifestResult{
		Present:    true,
		ParseError: fmt.Sprintf("unable to read manifest: %v", err),
	}
}

// stringValue extracts a string from a decoded TOML value. Non-string values
// (tables, arrays, numbers) are treated as absent: required keys must hold
// string values.
func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// ParseVersion parses a dotted-integer version string ("4.2.0"). Returns
// false for empty strings or segments that are not plain integers.
func ParseVersion(s string) (Version, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	parts := strings.Split(s, ".")
	v := make(Version, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		v = append(v, n)
	}
	return v, true
}

// Compare returns -1, 0, or 1 ordering v against o. Shorter versions compare
// as if padded with zeros, so 4.2 == 4.2.0.
func (v Version) Compare(o Version) int {
	n := len(v)
	if len(o) > n {
		n = len(o)
	}
	for i := 0; i < n; i++ {
		var a, b int
		if i < len(v) {
			a = v[i]
		}
		if i < len(o) {
			b = o[i]
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}
