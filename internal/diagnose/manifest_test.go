// SPDX-License-Identifier: MPL-2.0

package diagnose

import (
	"reflect"
	"testing"
)

func TestValidateManifestComplete(t *testing.T) {
	t.Parallel()

	result := ValidateManifest([]byte(`
id = "my_addon"
version = "1.0.0"
name = "My Addon"
blender_version_min = "4.2.0"
`))

	if !result.Present || !result.ParseOK {
		t.Fatalf("Present=%v ParseOK=%v, want both true", result.Present, result.ParseOK)
	}
	if len(result.MissingRequired) != 0 {
		t.Errorf("MissingRequired = %v, want empty", result.MissingRequired)
	}
	if len(result.MissingRecommended) != 0 {
		t.Errorf("MissingRecommended = %v, want empty", result.MissingRecommended)
	}
	if result.Fields["id"] != "my_addon" {
		t.Errorf("Fields[id] = %q, want %q", result.Fields["id"], "my_addon")
	}
}

func TestValidateManifestMissingAndWrongTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		content         string
		wantRequired    []string
		wantRecommended []string
	}{
		{
			name:            "missing id",
			content:         "version = \"1.0\"\nname = \"X\"\nblender_version_min = \"4.2.0\"\n",
			wantRequired:    []string{"id"},
			wantRecommended: nil,
		},
		{
			name:            "empty string counts as missing",
			content:         "id = \"\"\nversion = \"1.0\"\nname = \"X\"\nblender_version_min = \"4.2.0\"\n",
			wantRequired:    []string{"id"},
			wantRecommended: nil,
		},
		{
			name:            "wrong value type counts as missing",
			content:         "id = 42\nversion = \"1.0\"\nname = \"X\"\nblender_version_min = \"4.2.0\"\n",
			wantRequired:    []string{"id"},
			wantRecommended: nil,
		},
		{
			name:            "missing recommended only",
			content:         "id = \"x\"\nversion = \"1.0\"\nname = \"X\"\n",
			wantRequired:    nil,
			wantRecommended: []string{"blender_version_min"},
		},
		{
			name:            "everything missing, sorted",
			content:         "schema_version = \"1.0.0\"\n",
			wantRequired:    []string{"id", "name", "version"},
			wantRecommended: []string{"blender_version_min"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := ValidateManifest([]byte(tt.content))
			if !result.ParseOK {
				t.Fatalf("ParseOK = false, parse error: %s", result.ParseError)
			}
			if !reflect.DeepEqual(result.MissingRequired, tt.wantRequired) {
				t.Errorf("MissingRequired = %v, want %v", result.MissingRequired, tt.wantRequired)
			}
			if !reflect.DeepEqual(result.MissingRecommended, tt.wantRecommended) {
				t.Errorf("MissingRecommended = %v, want %v", result.MissingRecommended, tt.wantRecommended)
			}
		})
	}
}

func TestValidateManifestParseFailure(t *testing.T) {
	t.Parallel()

	result := ValidateManifest([]byte("id = \"unterminated\nthis is not toml"))
	if !result.Present {
		t.Error("Present = false, want true")
	}
	if result.ParseOK {
		t.Error("ParseOK = true for broken TOML")
	}
	if result.ParseError == "" {
		t.Error("ParseError is empty")
	}
}

func TestValidateManifestRecordsVersionMax(t *testing.T) {
	t.Parallel()

	result := ValidateManifest([]byte(`
id = "x"
version = "1.0"
name = "X"
blender_version_min = "4.2.0"
blender_version_max = "4.5.0"
`))
	if result.Fields["blender_version_max"] != "4.5.0" {
		t.Errorf("Fields[blender_version_max] = %q, want %q", result.Fields["blender_version_max"], "4.5.0")
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   Version
		wantOK bool
	}{
		{"4.2.0", Version{4, 2, 0}, true},
		{"4.2", Version{4, 2}, true},
		{" 4.2.0 ", Version{4, 2, 0}, true},
		{"", nil, false},
		{"4.2.x", nil, false},
		{"abc", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseVersion(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseVersion(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b Version
		want int
	}{
		{Version{4, 2, 0}, Version{4, 2, 0}, 0},
		{Version{4, 2}, Version{4, 2, 0}, 0},
		{Version{4, 1}, Version{4, 2}, -1},
		{Version{4, 3}, Version{4, 2, 9}, 1},
		{Version{5}, Version{4, 9, 9}, 1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
