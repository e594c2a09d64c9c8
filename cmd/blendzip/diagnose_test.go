// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blendzip/internal/diagnose"
	"blendzip/internal/testutil"
	"blendzip/pkg/types"

	"github.com/spf13/cobra"
)

// newTestCommand returns a throwaway command wired to a capture buffer.
func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

// resetDiagnoseFlags restores the package-level flag state after a test.
func resetDiagnoseFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		formatFlag = ""
		blenderVersionFlag = ""
		errorDepthFlag = 0
		loadedCfg = nil
	})
}

func writeFixtureZip(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "addon.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	w := zip.NewWriter(f)
	for name, content := range files {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	testutil.MustClose(t, f)
	return path
}

const fixtureManifest = `id = "my_addon"
version = "1.0.0"
name = "My Addon"
blender_version_min = "4.2.0"
`

func TestRunDiagnoseCleanExtension(t *testing.T) {
	resetDiagnoseFlags(t)

	path := writeFixtureZip(t, map[string]string{"blender_manifest.toml": fixtureManifest})
	cmd, buf := newTestCommand()

	if err := runDiagnose(cmd, []string{path}); err != nil {
		t.Fatalf("runDiagnose() error: %v", err)
	}
	if !strings.Contains(buf.String(), "ALL_CLEAR") {
		t.Errorf("output missing ALL_CLEAR:\n%s", buf.String())
	}
}

func TestRunDiagnoseErrorFindingsExitCode(t *testing.T) {
	resetDiagnoseFlags(t)

	// No markers at all: one ERROR finding, exit code 1.
	path := writeFixtureZip(t, map[string]string{"README.md": "docs only\n"})
	cmd, buf := newTestCommand()

	err := runDiagnose(cmd, []string{path})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runDiagnose() error = %v, want ExitError", err)
	}
	if exitErr.Code != types.ExitFindings {
		t.Errorf("exit code = %v, want %v", exitErr.Code, types.ExitFindings)
	}
	// The report must still have been printed before the exit error.
	if !strings.Contains(buf.String(), "NO_MARKERS_FOUND") {
		t.Errorf("output missing NO_MARKERS_FOUND:\n%s", buf.String())
	}
}

func TestRunDiagnoseJSONFormatFlag(t *testing.T) {
	resetDiagnoseFlags(t)
	formatFlag = "json"

	path := writeFixtureZip(t, map[string]string{"blender_manifest.toml": fixtureManifest})
	cmd, buf := newTestCommand()

	if err := runDiagnose(cmd, []string{path}); err != nil {
		t.Fatalf("runDiagnose() error: %v", err)
	}

	var report map[string]any
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if report["archive_path"] != path {
		t.Errorf("archive_path = %v, want %q", report["archive_path"], path)
	}
	if report["kind"] != "Extension" {
		t.Errorf("kind = %v, want Extension", report["kind"])
	}
}

func TestRunDiagnoseInvalidFormatFlag(t *testing.T) {
	resetDiagnoseFlags(t)
	formatFlag = "xml"

	path := writeFixtureZip(t, map[string]string{"blender_manifest.toml": fixtureManifest})
	cmd, _ := newTestCommand()

	if err := runDiagnose(cmd, []string{path}); err == nil {
		t.Error("runDiagnose() succeeded with invalid --format")
	}
}

func TestRunDiagnoseBlenderVersionFlag(t *testing.T) {
	resetDiagnoseFlags(t)
	blenderVersionFlag = "4.1.0"

	path := writeFixtureZip(t, map[string]string{"blender_manifest.toml": fixtureManifest})
	cmd, buf := newTestCommand()

	// An incompatible host version is an ERROR finding, so the command
	// reports it and signals exit code 1.
	err := runDiagnose(cmd, []string{path})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runDiagnose() error = %v, want ExitError", err)
	}
	if !strings.Contains(buf.String(), "BLENDER_VERSION_TOO_OLD") {
		t.Errorf("output missing BLENDER_VERSION_TOO_OLD:\n%s", buf.String())
	}
}

func TestRunDiagnoseErrorDepthFlag(t *testing.T) {
	resetDiagnoseFlags(t)
	errorDepthFlag = 1

	path := writeFixtureZip(t, map[string]string{"nested/blender_manifest.toml": fixtureManifest})
	cmd, buf := newTestCommand()

	err := runDiagnose(cmd, []string{path})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runDiagnose() error = %v, want ExitError for depth cutoff 1", err)
	}
	if !strings.Contains(buf.String(), "MARKER_TOO_DEEP") {
		t.Errorf("output missing MARKER_TOO_DEEP:\n%s", buf.String())
	}
}

func TestRunDiagnoseUnreadableArchive(t *testing.T) {
	resetDiagnoseFlags(t)

	cmd, _ := newTestCommand()
	err := runDiagnose(cmd, []string{filepath.Join(t.TempDir(), "missing.zip")})
	if err == nil {
		t.Fatal("runDiagnose() succeeded for a missing archive")
	}
	if !errors.Is(err, diagnose.ErrArchiveUnreadable) {
		t.Errorf("error %v does not wrap ErrArchiveUnreadable", err)
	}
	// The actionable wrapper must survive for user-facing suggestions.
	if got := formatErrorForDisplay(err, false); !strings.Contains(got, "•") {
		t.Errorf("formatted error has no suggestions:\n%s", got)
	}
}
