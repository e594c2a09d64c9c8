// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"blendzip/internal/config"
	"blendzip/internal/diagnose"
	"blendzip/internal/issue"
	"blendzip/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// formatFlag overrides the configured output format.
	formatFlag string
	// blenderVersionFlag overrides the configured host Blender version.
	blenderVersionFlag string
	// errorDepthFlag overrides the configured error depth cutoff.
	errorDepthFlag int

	diagnoseCmd = &cobra.Command{
		Use:   "diagnose <archive.zip>",
		Short: "Diagnose a Blender package zip archive",
		Long: `Diagnose a Blender package zip archive.

The archive is inspected without being extracted. The report classifies the
package (extension, legacy add-on, mixed, malformed, or unknown), names the
recommended install route, and lists findings ordered by severity.

The command exits 0 when the package looks installable (warnings included)
and 1 when the report contains at least one ERROR finding.`,
		Args: cobra.ExactArgs(1),
		RunE: runDiagnose,
	}
)

func init() {
	diagnoseCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "output format: text, json, yaml (default from config)")
	diagnoseCmd.Flags().StringVar(&blenderVersionFlag, "blender-version", "", "host Blender version to check manifest compatibility against (e.g. 4.2.0)")
	diagnoseCmd.Flags().IntVar(&errorDepthFlag, "error-depth", 0, "nesting depth at which a package marker becomes an error (default from config)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()

	format := cfg.Output.Format
	if formatFlag != "" {
		format = config.OutputFormat(formatFlag)
		if valid, errs := format.IsValid(); !valid {
			return errors.Join(errs...)
		}
	}

	depth := cfg.Diagnosis.ErrorDepth.Int()
	if errorDepthFlag > 0 {
		depth = errorDepthFlag
	}

	hostVersion := cfg.Diagnosis.BlenderVersion.String()
	if blenderVersionFlag != "" {
		hostVersion = blenderVersionFlag
	}

	opts := []diagnose.Option{diagnose.WithErrorDepth(depth)}
	if hostVersion != "" {
		opts = append(opts, diagnose.WithHostVersion(hostVersion))
	}

	log.Debug("diagnosing archive", "path", args[0], "error_depth", depth, "host_version", hostVersion)

	report, err := diagnose.Diagnose(args[0], opts...)
	if err != nil {
		if errors.Is(err, diagnose.ErrArchiveUnreadable) {
			return issue.NewErrorContext().
				WithOperation("diagnose archive").
				WithResource(args[0]).
				WithSuggestion("Check that the path exists and is readable").
				WithSuggestion("Check that the file is a zip archive (not rar, 7z, or a bare folder)").
				WithSuggestion("Re-download the archive if it may be truncated").
				Wrap(err).
				BuildError()
		}
		return err
	}

	out, err := renderReport(report, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if report.HasErrors() {
		// The report itself was already printed; the exit code is the signal.
		return &ExitError{Code: types.ExitFindings}
	}
	return nil
}
