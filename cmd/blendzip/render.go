// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"blendzip/internal/config"
	"blendzip/internal/diagnose"

	"gopkg.in/yaml.v2"
)

// renderReport renders a diagnosis report in the requested output format.
func renderReport(report *diagnose.Report, format config.OutputFormat) (string, error) {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		return string(data), nil
	case config.FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return "", fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	case config.FormatText:
		return renderText(report), nil
	default:
		return "", &config.InvalidOutputFormatError{Value: format}
	}
}

// renderText renders the report as styled terminal text.
func renderText(report *diagnose.Report) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("Diagnosis") + " " + PathStyle.Render(report.ArchivePath) + "\n\n")

	sb.WriteString(fmt.Sprintf("%s: %s\n", SubtitleStyle.Render("Kind"), report.Kind))
	if report.Route != diagnose.RouteNone {
		sb.WriteString(fmt.Sprintf("%s: %s\n", SubtitleStyle.Render("Install route"), report.Route))
	}

	if report.Manifest != nil {
		sb.WriteString(fmt.Sprintf("%s: %s\n", SubtitleStyle.Render("Manifest"), manifestSummary(report.Manifest)))
	}

	sb.WriteString("\n")
	for _, f := range report.Findings {
		tag := severityStyle(f.Severity).Render(fmt.Sprintf("%-7s", f.Severity))
		sb.WriteString(fmt.Sprintf("%s %s  %s", tag, f.Code, f.Message))
		if f.RelatedPath != "" {
			sb.WriteString(" " + SubtitleStyle.Render("("+f.RelatedPath+")"))
		}
		sb.WriteString("\n")
	}

	hasHelp := false
	for _, f := range report.Findings {
		if f.Severity == diagnose.SeverityError || f.Severity == diagnose.SeverityWarning {
			hasHelp = true
			break
		}
	}
	if hasHelp {
		sb.WriteString("\n" + VerboseStyle.Render("Run 'blendzip explain <CODE>' for remediation guidance.") + "\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// manifestSummary produces a one-line summary of the manifest validation outcome.
func manifestSummary(m *diagnose.ManifestResult) string {
	switch {
	case !m.Present:
		return "not found"
	case !m.ParseOK:
		return "unparseable"
	case len(m.MissingRequired) > 0:
		return fmt.Sprintf("missing required field(s): %s", strings.Join(m.MissingRequired, ", "))
	default:
		name := m.Fields["name"]
		version := m.Fields["version"]
		if name != "" && version != "" {
			return fmt.Sprintf("%s %s", name, version)
		}
		return "valid"
	}
}
