// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"blendzip/internal/issue"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain [code]",
	Short: "Explain a finding code and how to fix it",
	Long: `Explain a finding code and how to fix it.

Without an argument, lists all finding codes that have a help page.
With a code (as printed in a diagnosis report), renders the full
remediation guidance for that code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return listHelpPages(cmd)
	}

	code := issue.Code(strings.ToUpper(args[0]))
	page := issue.Get(code)
	if page == nil {
		return fmt.Errorf("no help page for code %q (run 'blendzip explain' to list known codes)", args[0])
	}

	rendered, err := page.Render(glamourStyle())
	if err != nil {
		// Fall back to raw Markdown when the terminal renderer fails.
		fmt.Fprintln(cmd.OutOrStdout(), string(page.MarkdownMsg()))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

func listHelpPages(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("Finding codes with help pages"))
	fmt.Fprintln(cmd.OutOrStdout())
	for _, page := range issue.Values() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", PathStyle.Render(string(page.Code())))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("Run 'blendzip explain <CODE>' for details."))
	return nil
}

// glamourStyle maps the configured color scheme to a glamour style name.
func glamourStyle() string {
	switch activeConfig().UI.ColorScheme {
	case "dark":
		return "dark"
	case "light":
		return "light"
	default:
		return "auto"
	}
}
