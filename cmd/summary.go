package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/studentdash/internal/analysis"
	"github.com/KaramelBytes/studentdash/internal/charts"
	"github.com/KaramelBytes/studentdash/internal/utils"
)

var (
	sumOutputPath string
	sumJSON       bool
	sumMarkdown   bool
	sumAllowEmpty bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the student data: totals, averages and the first student's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := loadStudents(cmd.Context(), sumAllowEmpty)
		if err != nil {
			return err
		}
		ov := analysis.Summarize(recs)
		ov.Name = filepath.Base(cfg.DataSource)
		ov.ProfileName = charts.ProfileName(recs)
		for _, a := range charts.RadarProfile(recs) {
			ov.Profile = append(ov.Profile, analysis.ProfilePoint{Label: a.Label, Value: a.Value})
		}

		var out []byte
		switch {
		case sumJSON:
			b, err := utils.PrettyJSON(ov)
			if err != nil {
				return err
			}
			out = append(b, '\n')
		case sumMarkdown || sumOutputPath != "":
			out = []byte(ov.Markdown())
		}

		// Decide where to write: --output path, or stdout
		if sumOutputPath != "" {
			if err := utils.SafeWriteFile(sumOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			successf(cmd, "Wrote summary to %s", sumOutputPath)
			return nil
		}
		if out != nil {
			_, err := cmd.OutOrStdout().Write(out)
			return err
		}
		renderOverview(cmd, ov)
		return nil
	},
}

func renderOverview(cmd *cobra.Command, ov analysis.Overview) {
	printf(cmd, "Total Students: %d\n", ov.Total)
	tw := tablewriter.NewWriter(cmd.OutOrStdout())
	tw.SetHeader([]string{"Metric", "Average"})
	tw.SetAutoFormatHeaders(false)
	tw.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, s := range ov.Stats {
		tw.Append([]string{s.Label, fmt.Sprintf("%.2f", s.Mean)})
	}
	tw.Render()

	printf(cmd, "%s Profile\n", ov.ProfileName)
	pw := tablewriter.NewWriter(cmd.OutOrStdout())
	pw.SetHeader([]string{"Axis", "Value"})
	pw.SetAutoFormatHeaders(false)
	for _, p := range ov.Profile {
		pw.Append([]string{p.Label, fmt.Sprintf("%g", p.Value)})
	}
	pw.Render()
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "optional path to write the summary (Markdown, or JSON with --json)")
	summaryCmd.Flags().BoolVar(&sumJSON, "json", false, "emit JSON instead of a table")
	summaryCmd.Flags().BoolVar(&sumMarkdown, "markdown", false, "emit Markdown instead of a table")
	summaryCmd.Flags().BoolVar(&sumAllowEmpty, "allow-empty", false, "summarize an empty set instead of failing when the data cannot be loaded")
}
