package cmd

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/studentdash/internal/student"
	"github.com/KaramelBytes/studentdash/internal/table"
)

var (
	tblSearch     string
	tblSort       string
	tblOrder      string
	tblAllowEmpty bool
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the student table, optionally filtered and sorted",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := table.ParseKey(columnField(tblSort))
		if err != nil {
			return fmt.Errorf("invalid --sort: %w", err)
		}
		order, err := table.ParseOrder(tblOrder)
		if err != nil {
			return err
		}
		recs, err := loadStudents(cmd.Context(), tblAllowEmpty)
		if err != nil {
			return err
		}
		rows := table.View(recs, table.State{Search: tblSearch, SortKey: key, SortOrder: order})

		tw := tablewriter.NewWriter(cmd.OutOrStdout())
		header := make([]string, 0, len(student.Columns))
		for _, c := range student.Columns {
			label := c.Label
			if c.Field == key {
				if order == table.Descending {
					label += " ▼"
				} else {
					label += " ▲"
				}
			}
			header = append(header, label)
		}
		tw.SetHeader(header)
		tw.SetAutoFormatHeaders(false)
		for _, r := range rows {
			line := make([]string, 0, len(student.Columns))
			for _, c := range student.Columns {
				line = append(line, r.Get(c.Field))
			}
			tw.Append(line)
		}
		tw.Render()
		printf(cmd, "%d of %d students\n", len(rows), len(recs))
		return nil
	},
}

// columnField resolves a --sort value given as a column label ("Score") to
// its field name; anything else is returned as is.
func columnField(s string) string {
	for _, c := range student.Columns {
		if strings.EqualFold(s, c.Label) {
			return c.Field
		}
	}
	return s
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().StringVarP(&tblSearch, "search", "s", "", "case-insensitive filter on name or class")
	tableCmd.Flags().StringVar(&tblSort, "sort", "", "column to sort by (field name or label)")
	tableCmd.Flags().StringVar(&tblOrder, "order", "asc", "sort order: asc|desc")
	tableCmd.Flags().BoolVar(&tblAllowEmpty, "allow-empty", false, "print an empty table instead of failing when the data cannot be loaded")
}
