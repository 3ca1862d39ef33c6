package dashboard

import (
	"fmt"

	"github.com/KaramelBytes/studentdash/internal/analysis"
	"github.com/KaramelBytes/studentdash/internal/charts"
	"github.com/KaramelBytes/studentdash/internal/predict"
	"github.com/KaramelBytes/studentdash/internal/student"
	"github.com/KaramelBytes/studentdash/internal/table"
)

// Insights is the static text of the insights panel.
var Insights = []string{
	"Comprehension and retention strongly correlate with assessment scores.",
	"Attention and engagement time moderately impact performance.",
	"Linear Regression predicts assessment scores moderately (check predicted score panel).",
	"Students can be clustered into 3 learning personas: High performers, Average learners, At-risk learners.",
}

// HeaderCell is a sortable table header.
type HeaderCell struct {
	Field string
	Label string
	// Indicator is "▲" or "▼" on the active sort column, empty otherwise.
	Indicator string
}

// InputField is one prediction form input.
type InputField struct {
	Name        string
	Placeholder string
	Value       string
}

// Page is everything the dashboard template renders.
type Page struct {
	Title       string
	Total       int
	Overview    analysis.Overview
	Charts      charts.Set
	ProfileName string
	Inputs      []InputField
	Predicted   string
	Search      string
	Headers     []HeaderCell
	Rows        [][]string
	Insights    []string
	// LoadFailed is set when the data could not be loaded; details stay in the log.
	LoadFailed  bool
}

// Build derives the full page from the current records and state. Nothing is
// cached between calls.
func (d *Dashboard) Build(st UIState) Page {
	recs := d.Records()
	p := Page{
		Title:       d.opt.Title,
		Total:       len(recs),
		Overview:    analysis.Summarize(recs),
		Charts:      charts.Snippets(recs, d.opt.Charts),
		ProfileName: charts.ProfileName(recs),
		Search:      st.Table.Search,
		Insights:    Insights,
	}
	p.LoadFailed = d.Err() != nil
	for _, f := range predict.Fields {
		p.Inputs = append(p.Inputs, InputField{Name: f, Placeholder: placeholder(f), Value: st.Inputs.Get(f)})
	}
	if st.Predicted != nil {
		p.Predicted = fmt.Sprintf("%.2f", *st.Predicted)
	}
	for _, c := range student.Columns {
		h := HeaderCell{Field: c.Field, Label: c.Label}
		if st.Table.SortKey == c.Field {
			h.Indicator = "▲"
			if st.Table.SortOrder == table.Descending {
				h.Indicator = "▼"
			}
		}
		p.Headers = append(p.Headers, h)
	}
	for _, r := range table.View(recs, st.Table) {
		row := make([]string, 0, len(student.Columns))
		for _, c := range student.Columns {
			row = append(row, r.Get(c.Field))
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}

func placeholder(field string) string {
	if field == student.FieldEngagementTime {
		return "engagement time"
	}
	return field
}
