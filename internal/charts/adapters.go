package charts

import "github.com/KaramelBytes/studentdash/internal/student"

// BarSeries returns the records unchanged; the bar chart reads each numeric
// field per record by name.
func BarSeries(records []student.Record) []student.Record { return records }

// ScatterSeries returns the records unchanged; the scatter chart plots
// attention against assessment score per record.
func ScatterSeries(records []student.Record) []student.Record { return records }

// Point is one scatter sample.
type Point struct {
	Name      string  `json:"name"`
	Attention float64 `json:"attention"`
	Score     float64 `json:"assessment_score"`
}

// ScatterPoints extracts (attention, assessment_score) pairs in record order.
func ScatterPoints(records []student.Record) []Point {
	out := make([]Point, 0, len(records))
	for _, r := range ScatterSeries(records) {
		out = append(out, Point{
			Name:      r.Name(),
			Attention: r.Number(student.FieldAttention),
			Score:     r.Number(student.FieldAssessmentScore),
		})
	}
	return out
}

// Axis is one radar dimension.
type Axis struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

var radarAxes = []student.Column{
	{Field: student.FieldComprehension, Label: "Comprehension"},
	{Field: student.FieldAttention, Label: "Attention"},
	{Field: student.FieldFocus, Label: "Focus"},
	{Field: student.FieldRetention, Label: "Retention"},
	{Field: student.FieldAssessmentScore, Label: "Score"},
}

// RadarProfile returns the five-axis profile of the first record. With no
// records every axis is 0.
func RadarProfile(records []student.Record) []Axis {
	var first student.Record
	if len(records) > 0 {
		first = records[0]
	}
	return Profile(first)
}

// Profile returns the five-axis profile of r; a nil record is all zeros.
func Profile(r student.Record) []Axis {
	out := make([]Axis, 0, len(radarAxes))
	for _, a := range radarAxes {
		out = append(out, Axis{Label: a.Label, Value: r.Number(a.Field)})
	}
	return out
}

// ProfileName names the record shown in the radar chart, "Student" when the
// set is empty or the name is blank.
func ProfileName(records []student.Record) string {
	if len(records) == 0 || records[0].Name() == "" {
		return "Student"
	}
	return records[0].Name()
}
