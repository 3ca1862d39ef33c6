package predict

import (
	"github.com/KaramelBytes/studentdash/internal/analysis"
	"github.com/KaramelBytes/studentdash/internal/student"
)

// Weight is the fixed coefficient applied to every input.
const Weight = 0.2

// Fields lists the prediction inputs in form order.
var Fields = []string{
	student.FieldComprehension,
	student.FieldAttention,
	student.FieldFocus,
	student.FieldRetention,
	student.FieldEngagementTime,
}

// Predict returns the weighted sum of the five inputs rounded to two
// decimals. Inputs are not range checked.
func Predict(comprehension, attention, focus, retention, engagementTime float64) float64 {
	return analysis.Round2(Weight*comprehension +
		Weight*attention +
		Weight*focus +
		Weight*retention +
		Weight*engagementTime)
}

// Inputs holds the raw text of the prediction form.
type Inputs struct {
	Comprehension  string `json:"comprehension"`
	Attention      string `json:"attention"`
	Focus          string `json:"focus"`
	Retention      string `json:"retention"`
	EngagementTime string `json:"engagement_time"`
}

// Predict parses every input with student.ParseNumber, so blank or invalid
// text counts as 0, and applies Predict.
func (in Inputs) Predict() float64 {
	return Predict(
		student.ParseNumber(in.Comprehension),
		student.ParseNumber(in.Attention),
		student.ParseNumber(in.Focus),
		student.ParseNumber(in.Retention),
		student.ParseNumber(in.EngagementTime),
	)
}

// Get returns the input for field, "" for unknown fields.
func (in Inputs) Get(field string) string {
	switch field {
	case student.FieldComprehension:
		return in.Comprehension
	case student.FieldAttention:
		return in.Attention
	case student.FieldFocus:
		return in.Focus
	case student.FieldRetention:
		return in.Retention
	case student.FieldEngagementTime:
		return in.EngagementTime
	}
	return ""
}

// Set stores value for field and reports whether field is a prediction input.
func (in *Inputs) Set(field, value string) bool {
	switch field {
	case student.FieldComprehension:
		in.Comprehension = value
	case student.FieldAttention:
		in.Attention = value
	case student.FieldFocus:
		in.Focus = value
	case student.FieldRetention:
		in.Retention = value
	case student.FieldEngagementTime:
		in.EngagementTime = value
	default:
		return false
	}
	return true
}
