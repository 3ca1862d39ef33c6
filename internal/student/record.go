package student

import (
	"math"
	"strconv"
	"strings"
)

// Field names of the student metrics CSV.
const (
	FieldID              = "student_id"
	FieldName            = "name"
	FieldClass           = "class"
	FieldComprehension   = "comprehension"
	FieldAttention       = "attention"
	FieldFocus           = "focus"
	FieldRetention       = "retention"
	FieldAssessmentScore = "assessment_score"
	FieldEngagementTime  = "engagement_time"
)

// Record is one parsed CSV row keyed by header name. Values are kept as text
// and interpreted as numbers on demand.
type Record map[string]string

// Get returns the raw value of field, or "" when the field is absent.
func (r Record) Get(field string) string {
	if r == nil {
		return ""
	}
	return r[field]
}

// Number returns the numeric interpretation of field; see ParseNumber.
func (r Record) Number(field string) float64 {
	return ParseNumber(r.Get(field))
}

// Name is a shorthand for Get(FieldName).
func (r Record) Name() string { return r.Get(FieldName) }

// ParseNumber parses s as a float. Empty, unparsable, NaN and infinite values
// all read as 0.
func ParseNumber(s string) float64 {
	v, ok := LookupNumber(s)
	if !ok {
		return 0
	}
	return v
}

// LookupNumber reports whether s holds a finite number.
func LookupNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Column describes a table column: the CSV field and its header label.
type Column struct {
	Field string
	Label string
}

// Columns lists the table columns in display order.
var Columns = []Column{
	{FieldID, "ID"},
	{FieldName, "Name"},
	{FieldClass, "Class"},
	{FieldComprehension, "Comprehension"},
	{FieldAttention, "Attention"},
	{FieldFocus, "Focus"},
	{FieldRetention, "Retention"},
	{FieldAssessmentScore, "Score"},
	{FieldEngagementTime, "Engagement"},
}

// NumericFields lists the aggregated fields with their overview labels.
var NumericFields = []Column{
	{FieldComprehension, "Avg Comprehension"},
	{FieldAttention, "Avg Attention"},
	{FieldFocus, "Avg Focus"},
	{FieldRetention, "Avg Retention"},
	{FieldAssessmentScore, "Avg Assessment Score"},
	{FieldEngagementTime, "Avg Engagement Time"},
}

// IsColumn reports whether field is one of the table columns.
func IsColumn(field string) bool {
	for _, c := range Columns {
		if c.Field == field {
			return true
		}
	}
	return false
}
