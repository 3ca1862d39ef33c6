package analysis

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/KaramelBytes/studentdash/internal/student"
)

// Average returns the mean of field across records, rounded to two decimals.
// Missing or non-numeric values count as 0 and stay in the denominator. An
// empty record set yields 0.
func Average(field string, records []student.Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Number(field)
	}
	return Round2(sum / float64(len(records)))
}

// Round2 rounds the exact value of x to two decimal places, ties away from
// zero. Unlike math.Round(x*100)/100 it does not round the product, so 0.015
// (stored just below) becomes 0.01.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	// x*100 is exact at 128 bits of precision
	f := new(big.Float).SetPrec(128).SetFloat64(x)
	f.Mul(f, big.NewFloat(100))
	n, _ := f.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(f, new(big.Float).SetInt(n))
	half := big.NewFloat(0.5)
	switch {
	case frac.Cmp(half) >= 0:
		n.Add(n, big.NewInt(1))
	case frac.Cmp(half.Neg(half)) <= 0:
		n.Sub(n, big.NewInt(1))
	}
	v, _ := new(big.Float).SetInt(n).Float64()
	return v / 100
}

// Stat is one averaged field.
type Stat struct {
	Field string  `json:"field"`
	Label string  `json:"label"`
	Mean  float64 `json:"mean"`
}

// Overview holds the record count and the averaged numeric fields.
type Overview struct {
	Name  string `json:"name,omitempty"`
	Total int    `json:"total"`
	Stats []Stat `json:"stats"`
	// Profile is the radar snapshot of one record, if the caller attached one.
	Profile     []ProfilePoint `json:"profile,omitempty"`
	ProfileName string         `json:"profile_name,omitempty"`
}

// ProfilePoint mirrors a radar axis for report rendering.
type ProfilePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Summarize computes the overview of records. Each average is computed
// independently of the others.
func Summarize(records []student.Record) Overview {
	ov := Overview{Total: len(records)}
	for _, f := range student.NumericFields {
		ov.Stats = append(ov.Stats, Stat{Field: f.Field, Label: f.Label, Mean: Average(f.Field, records)})
	}
	return ov
}

// Mean returns the average for field, or 0 if it was not summarized.
func (o Overview) Mean(field string) float64 {
	for _, s := range o.Stats {
		if s.Field == field {
			return s.Mean
		}
	}
	return 0
}

// Markdown renders a compact report for terminals and standalone files.
func (o Overview) Markdown() string {
	var b strings.Builder
	b.WriteString("[DASHBOARD SUMMARY]\n")
	if o.Name != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", o.Name))
	}
	b.WriteString(fmt.Sprintf("Total Students: %d\n\n", o.Total))

	b.WriteString("[AVERAGES]\n")
	for _, s := range o.Stats {
		b.WriteString(fmt.Sprintf("- %s: %.2f\n", s.Label, s.Mean))
	}
	if len(o.Profile) > 0 {
		name := o.ProfileName
		if name == "" {
			name = "Student"
		}
		b.WriteString(fmt.Sprintf("\n[PROFILE: %s]\n", safeVal(name)))
		for _, p := range o.Profile {
			b.WriteString(fmt.Sprintf("- %s: %.4g\n", p.Label, p.Value))
		}
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
