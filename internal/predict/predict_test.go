package predict

import (
	"testing"

	"github.com/KaramelBytes/studentdash/internal/student"
)

func TestPredict(t *testing.T) {
	if got := Predict(80, 70, 60, 90, 40); got != 68 {
		t.Fatalf("Predict = %v, want 68", got)
	}
	if got := Predict(0, 0, 0, 0, 0); got != 0 {
		t.Fatalf("Predict zeros = %v", got)
	}
	// no range validation
	if got := Predict(-10, 0, 0, 0, 1000); got != 198 {
		t.Fatalf("Predict out of range = %v, want 198", got)
	}
	if got := Predict(1, 1, 1, 1, 1.333); got != 1.07 {
		t.Fatalf("Predict rounding = %v, want 1.07", got)
	}
}

func TestInputsPredict(t *testing.T) {
	in := Inputs{Comprehension: "80", Attention: "70", Focus: "60", Retention: "90", EngagementTime: "40"}
	if got := in.Predict(); got != 68 {
		t.Fatalf("Inputs.Predict = %v, want 68", got)
	}
	if got := (Inputs{}).Predict(); got != 0 {
		t.Fatalf("blank inputs = %v, want 0", got)
	}
	// every field defaults to zero, not only engagement time
	in.Comprehension = "abc"
	if got := in.Predict(); got != 52 {
		t.Fatalf("invalid comprehension = %v, want 52", got)
	}
}

func TestInputsGetSet(t *testing.T) {
	var in Inputs
	for i, f := range Fields {
		if !in.Set(f, string(rune('1'+i))) {
			t.Fatalf("Set(%s) rejected", f)
		}
	}
	if in.Get(student.FieldEngagementTime) != "5" || in.Get(student.FieldComprehension) != "1" {
		t.Fatalf("unexpected inputs: %+v", in)
	}
	if in.Set(student.FieldName, "x") {
		t.Fatalf("name is not a prediction input")
	}
	if in.Get(student.FieldName) != "" {
		t.Fatalf("unknown field should read empty")
	}
}
