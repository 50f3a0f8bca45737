package form_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-taskform/pkg/form"
)

func TestReportNameValid(t *testing.T) {
	cases := map[string]bool{
		"":            false,
		"ab":          false,
		"  ab  ":      false,
		"abc":         true,
		" abc ":       true,
		"Test Report": true,
		"äöü":         true,
	}
	for input, want := range cases {
		if got := form.ReportNameValid(input); got != want {
			t.Errorf("ReportNameValid(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestWordCount(t *testing.T) {
	cases := map[string]int{
		"":                       0,
		"   ":                    0,
		"one":                    1,
		"one two three":          3,
		"  one \t two\n three  ": 3,
	}
	for input, want := range cases {
		if got := form.WordCount(input); got != want {
			t.Errorf("WordCount(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestGoalValid_Boundary(t *testing.T) {
	if form.GoalValid("one two three four") {
		t.Fatalf("4 words should be invalid")
	}
	if !form.GoalValid("one two three four five") {
		t.Fatalf("5 words should be valid")
	}
	if form.GoalValid("   ") {
		t.Fatalf("blank goal should be invalid")
	}
}

func TestBackgroundValid_Boundary(t *testing.T) {
	nine := strings.Repeat("word ", 9)
	ten := strings.Repeat("word ", 10)
	if form.BackgroundValid(nine) {
		t.Fatalf("9 words should be invalid")
	}
	if !form.BackgroundValid(ten) {
		t.Fatalf("10 words should be valid")
	}
}

func TestValidate_WordCounterDisplay(t *testing.T) {
	data := form.Empty()
	data.Goal = "one two three"

	v := form.Validate(data)
	if v.WordCounts.Goal != 3 {
		t.Fatalf("expected goal word count 3, got %d", v.WordCounts.Goal)
	}
	if v.Goal {
		t.Fatalf("goal with 3 words should be invalid")
	}
	if _, ok := v.Messages()[form.FieldGoal]; !ok {
		t.Fatalf("expected advisory message for goal")
	}
}

func validData() form.FormData {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return form.FormData{
		ReportName:   "Test Report",
		Goal:         "one two three four five",
		AnalysisType: form.AnalysisImpact,
		Background:   "one two three four five six seven eight nine ten",
		TimeRange:    &form.TimeRange{Start: start, End: start.Add(time.Hour)},
	}
}

func TestValidate_FlippingAnyPredicateInvalidatesForm(t *testing.T) {
	if !form.Validate(validData()).IsFormValid() {
		t.Fatalf("baseline should be valid")
	}

	mutations := map[string]func(*form.FormData){
		"reportName":   func(d *form.FormData) { d.ReportName = "ab" },
		"goal":         func(d *form.FormData) { d.Goal = "one two three four" },
		"analysisType": func(d *form.FormData) { d.AnalysisType = form.AnalysisUnset },
		"background":   func(d *form.FormData) { d.Background = "too short" },
		"timeRange":    func(d *form.FormData) { d.TimeRange = nil },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			data := validData()
			mutate(&data)
			v := form.Validate(data)
			if v.IsFormValid() {
				t.Fatalf("expected form invalid after flipping %s", name)
			}
			if got := len(v.Messages()); got != 1 {
				t.Fatalf("expected exactly one message, got %d: %v", got, v.Messages())
			}
		})
	}
}

func TestValidate_InvertedRangeStaysValid(t *testing.T) {
	data := validData()
	data.TimeRange.Start, data.TimeRange.End = data.TimeRange.End, data.TimeRange.Start

	v := form.Validate(data)
	if !v.IsFormValid() {
		t.Fatalf("time range ordering must not affect validity")
	}
	if v.TimeRangeOrdered {
		t.Fatalf("expected advisory ordering flag to be false")
	}
}

func TestValidate_MetadataAdvisory(t *testing.T) {
	data := validData()
	data.Metadata = []form.MetadataEntry{
		{ID: "a", Category: "industry", Key: "sector", Value: "Energy"},
		{ID: "b", Category: "industry", Key: "sector", Value: " x "},
	}

	v := form.Validate(data)
	if !v.Metadata["a"] || v.Metadata["b"] {
		t.Fatalf("unexpected metadata validity: %v", v.Metadata)
	}
	if !v.IsFormValid() {
		t.Fatalf("metadata validity must not affect form validity")
	}
}

func TestTemplate_IsValid(t *testing.T) {
	tmpl := form.Template()
	if form.WordCount(tmpl.Goal) < form.MinGoalWords {
		t.Fatalf("template goal too short")
	}
	if form.WordCount(tmpl.Background) < form.MinBackgroundWords {
		t.Fatalf("template background too short")
	}

	loaded := form.Reduce(form.Empty(), form.SetAll{Data: tmpl})
	if !form.Validate(loaded).IsFormValid() {
		t.Fatalf("template should be valid: %v", form.Validate(loaded).Messages())
	}
}

func TestEmpty_IsInvalid(t *testing.T) {
	v := form.Validate(form.Empty())
	if v.IsFormValid() {
		t.Fatalf("empty form should be invalid")
	}
	if got := len(v.Messages()); got != 5 {
		t.Fatalf("expected 5 messages, got %d", got)
	}
}

func TestAnalysisType_DecodingParses(t *testing.T) {
	cases := map[string]form.AnalysisType{
		`{"analysisType":"Impact"}`:      form.AnalysisImpact,
		`{"analysisType":"situational"}`: form.AnalysisSituational,
		`{"analysisType":"bogus"}`:       form.AnalysisUnset,
	}
	for raw, want := range cases {
		var data form.FormData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if data.AnalysisType != want {
			t.Errorf("%s: got %q, want %q", raw, data.AnalysisType, want)
		}
	}
}
