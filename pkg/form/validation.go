package form

import (
	"strings"
	"unicode/utf8"
)

const (
	// MinReportNameLength is the minimum trimmed length of the report name.
	MinReportNameLength = 3
	// MinGoalWords is the minimum word count of the goal.
	MinGoalWords = 5
	// MinBackgroundWords is the minimum word count of the background.
	MinBackgroundWords = 10
	// MinMetadataValueLength is the free-text rule applied to metadata values.
	MinMetadataValueLength = 2
)

// WordCounts exposes the counters shown next to the word-limited fields.
type WordCounts struct {
	Goal       int `json:"goal"`
	Background int `json:"background"`
}

// Validity carries the derived predicates for one FormData value.
type Validity struct {
	ReportName   bool       `json:"reportName"`
	Goal         bool       `json:"goal"`
	AnalysisType bool       `json:"analysisType"`
	Background   bool       `json:"background"`
	TimeRange    bool       `json:"timeRange"`
	WordCounts   WordCounts `json:"wordCounts"`

	// TimeRangeOrdered is advisory and does not affect IsFormValid.
	TimeRangeOrdered bool `json:"timeRangeOrdered"`
	// Metadata maps entry ids to the advisory free-text rule.
	Metadata map[string]bool `json:"metadata,omitempty"`
}

// IsFormValid is the logical AND of the five required predicates.
func (v Validity) IsFormValid() bool {
	return v.ReportName && v.Goal && v.AnalysisType && v.Background && v.TimeRange
}

// Messages returns the advisory message for every failing required field.
func (v Validity) Messages() map[Field]string {
	out := make(map[Field]string)
	if !v.ReportName {
		out[FieldReportName] = "Report name must be at least 3 characters"
	}
	if !v.Goal {
		out[FieldGoal] = "Please provide more meaningful content (at least 5 words)"
	}
	if !v.AnalysisType {
		out[FieldAnalysisType] = "Select an analysis type"
	}
	if !v.Background {
		out[FieldBackground] = "Please provide more meaningful content (at least 10 words)"
	}
	if !v.TimeRange {
		out[FieldTimeRange] = "Select a time range"
	}
	return out
}

// Validate derives every predicate for data.
func Validate(data FormData) Validity {
	goalWords := WordCount(data.Goal)
	backgroundWords := WordCount(data.Background)

	v := Validity{
		ReportName:   ReportNameValid(data.ReportName),
		Goal:         minWords(data.Goal, goalWords, MinGoalWords),
		AnalysisType: AnalysisTypeValid(data.AnalysisType),
		Background:   minWords(data.Background, backgroundWords, MinBackgroundWords),
		TimeRange:    TimeRangeValid(data.TimeRange),
		WordCounts: WordCounts{
			Goal:       goalWords,
			Background: backgroundWords,
		},
		TimeRangeOrdered: data.TimeRange != nil && data.TimeRange.Ordered(),
	}

	if len(data.Metadata) > 0 {
		v.Metadata = make(map[string]bool, len(data.Metadata))
		for _, entry := range data.Metadata {
			v.Metadata[entry.ID] = MetadataValueValid(entry.Value)
		}
	}
	return v
}

// WordCount splits on whitespace and discards empty tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReportNameValid requires a trimmed length of at least MinReportNameLength.
func ReportNameValid(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinReportNameLength
}

// GoalValid requires non-blank text with at least MinGoalWords words.
func GoalValid(s string) bool {
	return minWords(s, WordCount(s), MinGoalWords)
}

// BackgroundValid requires non-blank text with at least MinBackgroundWords words.
func BackgroundValid(s string) bool {
	return minWords(s, WordCount(s), MinBackgroundWords)
}

// AnalysisTypeValid rejects the unset variant.
func AnalysisTypeValid(a AnalysisType) bool {
	return a != AnalysisUnset
}

// TimeRangeValid only checks presence; bound ordering is advisory.
func TimeRangeValid(r *TimeRange) bool {
	return r != nil
}

// MetadataValueValid applies the generic free-text minimum length.
func MetadataValueValid(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinMetadataValueLength
}

func minWords(s string, count, min int) bool {
	return strings.TrimSpace(s) != "" && count >= min
}
