package form

import (
	"strings"
	"time"
)

// AnalysisType enumerates the analysis variants a report can request. The
// zero value is the unset variant.
type AnalysisType string

const (
	AnalysisUnset       AnalysisType = ""
	AnalysisSituational AnalysisType = "situational"
	AnalysisImpact      AnalysisType = "impact"
)

// AnalysisTypes lists the selectable variants in display order.
func AnalysisTypes() []AnalysisType {
	return []AnalysisType{AnalysisSituational, AnalysisImpact}
}

// ParseAnalysisType maps raw input onto a known variant. Unknown values map to
// AnalysisUnset so they fail validation rather than leak into the record.
func ParseAnalysisType(raw string) AnalysisType {
	switch AnalysisType(strings.ToLower(strings.TrimSpace(raw))) {
	case AnalysisSituational:
		return AnalysisSituational
	case AnalysisImpact:
		return AnalysisImpact
	default:
		return AnalysisUnset
	}
}

// Label returns the human readable name of the variant.
func (a AnalysisType) Label() string {
	switch a {
	case AnalysisSituational:
		return "Situational Analysis"
	case AnalysisImpact:
		return "Impact Analysis"
	default:
		return "Not selected"
	}
}

// UnmarshalText parses through ParseAnalysisType so decoded records never
// carry an unknown variant.
func (a *AnalysisType) UnmarshalText(text []byte) error {
	*a = ParseAnalysisType(string(text))
	return nil
}

// Field names the free-text and enum fields addressable through SetField.
type Field string

const (
	FieldReportName   Field = "reportName"
	FieldGoal         Field = "goal"
	FieldAnalysisType Field = "analysisType"
	FieldBackground   Field = "background"
	// FieldTimeRange and FieldMetadata only appear in validation output.
	FieldTimeRange Field = "timeRange"
	FieldMetadata  Field = "metadata"
)

// TimeRange is the reporting window. Bounds are not reordered or checked when
// set; see Validity.TimeRangeOrdered.
type TimeRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Ordered reports whether Start is not after End.
func (r TimeRange) Ordered() bool {
	return !r.Start.After(r.End)
}

// MetadataEntry is one user-added classification tag. Only ID is unique;
// several entries may share a category/key pair.
type MetadataEntry struct {
	ID       string `json:"id" yaml:"id"`
	Category string `json:"category" yaml:"category"`
	Key      string `json:"key" yaml:"key"`
	Value    string `json:"value" yaml:"value"`
}

// FormData is the full task-creation record for one form session.
type FormData struct {
	ReportName   string          `json:"reportName" yaml:"reportName"`
	Goal         string          `json:"goal" yaml:"goal"`
	AnalysisType AnalysisType    `json:"analysisType" yaml:"analysisType"`
	Background   string          `json:"background" yaml:"background"`
	TimeRange    *TimeRange      `json:"timeRange" yaml:"timeRange"`
	Metadata     []MetadataEntry `json:"metadata" yaml:"metadata"`
}

// Empty returns the initial record used on mount and after a submission.
func Empty() FormData {
	return FormData{Metadata: []MetadataEntry{}}
}

// Clone returns a deep copy so callers can hand state out without exposing
// the backing slice or time range pointer.
func (d FormData) Clone() FormData {
	out := d
	if d.TimeRange != nil {
		tr := *d.TimeRange
		out.TimeRange = &tr
	}
	out.Metadata = cloneMetadata(d.Metadata)
	return out
}

// MetadataByID returns the entry with the given id.
func (d FormData) MetadataByID(id string) (MetadataEntry, bool) {
	for _, entry := range d.Metadata {
		if entry.ID == id {
			return entry, true
		}
	}
	return MetadataEntry{}, false
}

func cloneMetadata(src []MetadataEntry) []MetadataEntry {
	out := make([]MetadataEntry, len(src))
	copy(out, src)
	return out
}
