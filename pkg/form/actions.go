package form

// Action is a discrete update applied to FormData by Reduce. The set of
// actions is closed; each variant is a plain value type.
type Action interface {
	// Kind reports the action name, mostly for logging.
	Kind() string
	isAction()
}

// SetField replaces one of the free-text fields or the analysis type.
type SetField struct {
	Field Field
	Value string
}

// SetAnalysisType replaces the analysis type.
type SetAnalysisType struct {
	Type AnalysisType
}

// SetTimeRange replaces the time range wholesale. A nil Range clears it.
type SetTimeRange struct {
	Range *TimeRange
}

// AddMetadata appends a fully formed entry unless its id is already present.
type AddMetadata struct {
	Entry MetadataEntry
}

// UpdateMetadata replaces the value of the entry matching ID.
type UpdateMetadata struct {
	ID    string
	Value string
}

// RemoveMetadata drops the entry matching ID.
type RemoveMetadata struct {
	ID string
}

// SetAll replaces the entire record. Used for template loading and the reset
// after submission.
type SetAll struct {
	Data FormData
}

func (SetField) Kind() string        { return "set_field" }
func (SetAnalysisType) Kind() string { return "set_analysis_type" }
func (SetTimeRange) Kind() string    { return "set_time_range" }
func (AddMetadata) Kind() string     { return "add_metadata" }
func (UpdateMetadata) Kind() string  { return "update_metadata" }
func (RemoveMetadata) Kind() string  { return "remove_metadata" }
func (SetAll) Kind() string          { return "set_all" }

func (SetField) isAction()        {}
func (SetAnalysisType) isAction() {}
func (SetTimeRange) isAction()    {}
func (AddMetadata) isAction()     {}
func (UpdateMetadata) isAction()  {}
func (RemoveMetadata) isAction()  {}
func (SetAll) isAction()          {}

// Reduce applies action to state and returns the next record. The input is
// never mutated; unknown fields, unknown ids and nil actions leave the state
// unchanged.
func Reduce(state FormData, action Action) FormData {
	next := state.Clone()

	switch a := action.(type) {
	case SetField:
		switch a.Field {
		case FieldReportName:
			next.ReportName = a.Value
		case FieldGoal:
			next.Goal = a.Value
		case FieldAnalysisType:
			next.AnalysisType = ParseAnalysisType(a.Value)
		case FieldBackground:
			next.Background = a.Value
		}

	case SetAnalysisType:
		next.AnalysisType = a.Type

	case SetTimeRange:
		if a.Range == nil {
			next.TimeRange = nil
		} else {
			tr := *a.Range
			next.TimeRange = &tr
		}

	case AddMetadata:
		if _, exists := next.MetadataByID(a.Entry.ID); exists {
			return next
		}
		next.Metadata = append(next.Metadata, a.Entry)

	case UpdateMetadata:
		for i := range next.Metadata {
			if next.Metadata[i].ID == a.ID {
				next.Metadata[i].Value = a.Value
			}
		}

	case RemoveMetadata:
		kept := next.Metadata[:0]
		for _, entry := range next.Metadata {
			if entry.ID != a.ID {
				kept = append(kept, entry)
			}
		}
		next.Metadata = kept

	case SetAll:
		next = a.Data.Clone()
	}

	return next
}
