package form

import "time"

// Template returns the hard-coded example record offered as inspiration in the
// report center. It satisfies every validation threshold and is loaded through
// SetAll without going through validation.
func Template() FormData {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)

	return FormData{
		ReportName:   "Q1 Ransomware Activity Against Regional Healthcare",
		Goal:         "Assess ransomware campaigns targeting regional healthcare providers and recommend mitigations",
		AnalysisType: AnalysisSituational,
		Background: "Several hospitals in the region reported encrypted file servers and extortion " +
			"notes during the first quarter. Initial triage points to a shared initial access " +
			"broker and reuse of leaked VPN credentials across victims.",
		TimeRange: &TimeRange{Start: start, End: end},
		Metadata: []MetadataEntry{
			{ID: "template-threat-actor", Category: "threat_landscape", Key: "threat_actor", Value: "LockBit affiliates"},
			{ID: "template-sector", Category: "industry", Key: "sector", Value: "Healthcare"},
			{ID: "template-region", Category: "geography", Key: "region", Value: "Europe"},
			{ID: "template-severity", Category: "impact", Key: "severity", Value: "High"},
		},
	}
}
