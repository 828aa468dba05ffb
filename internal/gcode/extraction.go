package gcode

// Extraction holds the quantities recovered from a G-code header.
// A nil field means the value was not found, never zero.
type Extraction struct {
	PrintTimeSeconds *int     `json:"printTimeSeconds"`
	FilamentWeightG  *float64 `json:"filamentWeightG"`
	FilamentLengthMm *float64 `json:"filamentLengthMm"`
}

// Complete reports whether all three quantities were found.
func (e Extraction) Complete() bool {
	return e.PrintTimeSeconds != nil && e.FilamentWeightG != nil && e.FilamentLengthMm != nil
}

// Empty reports whether no quantity was found at all.
func (e Extraction) Empty() bool {
	return e.PrintTimeSeconds == nil && e.FilamentWeightG == nil && e.FilamentLengthMm == nil
}

// Merge overlays remote on top of local: every field the remote extraction
// supplies replaces the local one, fields it leaves absent keep the local
// value.
func Merge(local, remote Extraction) Extraction {
	merged := local
	if remote.PrintTimeSeconds != nil {
		merged.PrintTimeSeconds = remote.PrintTimeSeconds
	}
	if remote.FilamentWeightG != nil {
		merged.FilamentWeightG = remote.FilamentWeightG
	}
	if remote.FilamentLengthMm != nil {
		merged.FilamentLengthMm = remote.FilamentLengthMm
	}
	return merged
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
