package model

import "github.com/sokinpui/transplant/internal/splice"

// Destinations a transformed buffer can be sent to.
const (
	DestinationDisk       = "disk"
	DestinationDiskAtomic = "disk (atomic)"
	DestinationBuffer     = "nvim buffer"
	DestinationDryRun     = "dry-run"
)

// Summary holds the results of a run for display.
type Summary struct {
	// Path is the resolved target file.
	Path     string
	Outcomes []splice.Outcome
	// Written is false for dry runs and for strict runs that stopped early.
	Written     bool
	Destination string
	// Diff is the unified diff of the change, set for dry runs.
	Diff    string
	Message string
}

// Skipped returns the outcomes of stages that did not apply.
func (s Summary) Skipped() []splice.Outcome {
	return splice.Result{Outcomes: s.Outcomes}.Skipped()
}
