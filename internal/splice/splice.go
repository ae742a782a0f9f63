package splice

import "strings"

// NotFound is returned by Locate when a marker does not occur in a buffer.
const NotFound = -1

// Stage names a single step of the transform pipeline.
type Stage string

const (
	StageExcise     Stage = "excise"
	StageInsert     Stage = "insert"
	StageSubstitute Stage = "substitute"
)

// Skip reasons reported in Outcome.Reason.
const (
	ReasonNotConfigured    = "not configured"
	ReasonStartNotFound    = "start marker not found"
	ReasonEndNotFound      = "end marker not found after start marker"
	ReasonEmptyPayload     = "empty payload"
	ReasonInsertNotFound   = "insertion marker not found"
	ReasonOldUsageNotFound = "old usage not found"
)

// Outcome describes what a stage did to the buffer.
type Outcome struct {
	Stage   Stage
	Applied bool
	// Reason is empty when the stage applied.
	Reason string
	// Count is the number of bytes removed (excise), bytes inserted (insert)
	// or replacements made (substitute).
	Count int
}

func skipped(stage Stage, reason string) Outcome {
	return Outcome{Stage: stage, Reason: reason}
}

// Locate returns the offset of the leftmost occurrence of marker in buf,
// or NotFound. An empty marker is never found.
func Locate(buf, marker string) int {
	return LocateFrom(buf, marker, 0)
}

// LocateFrom is Locate starting the search at byte offset from. The returned
// offset is absolute.
func LocateFrom(buf, marker string, from int) int {
	if marker == "" || from < 0 || from > len(buf) {
		return NotFound
	}
	idx := strings.Index(buf[from:], marker)
	if idx < 0 {
		return NotFound
	}
	return from + idx
}
