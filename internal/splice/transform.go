package splice

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultExciseSeparator = "\n"
	DefaultInsertSeparator = "\n\n"
)

// Recipe holds the literal configuration of one transform run.
type Recipe struct {
	StartMarker     string
	EndMarker       string
	ExciseSeparator string

	InsertMarker    string
	Payload         string
	InsertSeparator string

	OldUsage string
	NewUsage string
}

// NewRecipe returns a Recipe with the default separators set.
func NewRecipe() Recipe {
	return Recipe{
		ExciseSeparator: DefaultExciseSeparator,
		InsertSeparator: DefaultInsertSeparator,
	}
}

// IsEmpty reports whether no stage of the recipe is configured.
func (r Recipe) IsEmpty() bool {
	return r.StartMarker == "" && r.EndMarker == "" && r.InsertMarker == "" && r.OldUsage == ""
}

// ErrIncompleteRegion is returned by Validate when only one of the two
// excision markers is set.
var ErrIncompleteRegion = errors.New("excision needs both a start and an end marker")

// Validate rejects recipes whose excision region is only half configured.
func (r Recipe) Validate() error {
	switch {
	case r.StartMarker != "" && r.EndMarker == "":
		return fmt.Errorf("%w: end marker missing", ErrIncompleteRegion)
	case r.StartMarker == "" && r.EndMarker != "":
		return fmt.Errorf("%w: start marker missing", ErrIncompleteRegion)
	}
	return nil
}

// Result is the output of Transform.
type Result struct {
	Buffer   string
	Outcomes []Outcome
}

// Skipped returns the outcomes of stages that did not apply.
func (r Result) Skipped() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Applied {
			out = append(out, o)
		}
	}
	return out
}

// Changed reports whether the transformed buffer differs from original.
func (r Result) Changed(original string) bool {
	return r.Buffer != original
}

// SkippedError lists skipped stages, e.g. "insert (insertion marker not found)".
func (r Result) SkippedError() string {
	skipped := r.Skipped()
	parts := make([]string, len(skipped))
	for i, o := range skipped {
		parts[i] = fmt.Sprintf("%s (%s)", o.Stage, o.Reason)
	}
	return strings.Join(parts, ", ")
}

// Transform runs excision, insertion and substitution over buf, in that
// order, and reports the outcome of each stage.
func Transform(buf string, r Recipe) Result {
	outcomes := make([]Outcome, 0, 3)

	buf, o := Excise(buf, r.StartMarker, r.EndMarker, r.ExciseSeparator)
	outcomes = append(outcomes, o)

	buf, o = InsertBefore(buf, r.InsertMarker, r.Payload, r.InsertSeparator)
	outcomes = append(outcomes, o)

	buf, o = Substitute(buf, r.OldUsage, r.NewUsage)
	outcomes = append(outcomes, o)

	return Result{Buffer: buf, Outcomes: outcomes}
}
