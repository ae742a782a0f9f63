package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/sokinpui/transplant/internal/splice"
)

func TestStageLine(t *testing.T) {
	tests := []struct {
		outcome splice.Outcome
		want    string
	}{
		{splice.Outcome{Stage: splice.StageExcise, Applied: true, Count: 12}, "excise: applied (12 bytes removed)"},
		{splice.Outcome{Stage: splice.StageInsert, Applied: true, Count: 3}, "insert: applied (3 bytes inserted)"},
		{splice.Outcome{Stage: splice.StageSubstitute, Applied: true, Count: 2}, "substitute: applied (2 replacement(s))"},
		{splice.Outcome{Stage: splice.StageInsert, Reason: splice.ReasonInsertNotFound}, "insert: skipped (insertion marker not found)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StageLine(tt.outcome))
	}
}

func TestPrintStageSummary(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	PrintStageSummary("src/Feed.tsx", []splice.Outcome{
		{Stage: splice.StageExcise, Applied: true, Count: 5},
		{Stage: splice.StageInsert, Reason: splice.ReasonInsertNotFound},
		{Stage: splice.StageSubstitute, Reason: splice.ReasonNotConfigured},
	})

	out := buf.String()
	assert.Contains(t, out, "--- Transform Summary ---")
	assert.Contains(t, out, "  src/Feed.tsx\n")
	assert.Contains(t, out, "  excise: applied (5 bytes removed)\n")
	assert.Contains(t, out, "  insert: skipped (insertion marker not found)\n")
	assert.Contains(t, out, "  substitute: skipped (not configured)\n")
}
