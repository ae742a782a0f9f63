package patcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedDiff(t *testing.T) {
	before := "one\ntwo\nthree\n"
	after := "one\n2\nthree\n"

	diff, err := UnifiedDiff("src/Feed.tsx", before, after)
	require.NoError(t, err)

	assert.Contains(t, diff, "--- a/src/Feed.tsx\n")
	assert.Contains(t, diff, "+++ b/src/Feed.tsx\n")
	assert.Contains(t, diff, "-two\n")
	assert.Contains(t, diff, "+2\n")
	assert.Contains(t, diff, " one\n")
}

func TestUnifiedDiffNoChange(t *testing.T) {
	diff, err := UnifiedDiff("f.txt", "same\n", "same\n")
	require.NoError(t, err)
	assert.Empty(t, diff)
}
