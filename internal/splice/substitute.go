package splice

import "strings"

// Substitute replaces every literal, non-overlapping occurrence of oldUsage
// with newUsage. Text produced by a replacement is not scanned again.
func Substitute(buf, oldUsage, newUsage string) (string, Outcome) {
	if oldUsage == "" {
		return buf, skipped(StageSubstitute, ReasonNotConfigured)
	}

	n := strings.Count(buf, oldUsage)
	if n == 0 {
		return buf, skipped(StageSubstitute, ReasonOldUsageNotFound)
	}
	return strings.ReplaceAll(buf, oldUsage, newUsage), Outcome{Stage: StageSubstitute, Applied: true, Count: n}
}
