package splice

// InsertBefore splices block followed by sep immediately before the first
// occurrence of marker. The marker itself is left in place.
//
// InsertBefore is not idempotent: calling it twice with the same marker and
// block leaves two copies of block in front of the marker.
func InsertBefore(buf, marker, block, sep string) (string, Outcome) {
	if marker == "" {
		return buf, skipped(StageInsert, ReasonNotConfigured)
	}
	if block == "" {
		return buf, skipped(StageInsert, ReasonEmptyPayload)
	}

	idx := Locate(buf, marker)
	if idx == NotFound {
		return buf, skipped(StageInsert, ReasonInsertNotFound)
	}

	out := buf[:idx] + block + sep + buf[idx:]
	return out, Outcome{Stage: StageInsert, Applied: true, Count: len(block) + len(sep)}
}
