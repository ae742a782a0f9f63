package splice

// Excise removes the text from the start of startMarker up to (not including)
// the first endMarker found after it, and joins the two sides with sep.
// The end marker is kept. If either marker is missing the buffer is returned
// unchanged; a missing end marker never excises to the end of the buffer.
func Excise(buf, startMarker, endMarker, sep string) (string, Outcome) {
	if startMarker == "" || endMarker == "" {
		return buf, skipped(StageExcise, ReasonNotConfigured)
	}

	start := Locate(buf, startMarker)
	if start == NotFound {
		return buf, skipped(StageExcise, ReasonStartNotFound)
	}
	end := LocateFrom(buf, endMarker, start)
	if end == NotFound {
		return buf, skipped(StageExcise, ReasonEndNotFound)
	}

	out := buf[:start] + sep + buf[end:]
	return out, Outcome{Stage: StageExcise, Applied: true, Count: end - start}
}
