package cursor

// ShiftOffset updates a byte offset after the bytes in [start, end) were
// replaced by newLen bytes.
//
// Transformation rules:
//   - Edit entirely before offset: offset moves by the edit's delta
//   - Edit starting at or after offset: offset unchanged
//   - Edit spanning offset: offset moves to the end of the new text
func ShiftOffset(offset, start, end, newLen int) int {
	switch {
	case end <= offset && start < offset:
		return offset - (end - start) + newLen
	case start >= offset:
		return offset
	default:
		return start + newLen
	}
}
