package rope

import "unicode/utf8"

// TextSummary holds aggregated metrics for a span of text.
// Summaries combine with Add, which lets internal nodes cache the totals of
// their subtrees.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the number of Unicode code points.
	Chars int

	// Lines is the number of newline characters.
	Lines int

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for optimization fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all characters are ASCII (< 128).
	FlagASCII TextFlags = 1 << iota

	// FlagHasTabs indicates the text contains tab characters.
	FlagHasTabs
)

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: (s.Flags & other.Flags & FlagASCII) | ((s.Flags | other.Flags) & FlagHasTabs),
	}
}

// IsZero returns true if the summary describes no text.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: len(s), Flags: FlagASCII}
	for _, r := range s {
		sum.Chars++
		switch {
		case r == '\n':
			sum.Lines++
		case r == '\t':
			sum.Flags |= FlagHasTabs
		case r >= utf8.RuneSelf:
			sum.Flags &^= FlagASCII
		}
	}
	return sum
}

// nthNewline returns the byte index of the nth newline (1-indexed) in s,
// or -1 if s has fewer newlines.
func nthNewline(s string, n int) int {
	if n <= 0 {
		return -1
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n--
			if n == 0 {
				return i
			}
		}
	}
	return -1
}

// countNewlines returns the number of newlines in s.
func countNewlines(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	return n
}

// byteOfChar returns the byte index of the nth code point in s, or len(s)
// if s has n or fewer code points.
func byteOfChar(s string, n int) int {
	if n <= 0 {
		return 0
	}
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
