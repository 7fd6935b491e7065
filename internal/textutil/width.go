package textutil

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DisplayWidth returns the monospace cell width of s measured over grapheme
// clusters, so a flag or an emoji sequence counts once.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// GraphemeCount returns the number of user-perceived characters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// TruncateWidth cuts s to at most width cells without splitting a grapheme
// cluster. When s is cut and tail fits, tail is appended within the width.
func TruncateWidth(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	tw := uniseg.StringWidth(tail)
	if tw > width {
		tail, tw = "", 0
	}
	limit := width - tw

	var sb strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > limit {
			break
		}
		sb.WriteString(cluster)
		used += w
	}
	sb.WriteString(tail)
	return sb.String()
}
