package textutil

import "testing"

func TestClass(t *testing.T) {
	tests := []struct {
		r    rune
		want CharClass
	}{
		{' ', Whitespace},
		{'\t', Whitespace},
		{'a', Word},
		{'_', Word},
		{'9', Word},
		{'é', Word},
		{'.', Punctuation},
		{'(', Punctuation},
		{'\\', Punctuation},
	}
	for _, tt := range tests {
		if got := Class(tt.r); got != tt.want {
			t.Errorf("Class(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestWordMotion(t *testing.T) {
	line := []rune("foo.bar  baz")

	left := []struct{ from, want int }{
		{12, 9},
		{9, 7},
		{7, 4},
		{4, 3},
		{3, 0},
		{0, 0},
	}
	for _, tt := range left {
		if got := PrevWordStart(line, tt.from); got != tt.want {
			t.Errorf("PrevWordStart(%d) = %d, want %d", tt.from, got, tt.want)
		}
	}

	right := []struct{ from, want int }{
		{0, 3},
		{3, 4},
		{4, 7},
		{7, 9},
		{9, 12},
		{12, 12},
	}
	for _, tt := range right {
		if got := NextWordEnd(line, tt.from); got != tt.want {
			t.Errorf("NextWordEnd(%d) = %d, want %d", tt.from, got, tt.want)
		}
	}
}

func TestWordAt(t *testing.T) {
	line := []rune("say hello_world!")
	tests := []struct {
		col        int
		start, end int
		ok         bool
	}{
		{0, 0, 3, true},
		{3, 0, 3, true},
		{4, 4, 15, true},
		{15, 4, 15, true},
		{16, 0, 0, false},
	}
	for _, tt := range tests {
		start, end, ok := WordAt(line, tt.col)
		if start != tt.start || end != tt.end || ok != tt.ok {
			t.Errorf("WordAt(%d) = %d, %d, %v; want %d, %d, %v", tt.col, start, end, ok, tt.start, tt.end, tt.ok)
		}
	}
	if !IsWordSpan(line, 4, 15) || IsWordSpan(line, 5, 15) || IsWordSpan(line, 3, 9) {
		t.Error("IsWordSpan mismatch")
	}
}

func TestFirstNonBlank(t *testing.T) {
	if got := FirstNonBlank([]rune("\t  x")); got != 3 {
		t.Errorf("FirstNonBlank = %d, want 3", got)
	}
	if got := FirstNonBlank([]rune("   ")); got != 3 {
		t.Errorf("FirstNonBlank(blank) = %d, want 3", got)
	}
}

func TestVisualColumn(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		charCol int
		want    int
	}{
		{"plain", "abc", 2, 2},
		{"leading tab", "\tx", 1, 4},
		{"tab mid stop", "ab\tc", 3, 4},
		{"tab on stop", "abcd\te", 5, 8},
		{"wide rune", "世界x", 2, 4},
		{"past end", "ab", 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisualColumn(tt.line, tt.charCol, 4); got != tt.want {
				t.Errorf("VisualColumn() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCharColumn(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		visualCol int
		want      int
		nearest   int
	}{
		{"plain", "abc", 2, 2, 2},
		{"inside tab", "\tx", 1, 1, 0},
		{"late in tab", "\tx", 3, 1, 1},
		{"after tab", "\tx", 4, 1, 1},
		{"inside wide", "世界", 1, 1, 1},
		{"past end", "ab", 9, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CharColumn(tt.line, tt.visualCol, 4); got != tt.want {
				t.Errorf("CharColumn() = %d, want %d", got, tt.want)
			}
			if got := NearestCharColumn(tt.line, tt.visualCol, 4); got != tt.nearest {
				t.Errorf("NearestCharColumn() = %d, want %d", got, tt.nearest)
			}
		})
	}
}

func TestExpandTabs(t *testing.T) {
	if got := ExpandTabs("a\tb\t\tc", 4); got != "a   b       c" {
		t.Errorf("ExpandTabs = %q", got)
	}
	if got := VisualWidth("a\tb", 0); got != 5 {
		t.Errorf("VisualWidth with default tab = %d, want 5", got)
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"Ln 1, Col 1", 11},
		{"世界", 4},
		{"🇩🇪", 2},
		{"", 0},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.s); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
	if GraphemeCount("🇩🇪x") != 2 {
		t.Error("GraphemeCount should treat a flag as one cluster")
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"main.go", 10, "main.go"},
		{"very_long_name.go", 8, "very_lo…"},
		{"世界世界", 5, "世界…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := TruncateWidth(tt.s, tt.width, "…"); got != tt.want {
			t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}
