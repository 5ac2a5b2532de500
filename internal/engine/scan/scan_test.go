package scan

import (
	"testing"
	"unicode"
)

func TestNewLine(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		chars []string
	}{
		{"empty", "", nil},
		{"ascii", "ab c", []string{"a", "b", " ", "c"}},
		{"combining", "é x", []string{"é", " ", "x"}},
		{"combining on space", "a \u0301b", []string{"a", " \u0301", "b"}},
		{"cjk", "日本 語", []string{"日", "本", " ", "語"}},
		{"tab", "\tx", []string{"\t", "x"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			line := NewLine(tc.text)
			if line.Len() != len(tc.chars) {
				t.Fatalf("Len() = %d, want %d", line.Len(), len(tc.chars))
			}
			for i, want := range tc.chars {
				if got := line.At(i); got != want {
					t.Errorf("At(%d) = %q, want %q", i, got, want)
				}
			}
			if line.String() != tc.text {
				t.Errorf("String() = %q, want %q", line.String(), tc.text)
			}
		})
	}
}

func TestLineOutOfRange(t *testing.T) {
	line := NewLine("ab")

	if line.At(-1) != "" || line.At(2) != "" {
		t.Error("At out of range should return empty string")
	}
	if line.ByteOffset(-3) != 0 {
		t.Errorf("ByteOffset(-3) = %d, want 0", line.ByteOffset(-3))
	}
	if line.ByteOffset(10) != 2 {
		t.Errorf("ByteOffset(10) = %d, want 2", line.ByteOffset(10))
	}

	var zero Line
	if zero.Len() != 0 {
		t.Errorf("zero Line Len() = %d, want 0", zero.Len())
	}
	if zero.ByteOffset(1) != 0 {
		t.Errorf("zero Line ByteOffset(1) = %d, want 0", zero.ByteOffset(1))
	}
}

func TestLineSlice(t *testing.T) {
	line := NewLine("héllo  wörld")
	if got := line.Slice(5, 7); got != "  " {
		t.Errorf("Slice(5,7) = %q, want two spaces", got)
	}
	if got := line.Slice(7, 5); got != "" {
		t.Errorf("Slice(7,5) = %q, want empty", got)
	}
}

func TestIsWhitespace(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{' ', true},
		{'\t', true},
		{'\v', true},
		{'\f', true},
		{'\r', true},
		{'\n', true},
		{'\u00A0', true},
		{'\u1680', true},
		{'\u2003', true},
		{'\u2028', true},
		{'\u202F', true},
		{'\u3000', true},
		{'\uFEFF', true},
		{'\u0085', false},
		{'a', false},
		{'_', false},
		{'語', false},
		{'\u200B', false},
	}

	for _, tc := range tests {
		if got := IsWhitespace(tc.r); got != tc.want {
			t.Errorf("IsWhitespace(%U) = %v, want %v", tc.r, got, tc.want)
		}
		if got := IsSignificant(tc.r); got == tc.want {
			t.Errorf("IsSignificant(%U) = %v, want %v", tc.r, got, !tc.want)
		}
	}
}

func TestFindFirstSignificant(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		want  int
	}{
		{"inside run", "foo   bar", 5, 3},
		{"at run start", "foo   bar", 3, 3},
		{"at run end", "foo   bar", 6, 3},
		{"column zero", "foo", 0, 0},
		{"leading whitespace", "   foo", 2, 0},
		{"all whitespace", "   ", 1, 0},
		{"empty", "", 0, 0},
		{"past end clamps", "ab  ", 99, 2},
		{"from end", "ab  ", FromEnd, 2},
		{"from end no match", "    ", FromEnd, 0},
		{"from end empty", "", FromEnd, 0},
		{"non-whitespace", "abc", 2, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FindFirstSignificant(NewLine(tc.text), IsSignificant, tc.start)
			if got != tc.want {
				t.Errorf("FindFirstSignificant(%q, %d) = %d, want %d", tc.text, tc.start, got, tc.want)
			}
		})
	}
}

func TestFindLastSignificant(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		want  int
	}{
		{"inside run", "foo   bar", 5, 6},
		{"at run start", "foo   bar", 3, 6},
		{"on significant char", "foo   bar", 6, 6},
		{"trailing whitespace", "foo   ", 4, 6},
		{"all whitespace", "   ", 1, 3},
		{"empty", "", 0, 0},
		{"negative clamps", "  x", -5, 2},
		{"from end", "ab  ", FromEnd, 4},
		{"from end empty", "", FromEnd, 0},
		{"non-whitespace", "abc", 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FindLastSignificant(NewLine(tc.text), IsSignificant, tc.start)
			if got != tc.want {
				t.Errorf("FindLastSignificant(%q, %d) = %d, want %d", tc.text, tc.start, got, tc.want)
			}
		})
	}
}

func TestCustomPredicate(t *testing.T) {
	line := NewLine("abc123def")
	digit := Predicate(unicode.IsDigit)

	// Scanning for letters around a run of digits.
	b, ok := Locate(line, Not(digit), 4)
	if !ok {
		t.Fatal("expected a non-empty boundary")
	}
	if b != (Boundary{First: 3, Last: 6}) {
		t.Errorf("Locate = %v, want [3,6)", b)
	}
}

func TestDeleteRange(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		column int
		want   Boundary
		ok     bool
	}{
		{"inside run", "foo   bar", 5, Boundary{3, 6}, true},
		{"empty line", "", 0, Boundary{0, 0}, false},
		{"all whitespace", "   ", 1, Boundary{0, 3}, true},
		{"all whitespace at start", "   ", 0, Boundary{0, 3}, true},
		{"all whitespace at end", "   ", 3, Boundary{0, 3}, true},
		{"between words", "foo bar", 3, Boundary{3, 4}, true},
		{"inside word", "foobar", 3, Boundary{3, 3}, false},
		{"tabs and spaces", "x \t \ty", 3, Boundary{1, 5}, true},
		{"leading indent", "    return", 2, Boundary{0, 4}, true},
		{"trailing whitespace", "done   ", 7, Boundary{4, 7}, true},
		{"unicode spaces", "a\u3000\u00A0b", 1, Boundary{1, 3}, true},
		{"grapheme columns", "é  ü", 2, Boundary{1, 3}, true},
		{"column past end", "ab  ", 10, Boundary{2, 4}, true},
		{"negative column", "  ab", -1, Boundary{0, 2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DeleteRange(NewLine(tc.text), tc.column)
			if got != tc.want || ok != tc.ok {
				t.Errorf("DeleteRange(%q, %d) = %v, %v; want %v, %v", tc.text, tc.column, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		text       string
		column     int
		wantText   string
		wantCursor int
		wantOK     bool
	}{
		{"foo   bar", 5, "foobar", 3, true},
		{"", 0, "", 0, false},
		{"   ", 1, "", 0, true},
		{"foobar", 3, "foobar", 3, false},
		{"héllo   wörld", 6, "héllowörld", 5, true},
		{"é   x", 2, "éx", 1, true},
		// The mark belongs to the space's cluster and goes with it.
		{"a \u0301b", 1, "ab", 1, true},
		{"a \u0301 b", 2, "ab", 1, true},
	}

	for _, tc := range tests {
		text, cursor, ok := Apply(NewLine(tc.text), tc.column)
		if text != tc.wantText || cursor != tc.wantCursor || ok != tc.wantOK {
			t.Errorf("Apply(%q, %d) = %q, %d, %v; want %q, %d, %v",
				tc.text, tc.column, text, cursor, ok, tc.wantText, tc.wantCursor, tc.wantOK)
		}
	}
}

func TestBoundary(t *testing.T) {
	b := Boundary{First: 2, Last: 5}
	if b.IsEmpty() {
		t.Error("expected non-empty boundary")
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if b.String() != "[2,5)" {
		t.Errorf("String() = %q, want [2,5)", b.String())
	}
}
