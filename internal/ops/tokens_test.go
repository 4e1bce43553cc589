package ops

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitJoinLossless(t *testing.T) {
	cases := []string{
		"",
		"one",
		"  leading and trailing  ",
		"tabs\tand\nnewlines mixed   with  runs",
		"unicode: café naïve über",
	}
	for _, text := range cases {
		if got := joinTokens(splitTokens(text)); got != text {
			t.Errorf("round trip mangled %q into %q", text, got)
		}
	}
}

func TestSplitClassifiesRuns(t *testing.T) {
	tokens := splitTokens("ab  cd\n")
	want := []token{
		{text: "ab", word: true},
		{text: "  ", word: false},
		{text: "cd", word: true},
		{text: "\n", word: false},
	}
	if diff := cmp.Diff(want, tokens, cmp.AllowUnexported(token{})); diff != "" {
		t.Errorf("unexpected tokens:\n%s", diff)
	}
}

func TestWordIndexes(t *testing.T) {
	tokens := splitTokens(" a b ")
	got := wordIndexes(tokens)
	want := []int{1, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected word indexes:\n%s", diff)
	}
}

func TestMatchCase(t *testing.T) {
	if got := matchCase("Their", "there"); got != "There" {
		t.Errorf("leading capital: got %q", got)
	}
	if got := matchCase("THEIR", "there"); got != "THERE" {
		t.Errorf("all caps: got %q", got)
	}
	if got := matchCase("their", "there"); got != "there" {
		t.Errorf("lowercase: got %q", got)
	}
}
