package ops

import (
	"strings"
	"unicode"
)

// token is a maximal run of whitespace or non-whitespace. Splitting and
// rejoining a text through tokens is lossless.
type token struct {
	text string
	word bool
}

func splitTokens(text string) []token {
	tokens := make([]token, 0, len(text)/4+1)
	var b strings.Builder
	var inWord, started bool
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, token{text: b.String(), word: inWord})
			b.Reset()
		}
	}
	for _, r := range text {
		word := !unicode.IsSpace(r)
		if started && word != inWord {
			flush()
		}
		inWord = word
		started = true
		b.WriteRune(r)
	}
	flush()
	return tokens
}

func joinTokens(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.text)
	}
	return b.String()
}

// wordIndexes returns the indexes of word tokens, in order.
func wordIndexes(tokens []token) []int {
	out := make([]int, 0, len(tokens)/2+1)
	for i, t := range tokens {
		if t.word {
			out = append(out, i)
		}
	}
	return out
}

// matchCase reapplies the casing shape of src to repl: all-upper stays
// all-upper, leading capital stays a leading capital.
func matchCase(src, repl string) string {
	if src == strings.ToUpper(src) && strings.ToLower(src) != src {
		return strings.ToUpper(repl)
	}
	runes := []rune(src)
	if len(runes) > 0 && unicode.IsUpper(runes[0]) {
		rr := []rune(repl)
		if len(rr) > 0 {
			rr[0] = unicode.ToUpper(rr[0])
		}
		return string(rr)
	}
	return repl
}
