package ops

import (
	"math/rand/v2"
	"strings"

	"garble/internal/op"
)

// Smart-quote substitution. Straight double quotes, apostrophes and
// backticks are paired up per glyph kind (first occurrence opens, second
// closes) and each matched pair becomes one decorative pair. Unmatched
// glyphs stay untouched, so a lone contraction apostrophe survives.

func quoteDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "quote", Version: "1"},
		Portable: quotePortable,
	}
}

type quoteSpan struct {
	open  int // rune index
	close int
	glyph rune
}

// collectQuotePairs pairs same-kind straight quotes in reading order.
// Spans are recorded in closing order, which fixes the draw sequence.
func collectQuotePairs(runes []rune) []quoteSpan {
	spans := make([]quoteSpan, 0, 4)
	open := map[rune]int{}
	for i, r := range runes {
		if _, known := quotePairTable[r]; !known {
			continue
		}
		if at, ok := open[r]; ok {
			spans = append(spans, quoteSpan{open: at, close: i, glyph: r})
			delete(open, r)
			continue
		}
		open[r] = i
	}
	return spans
}

func quotePortable(text string, rng *rand.Rand, _ op.Params) (string, error) {
	if text == "" {
		return text, nil
	}
	runes := []rune(text)
	spans := collectQuotePairs(runes)
	if len(spans) == 0 {
		return text, nil
	}

	replacements := make(map[int]string, len(spans)*2)
	for _, span := range spans {
		options := quotePairTable[span.glyph]
		pair := options[rng.IntN(len(options))]
		replacements[span.open] = pair[0]
		replacements[span.close] = pair[1]
	}

	var b strings.Builder
	b.Grow(len(text) + len(spans)*4)
	for i, r := range runes {
		if repl, ok := replacements[i]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
