package ops

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"garble/internal/op"
)

// Unicode confusable substitution. One probability draw per character
// that has confusable alternatives, one index draw on a hit.

func homoglyphDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "homoglyph", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.02},
		},
		Validate: func(params op.Params) error {
			return validateRate(params, "rate")
		},
		Portable:    homoglyphPortable,
		Accelerated: homoglyphAccelerated,
	}
}

func homoglyphPortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	out := make([]rune, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		alts, ok := homoglyphs[r]
		if !ok || rng.Float64() >= rate {
			out = append(out, r)
			continue
		}
		out = append(out, alts[rng.IntN(len(alts))])
	}
	return string(out), nil
}

// homoglyphAccelerated walks bytes directly. Confusable sources are all
// ASCII, so multi-byte input runes can be copied without decoding and a
// replacement only ever widens the output.
func homoglyphAccelerated(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= utf8.RuneSelf {
			b.WriteByte(c)
			continue
		}
		alts, ok := homoglyphs[rune(c)]
		if !ok || rng.Float64() >= rate {
			b.WriteByte(c)
			continue
		}
		b.WriteRune(alts[rng.IntN(len(alts))])
	}
	return b.String(), nil
}
