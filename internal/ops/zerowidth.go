package ops

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"garble/internal/op"
)

// Zero-width character injection between adjacent non-space characters.
// One probability draw per eligible boundary, one palette draw on a hit.
// The injected characters render invisibly but survive copy/paste and
// tokenization.

func zerowidthDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "zerowidth", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.02},
		},
		Validate: func(params op.Params) error {
			return validateRate(params, "rate")
		},
		Portable:    zerowidthPortable,
		Accelerated: zerowidthAccelerated,
	}
}

func zerowidthPortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	runes := []rune(text)
	out := make([]rune, 0, len(runes)+len(runes)/8)
	for i, r := range runes {
		out = append(out, r)
		if i+1 >= len(runes) {
			break
		}
		if unicode.IsSpace(r) || unicode.IsSpace(runes[i+1]) {
			continue
		}
		if rng.Float64() >= rate {
			continue
		}
		out = append(out, zeroWidthPalette[rng.IntN(len(zeroWidthPalette))])
	}
	return string(out), nil
}

func zerowidthAccelerated(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		curSpace := unicode.IsSpace(r)
		b.WriteString(text[i : i+size])
		i += size
		if i >= len(text) {
			break
		}
		next, _ := utf8.DecodeRuneInString(text[i:])
		if !curSpace && !unicode.IsSpace(next) && rng.Float64() < rate {
			b.WriteRune(zeroWidthPalette[rng.IntN(len(zeroWidthPalette))])
		}
	}
	return b.String(), nil
}
