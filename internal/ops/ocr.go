package ops

import (
	"math/rand/v2"
	"strings"

	"garble/internal/op"
)

// OCR-style misreads ("rn" -> "m", "l" -> "1"). The scanner walks the
// text once; at each position the first matching pattern gets one
// probability draw, hit or miss, so the draw sequence depends only on
// the input text and the fixed pattern table.

func ocrDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "ocr", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.02},
		},
		Validate: func(params op.Params) error {
			return validateRate(params, "rate")
		},
		Portable: ocrPortable,
	}
}

func ocrPortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		matched := false
		for _, pat := range ocrPatterns {
			if !strings.HasPrefix(text[i:], pat.src) {
				continue
			}
			if rng.Float64() < rate {
				b.WriteString(pat.dst)
				i += len(pat.src)
			} else {
				b.WriteByte(text[i])
				i++
			}
			matched = true
			break
		}
		if !matched {
			b.WriteByte(text[i])
			i++
		}
	}
	return b.String(), nil
}
