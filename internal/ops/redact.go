package ops

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"garble/internal/op"
)

// Word redaction: each word is independently blocked out with the
// redaction character. Rejects empty or whitespace-only input, since a
// redaction pass that can see nothing to redact indicates a broken chain
// upstream.

func redactDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "redact", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.025},
			{Name: "char", Value: "█"}, // FULL BLOCK
		},
		Validate: func(params op.Params) error {
			if err := validateRate(params, "rate"); err != nil {
				return err
			}
			char := op.String(params, "char")
			if utf8.RuneCountInString(char) != 1 {
				return fmt.Errorf("char must be exactly one character, got %q", char)
			}
			return nil
		},
		Portable:    redactPortable,
		Accelerated: redactAccelerated,
	}
}

func redactPortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", op.ErrEmptyInput
	}
	rate := op.Float(params, "rate")
	if rate <= 0 {
		return text, nil
	}
	char := op.String(params, "char")

	tokens := splitTokens(text)
	for i, t := range tokens {
		if !t.word {
			continue
		}
		if rng.Float64() >= rate {
			continue
		}
		tokens[i].text = strings.Repeat(char, utf8.RuneCountInString(t.text))
	}
	return joinTokens(tokens), nil
}

// redactAccelerated draws once per word in text order, same as the
// portable pass, but emits into a single pre-grown builder instead of
// materializing a token slice.
func redactAccelerated(text string, rng *rand.Rand, params op.Params) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", op.ErrEmptyInput
	}
	rate := op.Float(params, "rate")
	if rate <= 0 {
		return text, nil
	}
	char := op.String(params, "char")

	var b strings.Builder
	b.Grow(len(text) + len(text)/2)
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			b.WriteString(text[i : i+size])
			i += size
			continue
		}
		// consume one word
		start := i
		count := 0
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) {
				break
			}
			count++
			i += size
		}
		if rng.Float64() < rate {
			for n := 0; n < count; n++ {
				b.WriteString(char)
			}
		} else {
			b.WriteString(text[start:i])
		}
	}
	return b.String(), nil
}
