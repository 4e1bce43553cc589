package ops

import (
	"math/rand/v2"
	"strings"

	"garble/internal/op"
)

// Homophone word swap. Words are looked up case-insensitively, with
// trailing punctuation kept out of the lookup; replacements reapply the
// original casing shape.

func homophoneDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "homophone", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.02},
		},
		Validate: func(params op.Params) error {
			return validateRate(params, "rate")
		},
		Portable: homophonePortable,
	}
}

func homophonePortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	tokens := splitTokens(text)
	for i, t := range tokens {
		if !t.word {
			continue
		}
		core := strings.TrimRight(t.text, ".,!?;:\"')")
		trailer := t.text[len(core):]
		alts, ok := homophoneTable[strings.ToLower(core)]
		if !ok {
			continue
		}
		if rng.Float64() >= rate {
			continue
		}
		repl := alts[rng.IntN(len(alts))]
		tokens[i].text = matchCase(core, repl) + trailer
	}
	return joinTokens(tokens), nil
}
