package ops

import (
	"math/rand/v2"

	"garble/internal/op"
)

// Word-structure noise: reduplication, deletion and adjacent
// transposition. Three separate kinds sharing the whitespace-preserving
// tokenizer, so a composition can dose each independently.

func duplicateDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "duplicate", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.01},
		},
		Validate: func(params op.Params) error {
			return validateRate(params, "rate")
		},
		Portable: duplicatePortable,
	}
}

func duplicatePortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	tokens := splitTokens(text)
	for i, t := range tokens {
		if !t.word {
			continue
		}
		if rng.Float64() < rate {
			tokens[i].text = t.text + " " + t.text
		}
	}
	return joinTokens(tokens), nil
}

func dropDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "drop", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.01},
		},
		Validate: func(params op.Params) error {
			return validateRate(params, "rate")
		},
		Portable: dropPortable,
	}
}

// dropPortable deletes words. The first word is never dropped so that the
// sentence keeps an anchor, matching how readers lose mid-sentence words.
// The whitespace run before a dropped word goes with it, so deletion
// never leaves a doubled gap.
func dropPortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	tokens := splitTokens(text)
	words := wordIndexes(tokens)
	for n, idx := range words {
		if n == 0 {
			continue
		}
		if rng.Float64() < rate {
			tokens[idx].text = ""
			if !tokens[idx-1].word {
				tokens[idx-1].text = ""
			}
		}
	}
	return joinTokens(tokens), nil
}

func swapDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "swap", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.5},
		},
		Validate: func(params op.Params) error {
			return validateRate(params, "rate")
		},
		Portable: swapPortable,
	}
}

// swapPortable transposes disjoint adjacent word pairs: after a swap the
// scan advances past both words, so a word moves at most one slot.
func swapPortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	tokens := splitTokens(text)
	words := wordIndexes(tokens)
	for n := 0; n+1 < len(words); {
		if rng.Float64() < rate {
			a, b := words[n], words[n+1]
			tokens[a].text, tokens[b].text = tokens[b].text, tokens[a].text
			n += 2
			continue
		}
		n++
	}
	return joinTokens(tokens), nil
}
