package ops

import (
	"math/rand/v2"
	"strings"

	"garble/internal/op"
)

// Grammar-pedantry rewriting: hypercorrect edits applied wherever their
// word pattern matches. Defaults to rewriting every match, which is what
// a pedant does; rate exists to dose it down in a composition.

type pedantRule struct {
	match []string // lowercase word sequence
	repl  []string
}

// Tried in order at each word position. Sequences never overlap, so
// order only matters for reproducibility, not outcome.
var pedantRules = []pedantRule{
	{match: []string{"if", "i", "was"}, repl: []string{"if", "i", "were"}},
	{match: []string{"or", "less"}, repl: []string{"or", "fewer"}},
	{match: []string{"who"}, repl: []string{"whom"}},
	{match: []string{"cooperate"}, repl: []string{"coöperate"}},
	{match: []string{"coordinate"}, repl: []string{"coördinate"}},
}

func pedantryDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "pedantry", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 1.0},
		},
		Validate: func(params op.Params) error {
			return validateRate(params, "rate")
		},
		Portable: pedantryPortable,
	}
}

func pedantryPortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	tokens := splitTokens(text)
	words := wordIndexes(tokens)

	for n := 0; n < len(words); {
		rule, ok := matchPedantRule(tokens, words, n)
		if !ok {
			n++
			continue
		}
		if rng.Float64() >= rate {
			n++
			continue
		}
		for j, repl := range rule.repl {
			idx := words[n+j]
			core := strings.TrimRight(tokens[idx].text, ".,!?;:\"')")
			trailer := tokens[idx].text[len(core):]
			tokens[idx].text = matchCase(core, repl) + trailer
		}
		n += len(rule.match)
	}
	return joinTokens(tokens), nil
}

func matchPedantRule(tokens []token, words []int, n int) (pedantRule, bool) {
	for _, rule := range pedantRules {
		if n+len(rule.match) > len(words) {
			continue
		}
		matched := true
		for j, want := range rule.match {
			core := strings.TrimRight(tokens[words[n+j]].text, ".,!?;:\"')")
			if strings.ToLower(core) != want {
				matched = false
				break
			}
		}
		if matched {
			return rule, true
		}
	}
	return pedantRule{}, false
}
