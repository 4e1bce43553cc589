package ops

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"garble/internal/op"
)

// Lexicon-based word drift. Words are looked up case-insensitively with
// trailing punctuation kept out of the lookup, like homophone. Two
// modes: "literal" always takes the canonical first alternative,
// "drift" draws one.

func synonymDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "synonym", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.01},
			{Name: "lexicon", Value: "synonyms"},
			{Name: "mode", Value: "drift"},
		},
		Validate: func(params op.Params) error {
			if err := validateRate(params, "rate"); err != nil {
				return err
			}
			lexicon := op.String(params, "lexicon")
			if _, ok := synonymLexicons[lexicon]; !ok {
				return fmt.Errorf("unknown lexicon %q, have %s", lexicon, strings.Join(lexiconNames(), ", "))
			}
			switch op.String(params, "mode") {
			case "literal", "drift":
				return nil
			default:
				return fmt.Errorf("mode must be %q or %q", "literal", "drift")
			}
		},
		Portable: synonymPortable,
	}
}

func synonymPortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	lexicon := synonymLexicons[op.String(params, "lexicon")]
	drift := op.String(params, "mode") == "drift"

	tokens := splitTokens(text)
	for i, t := range tokens {
		if !t.word {
			continue
		}
		core := strings.TrimRight(t.text, ".,!?;:\"')")
		trailer := t.text[len(core):]
		alts, ok := lexicon[strings.ToLower(core)]
		if !ok {
			continue
		}
		if rng.Float64() >= rate {
			continue
		}
		repl := alts[0]
		if drift {
			repl = alts[rng.IntN(len(alts))]
		}
		tokens[i].text = matchCase(core, repl) + trailer
	}
	return joinTokens(tokens), nil
}

func lexiconNames() []string {
	names := make([]string, 0, len(synonymLexicons))
	for name := range synonymLexicons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
