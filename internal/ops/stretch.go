package ops

import (
	"fmt"
	"math/rand/v2"
	"unicode/utf8"

	"garble/internal/op"
)

// Vowel elongation in short words ("cool" -> "coooool"). Eligible words
// are at most max_word_len characters and contain at least one vowel. On
// a hit, one vowel occurrence is picked and repeated between min_repeat
// and max_repeat extra times.

func stretchDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "stretch", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.3},
			{Name: "min_repeat", Value: 2},
			{Name: "max_repeat", Value: 5},
			{Name: "max_word_len", Value: 6},
		},
		Validate: func(params op.Params) error {
			if err := validateRate(params, "rate"); err != nil {
				return err
			}
			minRep := op.Int(params, "min_repeat")
			maxRep := op.Int(params, "max_repeat")
			if minRep < 1 {
				return fmt.Errorf("min_repeat must be at least 1, got %d", minRep)
			}
			if maxRep < minRep {
				return fmt.Errorf("max_repeat (%d) must be >= min_repeat (%d)", maxRep, minRep)
			}
			if op.Int(params, "max_word_len") < 1 {
				return fmt.Errorf("max_word_len must be at least 1")
			}
			return nil
		},
		Portable: stretchPortable,
	}
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func stretchPortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	minRep := op.Int(params, "min_repeat")
	maxRep := op.Int(params, "max_repeat")
	maxLen := op.Int(params, "max_word_len")

	tokens := splitTokens(text)
	for i, t := range tokens {
		if !t.word || utf8.RuneCountInString(t.text) > maxLen {
			continue
		}
		runes := []rune(t.text)
		vowelAt := make([]int, 0, len(runes))
		for j, r := range runes {
			if isVowel(r) {
				vowelAt = append(vowelAt, j)
			}
		}
		if len(vowelAt) == 0 {
			continue
		}
		if rng.Float64() >= rate {
			continue
		}
		pos := vowelAt[rng.IntN(len(vowelAt))]
		extra := minRep + rng.IntN(maxRep-minRep+1)

		stretched := make([]rune, 0, len(runes)+extra)
		stretched = append(stretched, runes[:pos+1]...)
		for n := 0; n < extra; n++ {
			stretched = append(stretched, runes[pos])
		}
		stretched = append(stretched, runes[pos+1:]...)
		tokens[i].text = string(stretched)
	}
	return joinTokens(tokens), nil
}
