package ops

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"garble/internal/op"
)

// Fat-finger keyboard edits. Per eligible character (an ASCII letter on
// the configured layout) one probability draw decides whether to edit,
// and one action draw picks among neighbor substitution, doubling, drop
// and transposition. The accelerated backend replays the identical draw
// sequence over bytes instead of rune slices.

func typoDefinition() *op.Definition {
	return &op.Definition{
		Identity: op.Identity{Kind: "typo", Version: "1"},
		Defaults: []op.Field{
			{Name: "rate", Value: 0.02},
			{Name: "keyboard", Value: "qwerty"},
		},
		Validate: func(params op.Params) error {
			if err := validateRate(params, "rate"); err != nil {
				return err
			}
			name := op.String(params, "keyboard")
			if _, ok := keyboards[name]; !ok {
				return fmt.Errorf("unknown keyboard layout %q", name)
			}
			return nil
		},
		Portable:    typoPortable,
		Accelerated: typoAccelerated,
	}
}

const (
	typoSubstitute = iota
	typoDouble
	typoDrop
	typoTranspose
	typoActions
)

func typoPortable(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	layout := keyboards[op.String(params, "keyboard")]

	runes := []rune(text)
	out := make([]rune, 0, len(runes)+4)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		neighbors, ok := layout[unicode.ToLower(r)]
		if !ok {
			out = append(out, r)
			continue
		}
		if rng.Float64() >= rate {
			out = append(out, r)
			continue
		}
		switch rng.IntN(typoActions) {
		case typoSubstitute:
			n := neighbors[rng.IntN(len(neighbors))]
			if unicode.IsUpper(r) {
				n = unicode.ToUpper(n)
			}
			out = append(out, n)
		case typoDouble:
			out = append(out, r, r)
		case typoDrop:
			// character swallowed
		case typoTranspose:
			if i+1 < len(runes) {
				out = append(out, runes[i+1], r)
				i++
			} else {
				out = append(out, r)
			}
		}
	}
	return string(out), nil
}

// acceleratedLayouts indexes neighbor bytes by lowercase ASCII key, one
// table per layout, built once at package load.
var acceleratedLayouts = buildAcceleratedLayouts()

func buildAcceleratedLayouts() map[string]*[128][]byte {
	tables := make(map[string]*[128][]byte, len(keyboards))
	for name, layout := range keyboards {
		var table [128][]byte
		for key, neighbors := range layout {
			row := make([]byte, len(neighbors))
			for i, n := range neighbors {
				row[i] = byte(n)
			}
			table[key] = row
		}
		tables[name] = &table
	}
	return tables
}

func typoAccelerated(text string, rng *rand.Rand, params op.Params) (string, error) {
	rate := op.Float(params, "rate")
	if rate <= 0 || text == "" {
		return text, nil
	}
	table := acceleratedLayouts[op.String(params, "keyboard")]

	var b strings.Builder
	b.Grow(len(text) + len(text)/8 + 4)
	for i := 0; i < len(text); {
		c := text[i]
		if c >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(text[i:])
			b.WriteString(text[i : i+size])
			i += size
			continue
		}
		lower := c | 0x20
		neighbors := []byte(nil)
		if lower >= 'a' && lower <= 'z' {
			neighbors = table[lower]
		}
		if neighbors == nil {
			b.WriteByte(c)
			i++
			continue
		}
		if rng.Float64() >= rate {
			b.WriteByte(c)
			i++
			continue
		}
		switch rng.IntN(typoActions) {
		case typoSubstitute:
			n := neighbors[rng.IntN(len(neighbors))]
			if c >= 'A' && c <= 'Z' {
				n -= 'a' - 'A'
			}
			b.WriteByte(n)
			i++
		case typoDouble:
			b.WriteByte(c)
			b.WriteByte(c)
			i++
		case typoDrop:
			i++
		case typoTranspose:
			if i+1 < len(text) {
				_, size := utf8.DecodeRuneInString(text[i+1:])
				b.WriteString(text[i+1 : i+1+size])
				b.WriteByte(c)
				i += 1 + size
			} else {
				b.WriteByte(c)
				i++
			}
		}
	}
	return b.String(), nil
}
