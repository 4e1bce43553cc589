package ops

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"garble/internal/op"
)

const pangram = "The quick brown fox jumps over the lazy dog while the band plays on"

func newRNG(seedValue uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seedValue, seedValue^0x9e3779b97f4a7c15))
}

func defByKind(t *testing.T, kind string) *op.Definition {
	t.Helper()
	for _, def := range Definitions() {
		if def.Identity.Kind == kind {
			return def
		}
	}
	t.Fatalf("no definition for kind %q", kind)
	return nil
}

func resolved(t *testing.T, kind string, overrides op.Params) op.Params {
	t.Helper()
	params, err := defByKind(t, kind).Resolve(overrides)
	require.NoError(t, err)
	return params
}

func TestAllKindsResolveDefaults(t *testing.T) {
	for _, def := range Definitions() {
		params, err := def.Resolve(nil)
		require.NoError(t, err, def.Identity.Kind)
		for _, f := range def.Defaults {
			require.NotNil(t, params[f.Name], "%s.%s left unset", def.Identity.Kind, f.Name)
		}
	}
}

func TestRateValidation(t *testing.T) {
	for _, def := range Definitions() {
		hasRate := false
		for _, f := range def.Defaults {
			if f.Name == "rate" {
				hasRate = true
			}
		}
		if !hasRate {
			continue
		}
		_, err := def.Resolve(op.Params{"rate": -0.1})
		require.Error(t, err, "%s accepted a negative rate", def.Identity.Kind)
		_, err = def.Resolve(op.Params{"rate": 1.5})
		require.Error(t, err, "%s accepted a rate above 1", def.Identity.Kind)
	}
}

func TestTypoChangesTextAtFullRate(t *testing.T) {
	params := resolved(t, "typo", op.Params{"rate": 1.0})
	out, err := typoPortable(pangram, newRNG(151), params)
	require.NoError(t, err)
	require.NotEqual(t, pangram, out)
}

func TestTypoZeroRateIsIdentity(t *testing.T) {
	params := resolved(t, "typo", op.Params{"rate": 0.0})
	out, err := typoPortable(pangram, newRNG(151), params)
	require.NoError(t, err)
	require.Equal(t, pangram, out)
}

func TestTypoUnknownKeyboardRejected(t *testing.T) {
	_, err := defByKind(t, "typo").Resolve(op.Params{"keyboard": "dvorak"})
	require.Error(t, err)
}

func TestTypoPreservesNonLetters(t *testing.T) {
	params := resolved(t, "typo", op.Params{"rate": 1.0})
	out, err := typoPortable("2048 + 4096!", newRNG(7), params)
	require.NoError(t, err)
	require.Equal(t, "2048 + 4096!", out)
}

func TestHomoglyphReplacesAllAtFullRate(t *testing.T) {
	params := resolved(t, "homoglyph", op.Params{"rate": 1.0})
	out, err := homoglyphPortable("space", newRNG(3), params)
	require.NoError(t, err)
	// every character of "space" has a confusable alternative
	for _, r := range out {
		require.Greater(t, int(r), 127, "rune %q survived full-rate homoglyph pass", r)
	}
}

func TestHomophoneSwap(t *testing.T) {
	params := resolved(t, "homophone", op.Params{"rate": 1.0})
	out, err := homophonePortable("their", newRNG(9), params)
	require.NoError(t, err)
	require.Contains(t, []string{"there", "they're"}, out)
}

func TestHomophoneKeepsCasingAndPunctuation(t *testing.T) {
	params := resolved(t, "homophone", op.Params{"rate": 1.0})
	out, err := homophonePortable("Their!", newRNG(9), params)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(out, "!"), "lost punctuation: %q", out)
	first := []rune(out)[0]
	require.True(t, first == 'T', "lost capitalization: %q", out)
}

func TestStretchElongatesShortWord(t *testing.T) {
	params := resolved(t, "stretch", op.Params{"rate": 1.0})
	out, err := stretchPortable("cool", newRNG(5), params)
	require.NoError(t, err)
	require.Greater(t, len(out), len("cool"))
	// only vowels are repeated, so stripping repeats must recover a
	// subsequence of the original
	require.True(t, strings.HasPrefix(out, "c"))
	require.True(t, strings.HasSuffix(out, "l"))
}

func TestStretchSkipsLongWords(t *testing.T) {
	params := resolved(t, "stretch", op.Params{"rate": 1.0, "max_word_len": 3})
	out, err := stretchPortable("lengthy", newRNG(5), params)
	require.NoError(t, err)
	require.Equal(t, "lengthy", out)
}

func TestStretchRepeatBoundsValidated(t *testing.T) {
	def := defByKind(t, "stretch")
	_, err := def.Resolve(op.Params{"min_repeat": 0})
	require.Error(t, err)
	_, err = def.Resolve(op.Params{"min_repeat": 4, "max_repeat": 2})
	require.Error(t, err)
}

func TestDuplicateDoublesEveryWord(t *testing.T) {
	params := resolved(t, "duplicate", op.Params{"rate": 1.0})
	out, err := duplicatePortable("alpha beta", newRNG(11), params)
	require.NoError(t, err)
	require.Equal(t, "alpha alpha beta beta", out)
}

func TestDropKeepsFirstWord(t *testing.T) {
	params := resolved(t, "drop", op.Params{"rate": 1.0})
	out, err := dropPortable("keep lose lose lose", newRNG(13), params)
	require.NoError(t, err)
	require.Equal(t, "keep", strings.TrimSpace(out))
}

func TestSwapTransposesDisjointPairs(t *testing.T) {
	params := resolved(t, "swap", op.Params{"rate": 1.0})
	out, err := swapPortable("a b c d", newRNG(17), params)
	require.NoError(t, err)
	require.Equal(t, "b a d c", out)
}

func TestRedactBlocksWords(t *testing.T) {
	params := resolved(t, "redact", op.Params{"rate": 1.0})
	out, err := redactPortable("top secret", newRNG(19), params)
	require.NoError(t, err)
	require.Equal(t, "███ ██████", out)
}

func TestRedactCustomChar(t *testing.T) {
	params := resolved(t, "redact", op.Params{"rate": 1.0, "char": "*"})
	out, err := redactPortable("hush", newRNG(19), params)
	require.NoError(t, err)
	require.Equal(t, "****", out)
}

func TestRedactRejectsEmptyInput(t *testing.T) {
	params := resolved(t, "redact", nil)
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := redactPortable(text, newRNG(1), params)
		require.True(t, errors.Is(err, op.ErrEmptyInput), "input %q: got %v", text, err)
		_, err = redactAccelerated(text, newRNG(1), params)
		require.True(t, errors.Is(err, op.ErrEmptyInput), "accelerated input %q: got %v", text, err)
	}
}

func TestRedactCharValidation(t *testing.T) {
	def := defByKind(t, "redact")
	_, err := def.Resolve(op.Params{"char": ""})
	require.Error(t, err)
	_, err = def.Resolve(op.Params{"char": "##"})
	require.Error(t, err)
}

func TestOCRSingleConfusions(t *testing.T) {
	params := resolved(t, "ocr", op.Params{"rate": 1.0})

	out, err := ocrPortable("rn", newRNG(23), params)
	require.NoError(t, err)
	require.Equal(t, "m", out)

	out, err = ocrPortable("O", newRNG(23), params)
	require.NoError(t, err)
	require.Equal(t, "0", out)
}

func TestZerowidthInsertsOnlyPaletteRunes(t *testing.T) {
	params := resolved(t, "zerowidth", op.Params{"rate": 1.0})
	out, err := zerowidthPortable("abc def", newRNG(29), params)
	require.NoError(t, err)

	stripped := out
	for _, zw := range zeroWidthPalette {
		stripped = strings.ReplaceAll(stripped, string(zw), "")
	}
	require.Equal(t, "abc def", stripped)
	// boundaries: a-b, b-c, d-e, e-f
	require.Equal(t, len([]rune("abc def"))+4, len([]rune(out)))
}

func TestZerowidthSkipsSpaceBoundaries(t *testing.T) {
	params := resolved(t, "zerowidth", op.Params{"rate": 1.0})
	out, err := zerowidthPortable("a b", newRNG(29), params)
	require.NoError(t, err)
	require.Equal(t, "a b", out)
}

func TestUnknownParameterRejected(t *testing.T) {
	_, err := defByKind(t, "typo").Resolve(op.Params{"rte": 0.5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "rte")
}

func TestDropTakesPrecedingGapWithWord(t *testing.T) {
	params := resolved(t, "drop", op.Params{"rate": 1.0})
	out, err := dropPortable("alpha beta gamma delta", newRNG(13), params)
	require.NoError(t, err)
	require.Equal(t, "alpha", out)
}

func TestDropNeverDoublesGaps(t *testing.T) {
	params := resolved(t, "drop", op.Params{"rate": 0.5})
	for _, seedValue := range []uint64{1, 13, 151, 404, 1001} {
		out, err := dropPortable(pangram, newRNG(seedValue), params)
		require.NoError(t, err)
		require.NotContains(t, out, "  ", "seed %d", seedValue)
	}
}

func TestSynonymLiteralUsesCanonicalAlternative(t *testing.T) {
	params := resolved(t, "synonym", op.Params{"rate": 1.0, "lexicon": "colors", "mode": "literal"})
	out, err := synonymPortable("The red balloon floated away.", newRNG(7), params)
	require.NoError(t, err)
	require.Equal(t, "The blue balloon floated away.", out)
}

func TestSynonymPreservesCaseAndTrailer(t *testing.T) {
	params := resolved(t, "synonym", op.Params{"rate": 1.0, "lexicon": "colors", "mode": "literal"})
	out, err := synonymPortable("Red, then green.", newRNG(7), params)
	require.NoError(t, err)
	require.Equal(t, "Blue, then olive.", out)
}

func TestSynonymDriftStaysInLexicon(t *testing.T) {
	params := resolved(t, "synonym", op.Params{"rate": 1.0})
	out, err := synonymPortable("a fast run", newRNG(21), params)
	require.NoError(t, err)
	fields := strings.Fields(out)
	require.Len(t, fields, 3)
	require.Contains(t, []string{"rapid", "swift", "speedy"}, fields[1])
}

func TestSynonymRejectsBadParams(t *testing.T) {
	def := defByKind(t, "synonym")
	_, err := def.Resolve(op.Params{"lexicon": "legalese"})
	require.Error(t, err)
	_, err = def.Resolve(op.Params{"mode": "chaotic"})
	require.Error(t, err)
}

func TestPedantryRewritesMatches(t *testing.T) {
	params := resolved(t, "pedantry", nil)
	cases := map[string]string{
		"Who said that?":           "Whom said that?",
		"ten items or less, then":  "ten items or fewer, then",
		"If I was younger":         "If I were younger",
		"teams cooperate here":     "teams coöperate here",
		"we coordinate the launch": "we coördinate the launch",
		"it was fine":              "it was fine",
	}
	for in, want := range cases {
		out, err := pedantryPortable(in, newRNG(3), params)
		require.NoError(t, err)
		require.Equal(t, want, out)
	}
}

func TestPedantryRateZeroIsIdentity(t *testing.T) {
	params := resolved(t, "pedantry", op.Params{"rate": 0.0})
	out, err := pedantryPortable("Who goes there?", newRNG(3), params)
	require.NoError(t, err)
	require.Equal(t, "Who goes there?", out)
}

func TestQuoteBacktickPair(t *testing.T) {
	params := resolved(t, "quote", nil)
	out, err := quotePortable("run `ls` now", newRNG(5), params)
	require.NoError(t, err)
	require.Equal(t, "run ‘ls’ now", out)
}

func TestQuoteReplacesMatchedDoubles(t *testing.T) {
	params := resolved(t, "quote", nil)
	in := `say "hi" now`
	out, err := quotePortable(in, newRNG(9), params)
	require.NoError(t, err)
	require.NotContains(t, out, `"`)
	require.Len(t, []rune(out), len([]rune(in)))
}

func TestQuoteLeavesUnmatchedAlone(t *testing.T) {
	params := resolved(t, "quote", nil)
	out, err := quotePortable("can't stop", newRNG(11), params)
	require.NoError(t, err)
	require.Equal(t, "can't stop", out)
}

func TestQuoteRejectsParams(t *testing.T) {
	_, err := defByKind(t, "quote").Resolve(op.Params{"rate": 0.5})
	require.Error(t, err)
}
