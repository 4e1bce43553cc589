package ops

// qwertyNeighbors maps each lowercase key to its physical neighbors on a
// US QWERTY board. Neighbor order is part of the reproducibility
// contract: both backends index into these slices with the same draw.
var qwertyNeighbors = map[rune][]rune{
	'q': {'w', 'a'},
	'w': {'q', 'e', 's'},
	'e': {'w', 'r', 'd'},
	'r': {'e', 't', 'f'},
	't': {'r', 'y', 'g'},
	'y': {'t', 'u', 'h'},
	'u': {'y', 'i', 'j'},
	'i': {'u', 'o', 'k'},
	'o': {'i', 'p', 'l'},
	'p': {'o', 'l'},
	'a': {'q', 's', 'z'},
	's': {'a', 'd', 'w', 'x'},
	'd': {'s', 'f', 'e', 'c'},
	'f': {'d', 'g', 'r', 'v'},
	'g': {'f', 'h', 't', 'b'},
	'h': {'g', 'j', 'y', 'n'},
	'j': {'h', 'k', 'u', 'm'},
	'k': {'j', 'l', 'i'},
	'l': {'k', 'o', 'p'},
	'z': {'a', 'x'},
	'x': {'z', 'c', 's'},
	'c': {'x', 'v', 'd'},
	'v': {'c', 'b', 'f'},
	'b': {'v', 'n', 'g'},
	'n': {'b', 'm', 'h'},
	'm': {'n', 'j'},
}

// keyboards names the supported layouts.
var keyboards = map[string]map[rune][]rune{
	"qwerty": qwertyNeighbors,
}

// homoglyphs maps Latin characters to visually confusable substitutes
// (Cyrillic, Greek and fullwidth forms). Alternative order matters for
// reproducibility.
var homoglyphs = map[rune][]rune{
	'a': {'а', 'α'}, // а, α
	'c': {'с', 'ϲ'}, // с, ϲ
	'e': {'е', 'ε'}, // е, ε
	'i': {'і', 'ι'}, // і, ι
	'o': {'о', 'ο'}, // о, ο
	'p': {'р', 'ρ'}, // р, ρ
	's': {'ѕ'},           // ѕ
	'x': {'х', 'χ'}, // х, χ
	'y': {'у', 'γ'}, // у, γ
	'A': {'А', 'Α'}, // А, Α
	'B': {'В', 'Β'}, // В, Β
	'C': {'С', 'Ϲ'}, // С, Ϲ
	'E': {'Е', 'Ε'}, // Е, Ε
	'H': {'Н', 'Η'}, // Н, Η
	'K': {'К', 'Κ'}, // К, Κ
	'M': {'М', 'Μ'}, // М, Μ
	'O': {'О', 'Ο'}, // О, Ο
	'P': {'Р', 'Ρ'}, // Р, Ρ
	'T': {'Т', 'Τ'}, // Т, Τ
	'X': {'Х', 'Χ'}, // Х, Χ
}

// homophoneGroups are small interchangeable-by-sound word sets. Every
// member maps to the other members of its group.
var homophoneGroups = [][]string{
	{"their", "there", "they're"},
	{"to", "too", "two"},
	{"your", "you're"},
	{"its", "it's"},
	{"then", "than"},
	{"affect", "effect"},
	{"accept", "except"},
	{"weather", "whether"},
	{"bare", "bear"},
	{"brake", "break"},
	{"buy", "by", "bye"},
	{"cell", "sell"},
	{"hear", "here"},
	{"hole", "whole"},
	{"know", "no"},
	{"knight", "night"},
	{"mail", "male"},
	{"meat", "meet"},
	{"pair", "pear", "pare"},
	{"peace", "piece"},
	{"plain", "plane"},
	{"right", "write", "rite"},
	{"sea", "see"},
	{"sole", "soul"},
	{"stationary", "stationery"},
	{"steal", "steel"},
	{"tail", "tale"},
	{"wait", "weight"},
	{"weak", "week"},
	{"wear", "where"},
}

// homophoneTable is derived from homophoneGroups at init: word ->
// alternatives in group order, excluding the word itself.
var homophoneTable = buildHomophoneTable(homophoneGroups)

func buildHomophoneTable(groups [][]string) map[string][]string {
	table := make(map[string][]string)
	for _, group := range groups {
		for _, word := range group {
			alts := make([]string, 0, len(group)-1)
			for _, alt := range group {
				if alt != word {
					alts = append(alts, alt)
				}
			}
			if len(alts) > 0 {
				table[word] = alts
			}
		}
	}
	return table
}

// ocrPattern is a scanner-style misread. Longer sources are tried first
// so "rn" beats "r".
type ocrPattern struct {
	src string
	dst string
}

var ocrPatterns = []ocrPattern{
	{"rn", "m"},
	{"cl", "d"},
	{"vv", "w"},
	{"m", "rn"},
	{"w", "vv"},
	{"l", "1"},
	{"O", "0"},
	{"S", "5"},
	{"B", "8"},
	{"Z", "2"},
	{"g", "q"},
	{"0", "O"},
	{"1", "l"},
}

// zeroWidthPalette holds the characters zerowidth injects: zero width
// space, non-joiner, joiner, no-break space (U+FEFF) and word joiner.
var zeroWidthPalette = []rune{'\u200b', '\u200c', '\u200d', '\ufeff', '\u2060'}

// synonymLexicons maps a lexicon name to word -> alternatives. The first
// alternative is the canonical ("literal") replacement; order is part of
// the reproducibility contract.
var synonymLexicons = map[string]map[string][]string{
	"synonyms": {
		"fast":   {"rapid", "swift", "speedy"},
		"quick":  {"swift", "brisk", "prompt"},
		"slow":   {"sluggish", "gradual", "leisurely"},
		"big":    {"large", "sizable", "vast"},
		"small":  {"little", "compact", "modest"},
		"happy":  {"glad", "cheerful", "content"},
		"sad":    {"unhappy", "gloomy", "downcast"},
		"smart":  {"clever", "bright", "sharp"},
		"easy":   {"simple", "effortless", "trivial"},
		"hard":   {"difficult", "tough", "demanding"},
		"begin":  {"start", "commence", "initiate"},
		"end":    {"finish", "conclude", "terminate"},
		"old":    {"aged", "ancient", "dated"},
		"new":    {"fresh", "recent", "novel"},
		"good":   {"fine", "decent", "solid"},
		"bad":    {"poor", "awful", "dreadful"},
	},
	"colors": {
		"red":    {"blue", "crimson", "scarlet"},
		"blue":   {"red", "azure", "teal"},
		"green":  {"olive", "emerald", "lime"},
		"yellow": {"amber", "gold", "ochre"},
		"purple": {"violet", "magenta", "mauve"},
		"orange": {"amber", "rust", "tangerine"},
		"black":  {"white", "ebony", "charcoal"},
		"white":  {"black", "ivory", "chalk"},
		"brown":  {"tan", "umber", "sepia"},
		"pink":   {"rose", "salmon", "fuchsia"},
		"gray":   {"grey", "slate", "ash"},
		"grey":   {"gray", "slate", "ash"},
	},
	"corporate": {
		"use":     {"leverage", "utilize", "operationalize"},
		"improve": {"optimize", "streamline", "uplevel"},
		"talk":    {"sync", "align", "touch base"},
		"plan":    {"roadmap", "strategize", "scope"},
		"idea":    {"initiative", "proposal", "vision"},
		"problem": {"blocker", "bottleneck", "gap"},
		"help":    {"enable", "empower", "unblock"},
		"team":    {"org", "squad", "workstream"},
		"work":    {"bandwidth", "throughput", "deliverables"},
		"goal":    {"target", "objective", "north star"},
		"meeting": {"sync", "standup", "touchpoint"},
		"change":  {"pivot", "realignment", "transformation"},
	},
	"academic": {
		"show":  {"demonstrate", "illustrate", "evince"},
		"use":   {"employ", "utilize", "adopt"},
		"make":  {"construct", "formulate", "produce"},
		"but":   {"however", "nevertheless", "yet"},
		"so":    {"thus", "hence", "therefore"},
		"about": {"regarding", "concerning", "apropos"},
		"start": {"commence", "initiate", "undertake"},
		"check": {"examine", "verify", "scrutinize"},
		"find":  {"ascertain", "discern", "identify"},
		"think": {"posit", "hypothesize", "contend"},
		"say":   {"assert", "articulate", "contend"},
		"big":   {"substantial", "considerable", "significant"},
	},
}

// quotePairTable maps a straight quote glyph to the decorative pairs it
// can become. Matched open/close occurrences are replaced together.
var quotePairTable = map[rune][][2]string{
	'"':  {{"“", "”"}, {"„", "”"}, {"«", "»"}},
	'\'': {{"‘", "’"}, {"‚", "’"}, {"‹", "›"}},
	'`':  {{"‘", "’"}},
}
