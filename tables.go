package typosquat

// qwertyNeighbors maps each letter to the keys physically next to it
var qwertyNeighbors = map[rune]string{
	'q': "wa", 'w': "qeas", 'e': "wrds", 'r': "etdf", 't': "ryfg",
	'y': "tugh", 'u': "yijh", 'i': "uojk", 'o': "iplk", 'p': "ol",
	'a': "qwsz", 's': "weadzx", 'd': "ersfxc", 'f': "rtdgcv",
	'g': "tyfhvb", 'h': "yugjbn", 'j': "uihknm", 'k': "oijlm",
	'l': "opk", 'z': "asx", 'x': "zsdc", 'c': "xdfv", 'v': "cfgb",
	'b': "vghn", 'n': "bhjm", 'm': "njk",
}

// singleHomoglyphs are one character visual/phonetic look-alikes
var singleHomoglyphs = map[rune][]rune{
	'l': {'1', 'i'},
	'i': {'1', 'l'},
	'o': {'0'},
	'0': {'o'},
	'1': {'l', 'i'},
	's': {'5', 'z'},
	'5': {'s'},
	'a': {'@', '4'},
	'e': {'3'},
	'b': {'6'},
	'g': {'9'},
	't': {'7'},
}

type patternHomoglyph struct {
	pattern     string
	replacement string
}

// patternHomoglyphs are multi character look-alikes, applied in order
var patternHomoglyphs = []patternHomoglyph{
	{pattern: "rn", replacement: "m"},
	{pattern: "cl", replacement: "d"},
	{pattern: "vv", replacement: "w"},
}

// DefaultSuffixes is used when no suffix is configured
var DefaultSuffixes = []string{".com", ".net", ".org", ".io", ".ai", ".co"}

// DefaultExtendedSuffixes is the second tier of suffixes
var DefaultExtendedSuffixes = []string{".app", ".dev", ".xyz", ".me", ".gg", ".tv"}
