package scorer

import "unicode/utf8"

// suffixQuality is how desirable a suffix is on a 0-1 scale
var suffixQuality = map[string]float64{
	".com": 1.0, ".net": 0.7, ".org": 0.65,
	".io": 0.8, ".ai": 0.85, ".co": 0.75,
	".app": 0.6, ".dev": 0.55, ".xyz": 0.3,
	".me": 0.4, ".gg": 0.45, ".tv": 0.4,
}

const defaultSuffixQuality = 0.3

// SuffixQuality scores a suffix on a 0-1 scale
func SuffixQuality(suffix string) float64 {
	if q, ok := suffixQuality[suffix]; ok {
		return q
	}
	return defaultSuffixQuality
}

// LengthQuality scores a name on a 0-1 scale by character count, shorter is better
func LengthQuality(name string) float64 {
	switch n := utf8.RuneCountInString(name); {
	case n <= 5:
		return 1.0
	case n <= 8:
		return 0.8
	case n <= 12:
		return 0.6
	case n <= 16:
		return 0.4
	default:
		return 0.2
	}
}
