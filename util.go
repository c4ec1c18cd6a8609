package typosquat

import (
	"strings"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
	"golang.org/x/net/publicsuffix"
)

// ValidateSuffixes checks that every suffix is a dot-prefixed domain ending
func ValidateSuffixes(suffixes []string) error {
	invalid := []string{}
	for _, suffix := range suffixes {
		if !strings.HasPrefix(suffix, ".") || len(suffix) < 2 || strings.ContainsAny(suffix, " \t/") || strings.Contains(suffix, "..") {
			invalid = append(invalid, suffix)
			continue
		}
		if !isPublicSuffix(suffix) {
			gologger.Verbose().Msgf("suffix %v is not a known public suffix", suffix)
		}
	}
	if len(invalid) > 0 {
		return errorutil.NewWithTag("typosquat", "invalid suffixes `%v` (must start with a dot ex: .com)", strings.Join(invalid, ","))
	}
	return nil
}

// isPublicSuffix reports whether suffix (ex: .co.uk) is listed in the public suffix list
func isPublicSuffix(suffix string) bool {
	label := strings.TrimPrefix(strings.ToLower(suffix), ".")
	ps, icann := publicsuffix.PublicSuffix("example." + label)
	return icann && ps == label
}
