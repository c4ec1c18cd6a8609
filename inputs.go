package typosquat

import (
	"strings"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
	urlutil "github.com/projectdiscovery/utils/url"
	"golang.org/x/net/publicsuffix"
)

// Target is a brand name parsed from user or trend input
type Target struct {
	Brand  string // brand to generate typos for ex: notion
	Suffix string // (Optional) suffix the brand was seen with ex: .so
	Root   string // (Optional) registered domain ex: notion.so
}

// NewTarget parses a brand name, a domain or a URL into a Target.
// Names that merely contain a dot (ex: Node.js) stay brand names unless
// the right most part is an ICANN managed suffix.
func NewTarget(input string) (*Target, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errorutil.NewWithTag("typosquat", "empty target")
	}
	host := input
	if strings.Contains(input, "://") {
		URL, err := urlutil.Parse(input)
		if err != nil {
			return nil, errorutil.NewWithErr(err).Msgf("failed to parse target %v", input)
		}
		host = URL.Hostname()
	}
	if strings.ContainsAny(host, " \t") || !strings.Contains(host, ".") {
		return &Target{Brand: input}, nil
	}
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	suffix, icann := publicsuffix.PublicSuffix(host)
	if !icann {
		return &Target{Brand: input}, nil
	}
	root, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// input is only a public suffix ex: co.uk
		gologger.Warning().Msgf("target %v is a public suffix and not a valid domain name", host)
		return &Target{Brand: input}, nil
	}
	return &Target{
		Brand:  strings.TrimSuffix(root, "."+suffix),
		Suffix: "." + suffix,
		Root:   root,
	}, nil
}
