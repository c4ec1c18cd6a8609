package checker

import "github.com/jasona7/typosquat"

// Result is the availability verdict of one candidate
type Result struct {
	Candidate *typosquat.Candidate `json:"candidate"`
	HasDNS    bool                 `json:"has_dns"`
	// RDAPRegistered is nil when registration could not be confirmed
	RDAPRegistered *bool `json:"rdap_registered"`
	Available      bool  `json:"available"`
}

// Available returns only the results marked as available
func Available(results []Result) []Result {
	out := []Result{}
	for _, r := range results {
		if r.Available {
			out = append(out, r)
		}
	}
	return out
}
