package typosquat

import (
	"github.com/jasona7/typosquat/internal/dedupe"
	"github.com/projectdiscovery/gologger"
)

// MaxInMemoryDedupeSize (default : 100 MB)
var MaxInMemoryDedupeSize = 100 * 1024 * 1024

// averageDomainSize is used to turn a candidate count into a byte estimate
const averageDomainSize = 24

type DedupeBackend interface {
	// Upsert adds elem and reports whether it was not seen before
	Upsert(elem string) bool
	// Has reports whether elem was already added
	Has(elem string) bool
	// Len returns number of unique elements
	Len() int
	// Cleanup cleans any residuals after deduping
	Cleanup()
}

// Dedupe keeps track of domains already emitted across targets and sources
type Dedupe struct {
	backend DedupeBackend
}

// NewDedupe returns a domain dedupe sized for the expected number of candidates.
// Note: If expected is not correct/specified a large run may consume lot of memory
func NewDedupe(expected int) *Dedupe {
	d := &Dedupe{}
	if expected*averageDomainSize <= MaxInMemoryDedupeSize {
		d.backend = dedupe.NewMapBackend()
		return d
	}
	backend, err := dedupe.NewLevelDBBackend()
	if err != nil {
		gologger.Warning().Msgf("could not create disk dedupe backend, falling back to memory: %v", err)
		d.backend = dedupe.NewMapBackend()
		return d
	}
	d.backend = backend
	return d
}

// Add records domain and reports whether it is new
func (d *Dedupe) Add(domain string) bool {
	return d.backend.Upsert(domain)
}

// Seen reports whether domain was already added
func (d *Dedupe) Seen(domain string) bool {
	return d.backend.Has(domain)
}

// Filter appends candidates with unseen domains to dst, in order
func (d *Dedupe) Filter(dst []*Candidate, candidates ...*Candidate) []*Candidate {
	for _, c := range candidates {
		if d.backend.Upsert(c.Domain) {
			dst = append(dst, c)
		}
	}
	return dst
}

// Len returns number of unique domains seen
func (d *Dedupe) Len() int {
	return d.backend.Len()
}

// Close releases the dedupe storage
func (d *Dedupe) Close() {
	d.backend.Cleanup()
}
