package typosquat

import (
	"context"
	"io"
	"strings"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

var normalizer = strings.NewReplacer(" ", "", "-", "", ".", "")

// Normalize returns the working form of a brand name: lower-cased
// with spaces, hyphens and dots removed
func Normalize(name string) string {
	return normalizer.Replace(strings.ToLower(name))
}

// Generate returns every algorithmic typo candidate of name across suffixes.
// It never fails: an empty normalized name or an empty suffix list yields
// an empty result. Output order is stable for identical inputs.
func Generate(name string, suffixes []string) []*Candidate {
	clean := Normalize(name)
	if clean == "" || len(suffixes) == 0 {
		return []*Candidate{}
	}

	// aggregate in family order, first family wins on collisions
	seenTypos := map[string]struct{}{}
	unique := []mutation{}
	for _, family := range families {
		for _, m := range family(clean) {
			if m.value == clean {
				continue
			}
			if _, ok := seenTypos[m.value]; ok {
				continue
			}
			seenTypos[m.value] = struct{}{}
			unique = append(unique, m)
		}
	}

	candidates := make([]*Candidate, 0, (len(unique)+1)*len(suffixes))
	seenDomains := map[string]struct{}{}
	emit := func(typo, suffix string, family Family) {
		domain := typo + suffix
		if _, ok := seenDomains[domain]; ok {
			return
		}
		seenDomains[domain] = struct{}{}
		candidates = append(candidates, &Candidate{
			Domain:     domain,
			Original:   name,
			Suffix:     suffix,
			Family:     family,
			Confidence: ConfidenceFor(family),
		})
	}
	for _, m := range unique {
		for _, suffix := range suffixes {
			emit(m.value, suffix, m.family)
		}
	}
	// the brand itself on every suffix
	for _, suffix := range suffixes {
		emit(clean, suffix, FamilySuffixSwap)
	}
	return candidates
}

// Options of a batch Generator
type Options struct {
	// Brand names to generate typos for
	Names []string
	// Suffixes appended to every typo
	// if empty DefaultSuffixes is used
	Suffixes []string
	// Limits output results (0 = no limit)
	Limit int
}

// Generator runs Generate over many brand names
type Generator struct {
	Options        *Options
	candidateCount int
}

// New creates and returns new generator instance from options
func New(opts *Options) (*Generator, error) {
	if len(opts.Names) == 0 {
		return nil, errorutil.NewWithTag("typosquat", "no brand names provided to generate typos")
	}
	if len(opts.Suffixes) == 0 {
		opts.Suffixes = DefaultSuffixes
	}
	if err := ValidateSuffixes(opts.Suffixes); err != nil {
		return nil, err
	}
	// purge duplicates if any
	if dedupe := sliceutil.Dedupe(opts.Suffixes); len(dedupe) != len(opts.Suffixes) {
		gologger.Warning().Msgf("%v duplicate suffixes found. purging them..", len(opts.Suffixes)-len(dedupe))
		opts.Suffixes = dedupe
	}
	if dedupe := sliceutil.Dedupe(opts.Names); len(dedupe) != len(opts.Names) {
		gologger.Warning().Msgf("%v duplicate names found. purging them..", len(opts.Names)-len(dedupe))
		opts.Names = dedupe
	}
	return &Generator{Options: opts}, nil
}

// Execute generates candidates of all names and writes them to a channel.
// Domains are unique per name, not across names.
func (g *Generator) Execute(ctx context.Context) <-chan *Candidate {
	results := make(chan *Candidate, len(g.Options.Suffixes))
	go func() {
		defer close(results)
		for _, name := range g.Options.Names {
			if Normalize(name) == "" {
				gologger.Warning().Msgf("brand `%v` is empty after normalization, skipping", name)
				continue
			}
			for _, c := range Generate(name, g.Options.Suffixes) {
				select {
				case <-ctx.Done():
					return
				case results <- c:
				}
			}
		}
	}()
	return results
}

// ExecuteWithWriter executes Generator and writes one domain per line to Writer
func (g *Generator) ExecuteWithWriter(Writer io.Writer) error {
	if Writer == nil {
		return errorutil.NewWithTag("typosquat", "writer destination cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	counter := 0
	for c := range g.Execute(ctx) {
		if g.Options.Limit > 0 && counter == g.Options.Limit {
			return nil
		}
		if _, err := Writer.Write([]byte(c.Domain + "\n")); err != nil {
			return err
		}
		counter++
	}
	return nil
}

// EstimateCount counts the candidates that will be created
// and saves it to be used later on with `CandidateCount()` method
func (g *Generator) EstimateCount() int {
	counter := 0
	for _, name := range g.Options.Names {
		counter += len(Generate(name, g.Options.Suffixes))
	}
	g.candidateCount = counter
	return counter
}

// CandidateCount returns total estimated candidate count
func (g *Generator) CandidateCount() int {
	if g.candidateCount == 0 {
		g.EstimateCount()
	}
	return g.candidateCount
}
