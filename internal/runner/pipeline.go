package runner

import (
	"context"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jasona7/typosquat"
	"github.com/jasona7/typosquat/internal/checker"
	"github.com/jasona7/typosquat/internal/llm"
	"github.com/jasona7/typosquat/internal/report"
	"github.com/jasona7/typosquat/internal/scorer"
	"github.com/jasona7/typosquat/internal/trends"
	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
)

const (
	// velocity given to targets passed on the command line
	manualVelocity = 2.0
	manualSource   = "manual"
	// rough number of candidates per name and suffix, used to size the dedupe
	expectedPerSuffix = 64
)

// availabilityChecker is satisfied by *checker.Checker
type availabilityChecker interface {
	Check(ctx context.Context, candidates []*typosquat.Candidate) ([]checker.Result, error)
}

// Runner wires the scan stages together
type Runner struct {
	options  *Options
	config   *typosquat.Config
	suffixes []string
	sources  []trends.Source
	llm      llm.Completer
	checker  availabilityChecker
	out      io.Writer
	now      func() time.Time
}

// New creates a runner from cli options
func New(options *Options) (*Runner, error) {
	cfg, err := loadConfig(options.TyposquatConfig)
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("failed to read typosquat config %v", options.TyposquatConfig)
	}
	r := &Runner{
		options: options,
		config:  cfg,
		sources: []trends.Source{trends.NewGoogleTrends(""), trends.NewGoogleTrendsRising("", nil), trends.NewHackerNews("", 0)},
		out:     os.Stdout,
		now:     time.Now,
	}
	if r.suffixes, err = r.resolveSuffixes(); err != nil {
		return nil, err
	}
	if !options.SkipLLM && !options.GenerateOnly {
		client, err := llm.NewClientFromEnv()
		if err != nil {
			gologger.Warning().Msgf("LLM steps disabled: %v", err)
		} else {
			r.llm = client
		}
	}
	if !options.SkipCheck {
		r.checker = checker.New(&checker.Options{
			DNSDelay:  time.Duration(cfg.RateLimits.DNSDelayMs) * time.Millisecond,
			RDAPDelay: time.Duration(cfg.RateLimits.RDAPDelayMs) * time.Millisecond,
			Resolvers: cfg.Resolvers,
		})
	}
	return r, nil
}

// resolveSuffixes returns -suffix values, or tier1 (plus tier2 with -tier2) from config
func (r *Runner) resolveSuffixes() ([]string, error) {
	suffixes := []string(r.options.Suffixes)
	if len(suffixes) == 0 {
		suffixes = r.config.Suffixes.Tier1
		if r.options.Tier2 {
			suffixes = r.config.AllSuffixes()
		}
	}
	if err := typosquat.ValidateSuffixes(suffixes); err != nil {
		return nil, err
	}
	return suffixes, nil
}

// Generate prints algorithmic candidates of the cli targets to w
func (r *Runner) Generate(w io.Writer) error {
	names := []string{}
	for _, input := range r.options.Targets {
		target, err := typosquat.NewTarget(input)
		if err != nil {
			gologger.Warning().Msgf("skipping target %q: %v", input, err)
			continue
		}
		names = append(names, target.Brand)
	}
	g, err := typosquat.New(&typosquat.Options{Names: names, Suffixes: r.suffixes, Limit: r.options.Limit})
	if err != nil {
		return err
	}
	gologger.Info().Msgf("Generating %v candidates", g.EstimateCount())
	return g.ExecuteWithWriter(w)
}

// Run executes every stage and returns all scored domains best first.
// A stage producing nothing ends the run early without error.
func (r *Runner) Run(ctx context.Context) ([]scorer.Scored, error) {
	items := r.collect(ctx)

	targets := r.selectTargets(ctx, items)
	if len(targets) == 0 {
		gologger.Info().Msgf("No targets found. Exiting.")
		return nil, nil
	}

	candidates := r.generate(ctx, targets)
	if len(candidates) == 0 {
		gologger.Info().Msgf("No typo candidates generated. Exiting.")
		return nil, nil
	}

	available, err := r.check(ctx, candidates)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		gologger.Info().Msgf("No available domains found. Exiting.")
		return nil, nil
	}

	scored := r.score(ctx, available, items)

	maxPerBrand := r.config.MaxPerBrand
	if r.options.MaxPerBrand > 0 {
		maxPerBrand = r.options.MaxPerBrand
	}
	display := scorer.Diversify(scored, maxPerBrand)

	path, err := report.WriteJSON(scored, r.options.Output, r.now())
	if err != nil {
		return scored, err
	}
	gologger.Info().Msgf("Full results written to %v", path)
	if err := report.WriteGitHubSummary(display, r.options.Top); err != nil {
		gologger.Warning().Msgf("failed to write step summary: %v", err)
	}
	report.Print(r.out, display, r.options.Top)
	return scored, nil
}

// collect returns cli targets as trend items, or fetches live trends
func (r *Runner) collect(ctx context.Context) []trends.Item {
	if len(r.options.Targets) == 0 {
		gologger.Info().Msgf("Collecting trends...")
		return trends.Collect(ctx, r.sources...)
	}
	items := []trends.Item{}
	for _, input := range r.options.Targets {
		target, err := typosquat.NewTarget(input)
		if err != nil {
			gologger.Warning().Msgf("skipping target %q: %v", input, err)
			continue
		}
		gologger.Info().Msgf("Using manual target: %v", target.Brand)
		items = append(items, trends.Item{Name: target.Brand, Source: manualSource, Velocity: manualVelocity})
	}
	return trends.Merge(items)
}

// selectTargets narrows trends down to the names worth generating typos for.
// Manual targets are used as is.
func (r *Runner) selectTargets(ctx context.Context, items []trends.Item) []string {
	if len(items) == 0 {
		return nil
	}
	if len(r.options.Targets) == 0 && r.llm != nil {
		gologger.Info().Msgf("Filtering trends with LLM...")
		selected, err := llm.FilterTrends(ctx, r.llm, r.config.LLM.FilterModel, items, r.config.MaxTargets)
		if err == nil {
			names := make([]string, 0, len(selected))
			for _, t := range selected {
				names = append(names, t.Name)
			}
			gologger.Info().Msgf("Selected %d targets", len(names))
			return names
		}
		gologger.Warning().Msgf("LLM trend filter failed, using fastest trends: %v", err)
	}
	ranked := append([]trends.Item{}, items...)
	if len(r.options.Targets) == 0 {
		trends.SortByVelocity(ranked)
	}
	names := []string{}
	for _, item := range ranked {
		if r.config.MaxTargets > 0 && len(names) == r.config.MaxTargets {
			break
		}
		names = append(names, item.Name)
	}
	return names
}

// generate merges algorithmic and LLM candidates of every target. Domains
// are unique across targets and each target keeps at most
// MaxTyposPerTarget candidates, highest confidence first.
func (r *Runner) generate(ctx context.Context, targets []string) []*typosquat.Candidate {
	gologger.Info().Msgf("Generating typo candidates...")
	seen := typosquat.NewDedupe(len(targets) * len(r.suffixes) * expectedPerSuffix)
	defer seen.Close()

	all := []*typosquat.Candidate{}
	for _, name := range targets {
		candidates := typosquat.Generate(name, r.suffixes)
		if r.llm != nil {
			creative, err := llm.CreativeTypos(ctx, r.llm, r.config.LLM.CreativeModel, name, r.suffixes, r.config.LLM.MaxEditDistance)
			if err != nil {
				gologger.Warning().Msgf("LLM typo generation failed for %q: %v", name, err)
			} else {
				candidates = append(candidates, creative...)
			}
		}
		unique := seen.Filter(nil, candidates...)
		all = append(all, capByConfidence(unique, r.config.MaxTyposPerTarget)...)
	}
	gologger.Info().Msgf("Generated %d unique candidates", len(all))
	return all
}

// capByConfidence keeps the max highest confidence candidates in their original order
func capByConfidence(candidates []*typosquat.Candidate, max int) []*typosquat.Candidate {
	if max <= 0 || len(candidates) <= max {
		return candidates
	}
	ranked := append([]*typosquat.Candidate{}, candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})
	keep := make(map[string]struct{}, max)
	for _, c := range ranked[:max] {
		keep[c.Domain] = struct{}{}
	}
	out := make([]*typosquat.Candidate, 0, max)
	for _, c := range candidates {
		if _, ok := keep[c.Domain]; ok {
			out = append(out, c)
		}
	}
	return out
}

// check returns the available candidates; without a checker all are available
func (r *Runner) check(ctx context.Context, candidates []*typosquat.Candidate) ([]checker.Result, error) {
	if r.checker == nil {
		results := make([]checker.Result, 0, len(candidates))
		for _, c := range candidates {
			results = append(results, checker.Result{Candidate: c, Available: true})
		}
		return results, nil
	}
	gologger.Info().Msgf("Checking availability of %d domains...", len(candidates))
	results, err := r.checker.Check(ctx, candidates)
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("availability check interrupted")
	}
	available := checker.Available(results)
	gologger.Info().Msgf("%d available domains", len(available))
	return available, nil
}

// score rates available domains with trend velocities and LLM brand assessments
func (r *Runner) score(ctx context.Context, available []checker.Result, items []trends.Item) []scorer.Scored {
	assessments := map[string]scorer.Assessment{}
	if r.llm != nil {
		brands := []string{}
		for _, result := range available {
			brands = append(brands, result.Candidate.Original)
		}
		got, err := llm.AssessBrands(ctx, r.llm, r.config.LLM.ScorerModel, brands)
		if err != nil {
			gologger.Warning().Msgf("LLM brand assessment failed, using defaults: %v", err)
		} else {
			assessments = got
		}
	}
	scored := scorer.Score(available, trends.Velocities(items), assessments, r.config.Scoring)
	gologger.Info().Msgf("Scored %d domains", len(scored))
	return scored
}
