package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jasona7/typosquat"
	"github.com/jasona7/typosquat/internal/checker"
	"github.com/jasona7/typosquat/internal/trends"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// fakeLLM answers each prompt kind with a canned reply
type fakeLLM struct {
	targets     string
	typos       string
	assessments string
	err         error
}

func (f *fakeLLM) ChatJSON(_ context.Context, _, system, _ string) (gjson.Result, error) {
	if f.err != nil {
		return gjson.Result{}, f.err
	}
	switch {
	case strings.Contains(system, `"targets"`):
		return gjson.Parse(f.targets), nil
	case strings.Contains(system, `"typos"`):
		return gjson.Parse(f.typos), nil
	default:
		return gjson.Parse(f.assessments), nil
	}
}

// fakeChecker reports every domain as available unless listed as taken
type fakeChecker map[string]bool

func (f fakeChecker) Check(_ context.Context, candidates []*typosquat.Candidate) ([]checker.Result, error) {
	results := []checker.Result{}
	for _, c := range candidates {
		results = append(results, checker.Result{Candidate: c, HasDNS: f[c.Domain], Available: !f[c.Domain]})
	}
	return results, nil
}

func newTestRunner(t *testing.T, opts *Options) *Runner {
	cfg := typosquat.DefaultConfig()
	if opts.Output == "" {
		opts.Output = t.TempDir()
	}
	return &Runner{
		options:  opts,
		config:   &cfg,
		suffixes: []string{".com"},
		out:      &bytes.Buffer{},
		now:      func() time.Time { return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC) },
	}
}

func domains(candidates []*typosquat.Candidate) []string {
	out := []string{}
	for _, c := range candidates {
		out = append(out, c.Domain)
	}
	return out
}

func TestCapByConfidence(t *testing.T) {
	candidates := []*typosquat.Candidate{
		{Domain: "a.com", Confidence: 0.5},
		{Domain: "b.com", Confidence: 0.8},
		{Domain: "c.com", Confidence: 0.6},
		{Domain: "d.com", Confidence: 0.85},
	}
	require.Equal(t, []string{"b.com", "d.com"}, domains(capByConfidence(candidates, 2)))
	require.Len(t, capByConfidence(candidates, 0), 4)
	require.Len(t, capByConfidence(candidates, 10), 4)
}

func TestCollectManualTargets(t *testing.T) {
	r := newTestRunner(t, &Options{Targets: []string{"https://www.notion.so/login", "Node.js", " ", "notion"}})
	items := r.collect(context.Background())
	require.Equal(t, []trends.Item{
		{Name: "notion", Source: manualSource, Velocity: manualVelocity},
		{Name: "Node.js", Source: manualSource, Velocity: manualVelocity},
	}, items)
}

func TestSelectTargetsWithoutLLM(t *testing.T) {
	r := newTestRunner(t, &Options{})
	r.config.MaxTargets = 2
	items := []trends.Item{{Name: "slow", Velocity: 0.1}, {Name: "fast", Velocity: 3}, {Name: "mid", Velocity: 1}}
	require.Equal(t, []string{"fast", "mid"}, r.selectTargets(context.Background(), items))
	require.Equal(t, "slow", items[0].Name)

	manual := newTestRunner(t, &Options{Targets: []string{"b", "a"}})
	manual.llm = &fakeLLM{targets: `{"targets":[{"name":"ignored"}]}`}
	require.Equal(t, []string{"b", "a"}, manual.selectTargets(context.Background(), []trends.Item{{Name: "b"}, {Name: "a", Velocity: 9}}))

	require.Empty(t, r.selectTargets(context.Background(), nil))
}

func TestSelectTargetsWithLLM(t *testing.T) {
	r := newTestRunner(t, &Options{})
	r.llm = &fakeLLM{targets: `{"targets":[{"name":"Perplexity"},{"name":"Anthropic"}]}`}
	items := []trends.Item{{Name: "Anthropic"}, {Name: "Perplexity"}, {Name: "Weather"}}
	require.Equal(t, []string{"Perplexity", "Anthropic"}, r.selectTargets(context.Background(), items))

	r.llm = &fakeLLM{err: errors.New("quota exceeded")}
	require.Equal(t, []string{"Anthropic", "Perplexity", "Weather"}, r.selectTargets(context.Background(), items))
}

func TestGenerateDedupesAcrossTargets(t *testing.T) {
	r := newTestRunner(t, &Options{})
	r.config.MaxTyposPerTarget = 0
	candidates := r.generate(context.Background(), []string{"ab", "ba"})
	seen := map[string]bool{}
	for _, c := range candidates {
		require.False(t, seen[c.Domain], c.Domain)
		seen[c.Domain] = true
	}
	require.True(t, seen["ba.com"])
	for _, c := range candidates {
		if c.Domain == "ba.com" {
			require.Equal(t, "ab", c.Original)
			require.Equal(t, typosquat.FamilyTransposition, c.Family)
		}
	}
}

func TestGenerateCapsPerTarget(t *testing.T) {
	r := newTestRunner(t, &Options{})
	r.config.MaxTyposPerTarget = 3
	candidates := r.generate(context.Background(), []string{"google"})
	require.Equal(t, []string{"ogogle.com", "gogole.com", "goolge.com"}, domains(candidates))
}

func TestGenerateWithCreativeTypos(t *testing.T) {
	r := newTestRunner(t, &Options{})
	r.config.MaxTyposPerTarget = 2
	r.llm = &fakeLLM{typos: `{"typos":[{"typo":"gooogle","type":"speed","confidence":0.99},{"typo":"gugle","type":"phonetic","confidence":0.95}]}`}
	candidates := r.generate(context.Background(), []string{"google"})
	// gooogle.com is already claimed by the doubling family
	require.Equal(t, []string{"ogogle.com", "gugle.com"}, domains(candidates))
	require.Equal(t, typosquat.Family("llm_phonetic"), candidates[1].Family)

	r.llm = &fakeLLM{err: errors.New("timeout")}
	require.Len(t, r.generate(context.Background(), []string{"google"}), 2)
}

func TestRun(t *testing.T) {
	t.Setenv("GITHUB_STEP_SUMMARY", "")
	r := newTestRunner(t, &Options{Targets: []string{"Anthropic"}, Top: 5})
	r.llm = &fakeLLM{
		typos:       `{"typos":[{"typo":"anthropik","type":"phonetic","confidence":0.95}]}`,
		assessments: `{"assessments":[{"brand":"Anthropic","estimated_cpc":10,"udrp_risk":0}]}`,
	}
	r.checker = fakeChecker{"anthropik.com": true}

	scored, err := r.Run(context.Background())
	require.Nil(t, err)
	require.Len(t, scored, 29)
	for i, s := range scored {
		require.NotEqual(t, "anthropik.com", s.Domain)
		require.Equal(t, 25.0, s.Breakdown.CommercialValue)
		require.Equal(t, 0.0, s.Breakdown.RiskPenalty)
		require.Equal(t, 16.7, s.Breakdown.TrendVelocity)
		if i > 0 {
			require.GreaterOrEqual(t, scored[i-1].Score, s.Score)
		}
	}

	_, err = os.Stat(filepath.Join(r.options.Output, "2026-05-04.json"))
	require.Nil(t, err)
	out := r.out.(*bytes.Buffer).String()
	require.Contains(t, out, "TOP 3 AVAILABLE TYPOSQUAT DOMAINS")
}

func TestRunWithoutTargets(t *testing.T) {
	r := newTestRunner(t, &Options{})
	scored, err := r.Run(context.Background())
	require.Nil(t, err)
	require.Empty(t, scored)
}

func TestRunNothingAvailable(t *testing.T) {
	r := newTestRunner(t, &Options{Targets: []string{"ab"}})
	taken := fakeChecker{}
	for _, c := range typosquat.Generate("ab", []string{".com"}) {
		taken[c.Domain] = true
	}
	r.checker = taken
	scored, err := r.Run(context.Background())
	require.Nil(t, err)
	require.Empty(t, scored)
	_, err = os.Stat(filepath.Join(r.options.Output, "2026-05-04.json"))
	require.True(t, os.IsNotExist(err))
}

func TestResolveSuffixes(t *testing.T) {
	r := newTestRunner(t, &Options{})
	suffixes, err := r.resolveSuffixes()
	require.Nil(t, err)
	require.Equal(t, typosquat.DefaultSuffixes, suffixes)

	r.options.Tier2 = true
	suffixes, err = r.resolveSuffixes()
	require.Nil(t, err)
	require.Len(t, suffixes, 12)

	r.options.Suffixes = []string{".io", "com"}
	_, err = r.resolveSuffixes()
	require.NotNil(t, err)
}

func TestGenerateOnly(t *testing.T) {
	r := newTestRunner(t, &Options{Targets: []string{"ab"}, Limit: 3})
	var buf bytes.Buffer
	require.Nil(t, r.Generate(&buf))
	require.Equal(t, "b.com\na.com\naab.com\n", buf.String())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.Nil(t, os.WriteFile(path, []byte("max_per_brand: 7\n"), 0644))
	cfg, err := loadConfig(path)
	require.Nil(t, err)
	require.Equal(t, 7, cfg.MaxPerBrand)
	require.Equal(t, 30, cfg.MaxTyposPerTarget)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NotNil(t, err)
}

func TestSplitLines(t *testing.T) {
	require.Equal(t, []string{"Open AI", "notion.so"}, splitLines("Open AI\n\n  notion.so \n"))
}
