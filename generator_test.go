package typosquat

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func findCandidate(candidates []*Candidate, domain string) *Candidate {
	for _, c := range candidates {
		if c.Domain == domain {
			return c
		}
	}
	return nil
}

func TestGenerateKnownTypos(t *testing.T) {
	testcases := []struct {
		name     string
		suffixes []string
		domain   string
		family   Family
	}{
		{name: "google", suffixes: []string{".com"}, domain: "gogle.com", family: FamilyOmission},
		{name: "google", suffixes: []string{".com"}, domain: "googel.com", family: FamilyTransposition},
		{name: "google", suffixes: []string{".com"}, domain: "gooogle.com", family: FamilyDoubling},
		{name: "google", suffixes: []string{".com"}, domain: "foogle.com", family: FamilyAdjacentKey},
		{name: "google", suffixes: []string{".com"}, domain: "g0ogle.com", family: FamilyHomoglyph},
		{name: "burn", suffixes: []string{".com"}, domain: "bum.com", family: FamilyHomoglyph},
		{name: "clay", suffixes: []string{".com"}, domain: "day.com", family: FamilyHomoglyph},
		{name: "test", suffixes: []string{".com", ".io"}, domain: "test.io", family: FamilySuffixSwap},
		{name: "test", suffixes: []string{".com", ".io"}, domain: "test.com", family: FamilySuffixSwap},
	}
	for _, v := range testcases {
		got := findCandidate(Generate(v.name, v.suffixes), v.domain)
		require.NotNilf(t, got, "expected %v in typos of %v", v.domain, v.name)
		require.Equal(t, v.family, got.Family, v.domain)
		require.Equal(t, v.name, got.Original)
		require.Equal(t, ConfidenceFor(v.family), got.Confidence)
	}
}

func TestGenerateBothSuffixes(t *testing.T) {
	candidates := Generate("test", []string{".com", ".io"})
	var com, io int
	for _, c := range candidates {
		switch {
		case strings.HasSuffix(c.Domain, ".com"):
			require.Equal(t, ".com", c.Suffix)
			com++
		case strings.HasSuffix(c.Domain, ".io"):
			require.Equal(t, ".io", c.Suffix)
			io++
		default:
			t.Fatalf("unexpected suffix in %v", c.Domain)
		}
	}
	require.Equal(t, com, io)
	require.Positive(t, com)
}

func TestGenerateExactSet(t *testing.T) {
	expected := map[string]Family{
		"b.com": FamilyOmission, "a.com": FamilyOmission,
		"aab.com": FamilyDoubling, "abb.com": FamilyDoubling,
		"ba.com": FamilyTransposition,
		"qb.com": FamilyAdjacentKey, "wb.com": FamilyAdjacentKey, "sb.com": FamilyAdjacentKey, "zb.com": FamilyAdjacentKey,
		"av.com": FamilyAdjacentKey, "ag.com": FamilyAdjacentKey, "ah.com": FamilyAdjacentKey, "an.com": FamilyAdjacentKey,
		"@b.com": FamilyHomoglyph, "4b.com": FamilyHomoglyph, "a6.com": FamilyHomoglyph,
		"ab.com": FamilySuffixSwap,
	}
	got := map[string]Family{}
	for _, c := range Generate("ab", []string{".com"}) {
		got[c.Domain] = c.Family
	}
	require.Equal(t, expected, got)
}

func TestGenerateInvariants(t *testing.T) {
	suffixes := []string{".com", ".io", ".co.uk"}
	for _, name := range []string{"google", "Open AI", "cloud-flare", "Node.js", "burn", "vvv", "aa", "x", "mississippi"} {
		clean := Normalize(name)
		candidates := Generate(name, suffixes)
		seen := map[string]struct{}{}
		for _, c := range candidates {
			_, dup := seen[c.Domain]
			require.Falsef(t, dup, "duplicate domain %v for %v", c.Domain, name)
			seen[c.Domain] = struct{}{}

			require.Equal(t, name, c.Original)
			require.Contains(t, suffixes, c.Suffix)
			require.True(t, strings.HasSuffix(c.Domain, c.Suffix))
			require.Equal(t, ConfidenceFor(c.Family), c.Confidence)
			require.GreaterOrEqual(t, c.Confidence, 0.0)
			require.LessOrEqual(t, c.Confidence, 1.0)
			if c.Family != FamilySuffixSwap {
				require.NotEqualf(t, clean+c.Suffix, c.Domain, "unchanged typo for %v", name)
				require.NotEmpty(t, c.Name())
			} else {
				require.Equal(t, clean+c.Suffix, c.Domain)
			}
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	require.Empty(t, Generate("", []string{".com"}))
	require.Empty(t, Generate(" - . ", []string{".com"}))
	require.Empty(t, Generate("abcd", []string{}))
	require.Empty(t, Generate("abcd", nil))
}

func TestGenerateIdempotent(t *testing.T) {
	first := Generate("Stripe", []string{".com", ".io"})
	second := Generate("Stripe", []string{".com", ".io"})
	require.ElementsMatch(t, first, second)
}

func TestGenerateFirstFamilyWins(t *testing.T) {
	// `s` -> `z` is both an adjacent key and a homoglyph
	got := findCandidate(Generate("sun", []string{".com"}), "zun.com")
	require.NotNil(t, got)
	require.Equal(t, FamilyAdjacentKey, got.Family)

	// both omissions of `aa` yield `a`
	count := 0
	for _, c := range Generate("aa", []string{".com"}) {
		if c.Domain == "a.com" {
			require.Equal(t, FamilyOmission, c.Family)
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestGenerateOverlappingPatterns(t *testing.T) {
	candidates := Generate("vvv", []string{".com"})
	for _, domain := range []string{"wv.com", "vw.com"} {
		got := findCandidate(candidates, domain)
		require.NotNilf(t, got, "expected %v", domain)
		require.Equal(t, FamilyHomoglyph, got.Family)
	}
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "openai", Normalize("Open AI"))
	require.Equal(t, "cloudflare", Normalize("Cloud-Flare"))
	require.Equal(t, "nodejs", Normalize("Node.js"))
	require.Equal(t, "", Normalize(" -."))
}

func TestConfidenceFor(t *testing.T) {
	require.Equal(t, 0.8, ConfidenceFor(FamilyOmission))
	require.Equal(t, 0.85, ConfidenceFor(FamilyTransposition))
	require.Equal(t, 0.7, ConfidenceFor(FamilyAdjacentKey))
	require.Equal(t, 0.6, ConfidenceFor(FamilyDoubling))
	require.Equal(t, 0.5, ConfidenceFor(FamilyHomoglyph))
	require.Equal(t, 0.4, ConfidenceFor(FamilySuffixSwap))
	require.Equal(t, DefaultConfidence, ConfidenceFor(Family("llm_phonetic")))
	require.True(t, Family("llm_phonetic").IsExternal())
	require.False(t, FamilyOmission.IsExternal())
}

func TestGeneratorCount(t *testing.T) {
	g, err := New(&Options{Names: []string{"ab", "ab"}, Suffixes: []string{".com", ".io"}})
	require.Nil(t, err)
	require.Equal(t, []string{"ab"}, g.Options.Names)
	require.EqualValues(t, 34, g.EstimateCount())
	require.EqualValues(t, 34, g.CandidateCount())
}

func TestGeneratorDefaults(t *testing.T) {
	_, err := New(&Options{})
	require.NotNil(t, err)

	_, err = New(&Options{Names: []string{"ab"}, Suffixes: []string{"com"}})
	require.NotNil(t, err)

	g, err := New(&Options{Names: []string{"ab"}})
	require.Nil(t, err)
	require.Equal(t, DefaultSuffixes, g.Options.Suffixes)
}

func TestGeneratorResults(t *testing.T) {
	g, err := New(&Options{Names: []string{"ab", "", "cd"}, Suffixes: []string{".com"}})
	require.Nil(t, err)
	var buff bytes.Buffer
	require.Nil(t, g.ExecuteWithWriter(&buff))
	lines := strings.Split(strings.TrimSpace(buff.String()), "\n")
	require.Len(t, lines, len(Generate("ab", []string{".com"}))+len(Generate("cd", []string{".com"})))

	g.Options.Limit = 5
	buff.Reset()
	require.Nil(t, g.ExecuteWithWriter(&buff))
	require.Len(t, strings.Split(strings.TrimSpace(buff.String()), "\n"), 5)

	require.NotNil(t, g.ExecuteWithWriter(nil))
}

func TestGeneratorCancel(t *testing.T) {
	g, err := New(&Options{Names: []string{"google", "stripe"}, Suffixes: []string{".com"}})
	require.Nil(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	ch := g.Execute(ctx)
	<-ch
	cancel()
	// channel must be closed eventually
	for range ch {
	}
}
