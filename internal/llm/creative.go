package llm

import (
	"context"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/jasona7/typosquat"
	"github.com/projectdiscovery/gologger"
)

// CreativeCount is the number of suggestions asked from the model
const CreativeCount = 15

// CreativeTypos asks the model for human-like misspellings of brand and
// expands them across suffixes. Suggestions further than maxDistance
// edits from the normalized brand are dropped (0 = no limit).
func CreativeTypos(ctx context.Context, c Completer, model, brand string, suffixes []string, maxDistance int) ([]*typosquat.Candidate, error) {
	values := map[string]interface{}{
		"brand": brand,
		"count": strconv.Itoa(CreativeCount),
	}
	result, err := c.ChatJSON(ctx, model, render(creativeSystemPrompt, values), render(creativeUserPrompt, values))
	if err != nil {
		return nil, err
	}

	clean := typosquat.Normalize(brand)
	seen := map[string]struct{}{}
	candidates := []*typosquat.Candidate{}
	for _, entry := range result.Get("typos").Array() {
		typo := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(entry.Get("typo").String())), " ", "")
		if typo == "" || typo == clean {
			continue
		}
		if _, ok := seen[typo]; ok {
			continue
		}
		seen[typo] = struct{}{}
		if maxDistance > 0 && levenshtein.ComputeDistance(typo, clean) > maxDistance {
			gologger.Verbose().Msgf("dropping creative typo %v of %v: too far from the brand", typo, brand)
			continue
		}

		confidence := typosquat.DefaultConfidence
		if v := entry.Get("confidence"); v.Exists() {
			confidence = min(max(v.Float(), 0.0), 1.0)
		}
		kind := entry.Get("type").String()
		if kind == "" {
			kind = "creative"
		}
		family := typosquat.Family(typosquat.LLMFamilyPrefix + kind)

		for _, suffix := range suffixes {
			candidates = append(candidates, &typosquat.Candidate{
				Domain:     typo + suffix,
				Original:   brand,
				Suffix:     suffix,
				Family:     family,
				Confidence: confidence,
			})
		}
	}
	gologger.Info().Msgf("LLM generated %d creative typo candidates for %q", len(candidates), brand)
	return candidates, nil
}
