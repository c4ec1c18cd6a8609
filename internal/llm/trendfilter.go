package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jasona7/typosquat/internal/trends"
	"github.com/projectdiscovery/gologger"
)

// Target is a trend selected as a typosquatting target
type Target struct {
	Name              string `json:"name"`
	Reasoning         string `json:"reasoning,omitempty"`
	DifficultyToSpell int    `json:"difficulty_to_spell,omitempty"`
	CommercialIntent  int    `json:"commercial_intent,omitempty"`
	UDRPRisk          int    `json:"udrp_risk,omitempty"`
}

// FilterTrends asks the model to pick and rank up to max targets among items
func FilterTrends(ctx context.Context, c Completer, model string, items []trends.Item, max int) ([]Target, error) {
	if len(items) == 0 {
		return []Target{}, nil
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s (source: %s, velocity: %.1f)", item.Name, item.Source, item.Velocity))
	}
	user := render(filterUserPrompt, map[string]interface{}{
		"trends": strings.Join(lines, "\n"),
		"max":    strconv.Itoa(max),
	})
	result, err := c.ChatJSON(ctx, model, filterSystemPrompt, user)
	if err != nil {
		return nil, err
	}
	targets := []Target{}
	for _, entry := range result.Get("targets").Array() {
		name := strings.TrimSpace(entry.Get("name").String())
		if name == "" {
			continue
		}
		targets = append(targets, Target{
			Name:              name,
			Reasoning:         entry.Get("reasoning").String(),
			DifficultyToSpell: int(entry.Get("difficulty_to_spell").Int()),
			CommercialIntent:  int(entry.Get("commercial_intent").Int()),
			UDRPRisk:          int(entry.Get("udrp_risk").Int()),
		})
		if max > 0 && len(targets) == max {
			break
		}
	}
	gologger.Info().Msgf("LLM trend filter selected %d targets from %d trends", len(targets), len(items))
	return targets, nil
}
