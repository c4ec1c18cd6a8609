package llm

import (
	"context"
	"strings"

	"github.com/jasona7/typosquat/internal/scorer"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

// AssessBrands asks the model for the commercial value and legal risk of
// brands. The result is keyed by lower-cased brand; fields the model
// leaves out get the same neutral defaults the scorer uses.
func AssessBrands(ctx context.Context, c Completer, model string, brands []string) (map[string]scorer.Assessment, error) {
	assessments := map[string]scorer.Assessment{}
	brands = sliceutil.Dedupe(brands)
	if len(brands) == 0 {
		return assessments, nil
	}
	user := render(assessUserPrompt, map[string]interface{}{"brands": strings.Join(brands, ", ")})
	result, err := c.ChatJSON(ctx, model, assessSystemPrompt, user)
	if err != nil {
		return nil, err
	}
	for _, entry := range result.Get("assessments").Array() {
		brand := strings.TrimSpace(entry.Get("brand").String())
		if brand == "" {
			continue
		}
		a := scorer.Assessment{
			Brand:           brand,
			EstimatedCPC:    1.0,
			CommercialNiche: entry.Get("commercial_niche").String(),
			UDRPRisk:        3,
			Reasoning:       entry.Get("reasoning").String(),
		}
		if v := entry.Get("estimated_cpc"); v.Exists() {
			a.EstimatedCPC = v.Float()
		}
		if v := entry.Get("udrp_risk"); v.Exists() {
			a.UDRPRisk = v.Float()
		}
		assessments[strings.ToLower(brand)] = a
	}
	return assessments, nil
}
