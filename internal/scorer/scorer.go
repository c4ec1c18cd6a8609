// Package scorer ranks available typo domains by commercial opportunity
package scorer

import (
	"math"
	"sort"
	"strings"

	"github.com/jasona7/typosquat"
	"github.com/jasona7/typosquat/internal/checker"
)

const (
	defaultVelocity = 0.5
	defaultCPC      = 1.0
	defaultUDRPRisk = 3.0
)

// Assessment is the commercial judgement of a brand
type Assessment struct {
	Brand           string  `json:"brand"`
	EstimatedCPC    float64 `json:"estimated_cpc"`
	CommercialNiche string  `json:"commercial_niche"`
	UDRPRisk        float64 `json:"udrp_risk"` // 1-10
	Reasoning       string  `json:"reasoning"`
}

// Breakdown holds the weighted components of a score
type Breakdown struct {
	TrendVelocity    float64 `json:"trend_velocity"`
	CommercialValue  float64 `json:"commercial_value"`
	TypoPlausibility float64 `json:"typo_plausibility"`
	DomainQuality    float64 `json:"domain_quality"`
	RiskPenalty      float64 `json:"risk_penalty"`
}

// Scored is an available domain with its 0-100 score
type Scored struct {
	Domain    string           `json:"domain"`
	Original  string           `json:"original"`
	Suffix    string           `json:"suffix"`
	Family    typosquat.Family `json:"family"`
	Score     float64          `json:"score"`
	Breakdown Breakdown        `json:"breakdown"`
}

// Score rates available domains and returns them best first.
// velocities and assessments are keyed by lower-cased brand; brands
// missing from either fall back to neutral defaults.
func Score(available []checker.Result, velocities map[string]float64, assessments map[string]Assessment, weights typosquat.ScoringConfig) []Scored {
	scored := make([]Scored, 0, len(available))
	for _, result := range available {
		c := result.Candidate
		brand := strings.ToLower(c.Original)

		velocity, ok := velocities[brand]
		if !ok {
			velocity = defaultVelocity
		}
		cpc, risk := defaultCPC, defaultUDRPRisk
		if a, ok := assessments[brand]; ok {
			cpc, risk = a.EstimatedCPC, a.UDRPRisk
		}

		trend := math.Min(velocity/3.0, 1.0) * weights.TrendVelocityWeight
		commercial := math.Min(cpc/10.0, 1.0) * weights.CommercialValueWeight
		plausibility := c.Confidence * weights.TypoPlausibilityWeight
		quality := ((SuffixQuality(c.Suffix) + LengthQuality(c.Name())) / 2.0) * weights.DomainQualityWeight
		penalty := math.Pow(math.Max(risk, 0)/10.0, 1.5) * weights.RiskPenaltyMax

		total := trend + commercial + plausibility + quality - penalty
		total = math.Max(0, math.Min(100, total))

		scored = append(scored, Scored{
			Domain:   c.Domain,
			Original: c.Original,
			Suffix:   c.Suffix,
			Family:   c.Family,
			Score:    round(total),
			Breakdown: Breakdown{
				TrendVelocity:    round(trend),
				CommercialValue:  round(commercial),
				TypoPlausibility: round(plausibility),
				DomainQuality:    round(quality),
				RiskPenalty:      round(-penalty),
			},
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Diversify keeps at most maxPerBrand entries per brand, preserving order
func Diversify(scored []Scored, maxPerBrand int) []Scored {
	counts := map[string]int{}
	out := []Scored{}
	for _, s := range scored {
		key := strings.ToLower(s.Original)
		if counts[key] >= maxPerBrand {
			continue
		}
		counts[key]++
		out = append(out, s)
	}
	return out
}

func round(v float64) float64 {
	return math.Round(v*10) / 10
}
