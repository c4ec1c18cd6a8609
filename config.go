package typosquat

import (
	"os"

	"github.com/projectdiscovery/gologger"
	"gopkg.in/yaml.v3"
)

type SuffixConfig struct {
	Tier1 []string `yaml:"tier1"`
	Tier2 []string `yaml:"tier2"`
}

type ScoringConfig struct {
	TrendVelocityWeight    float64 `yaml:"trend_velocity_weight"`
	CommercialValueWeight  float64 `yaml:"commercial_value_weight"`
	TypoPlausibilityWeight float64 `yaml:"typo_plausibility_weight"`
	DomainQualityWeight    float64 `yaml:"domain_quality_weight"`
	RiskPenaltyMax         float64 `yaml:"risk_penalty_max"`
}

type LLMConfig struct {
	FilterModel   string `yaml:"filter_model"`
	CreativeModel string `yaml:"creative_model"`
	ScorerModel   string `yaml:"scorer_model"`
	// drop creative typos further than this from the brand (0 = no limit)
	MaxEditDistance int `yaml:"max_edit_distance"`
}

type RateLimitConfig struct {
	DNSDelayMs  int `yaml:"dns_delay_ms"`
	RDAPDelayMs int `yaml:"rdap_delay_ms"`
}

type Config struct {
	Suffixes          SuffixConfig    `yaml:"suffixes"`
	Scoring           ScoringConfig   `yaml:"scoring"`
	LLM               LLMConfig       `yaml:"llm"`
	RateLimits        RateLimitConfig `yaml:"rate_limits"`
	Resolvers         []string        `yaml:"resolvers"`
	MaxTargets        int             `yaml:"max_targets"`
	MaxTyposPerTarget int             `yaml:"max_typos_per_target"`
	MaxPerBrand       int             `yaml:"max_per_brand"`
}

// DefaultConfig returns config populated with default values
func DefaultConfig() Config {
	return Config{
		Suffixes: SuffixConfig{
			Tier1: append([]string{}, DefaultSuffixes...),
			Tier2: append([]string{}, DefaultExtendedSuffixes...),
		},
		Scoring: ScoringConfig{
			TrendVelocityWeight:    25,
			CommercialValueWeight:  25,
			TypoPlausibilityWeight: 20,
			DomainQualityWeight:    15,
			RiskPenaltyMax:         15,
		},
		LLM: LLMConfig{
			FilterModel:     "gpt-4o-mini",
			CreativeModel:   "gpt-4o",
			ScorerModel:     "gpt-4o-mini",
			MaxEditDistance: 4,
		},
		RateLimits: RateLimitConfig{
			DNSDelayMs:  100,
			RDAPDelayMs: 500,
		},
		Resolvers:         []string{"1.1.1.1:53", "8.8.8.8:53"},
		MaxTargets:        50,
		MaxTyposPerTarget: 30,
		MaxPerBrand:       3,
	}
}

// AllSuffixes returns tier1 followed by tier2 suffixes
func (c *Config) AllSuffixes() []string {
	all := make([]string, 0, len(c.Suffixes.Tier1)+len(c.Suffixes.Tier2))
	all = append(all, c.Suffixes.Tier1...)
	return append(all, c.Suffixes.Tier2...)
}

// NewConfig reads config from file; keys missing in file keep their defaults
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseConfig(bin)
}

// legacyConfig holds the older `tlds` and `openai` section names
type legacyConfig struct {
	TLDs   SuffixConfig `yaml:"tlds"`
	OpenAI LLMConfig    `yaml:"openai"`
}

// ParseConfig parses yaml config data on top of DefaultConfig.
// `tlds` and `openai` are read as aliases of `suffixes` and `llm`;
// the newer section wins when both are present.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	var sections map[string]interface{}
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, err
	}
	for old, current := range map[string]string{"tlds": "suffixes", "openai": "llm"} {
		if _, ok := sections[old]; ok {
			gologger.Warning().Msgf("config section `%v` is deprecated, use `%v`", old, current)
		}
	}
	legacy := legacyConfig{TLDs: cfg.Suffixes, OpenAI: cfg.LLM}
	if err := yaml.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}
	cfg.Suffixes, cfg.LLM = legacy.TLDs, legacy.OpenAI
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GenerateSample creates a sample yaml file with default values
func GenerateSample(filePath string) error {
	bin, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}
