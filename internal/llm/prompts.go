package llm

import (
	"github.com/projectdiscovery/fasttemplate"
)

const (
	// ParenthesisOpen marker - begin of a placeholder
	ParenthesisOpen = "{{"
	// ParenthesisClose marker - end of a placeholder
	ParenthesisClose = "}}"
)

// render replaces {{key}} placeholders of template with values
func render(template string, values map[string]interface{}) string {
	return fasttemplate.ExecuteStringStd(template, ParenthesisOpen, ParenthesisClose, values)
}

const filterSystemPrompt = `You are a domain investment analyst. Your job is to identify trending brand/product names that would make good typosquatting domain targets.

Evaluate each trend item and select the best targets based on:
1. The name is hard to spell (unusual spelling, foreign words, made-up terms)
2. High commercial intent (people searching to buy/use the product)
3. Growing rapidly (high trend velocity)
4. Unlikely to aggressively pursue UDRP (avoid Fortune 500 companies with large legal teams)
5. The brand is digital/online-focused (more valuable for domain traffic)

Return your response as JSON with this structure:
{
  "targets": [
    {
      "name": "BrandName",
      "reasoning": "Brief explanation of why this is a good target",
      "difficulty_to_spell": 8,
      "commercial_intent": 7,
      "udrp_risk": 3
    }
  ]
}

Select up to the requested number of targets. Rank them by overall opportunity quality.`

const filterUserPrompt = `Here are the current trending brands/products/terms:

{{trends}}

Select the top {{max}} best typosquatting targets from this list. Focus on names that are genuinely hard to spell and have high commercial value.`

const creativeSystemPrompt = `You are an expert in human typing errors and misspellings. Your job is to generate the most realistic typos that real humans would make when trying to type a brand name.

Consider these error types:
1. phonetic: how someone would spell it after hearing it spoken aloud
2. heard_not_read: someone heard the brand name but never saw it written
3. mobile: fat-finger mistakes on a phone keyboard
4. speed: common mistakes when typing quickly
5. memory: how someone might reconstruct the spelling from memory
6. autocorrect: typos that would not be caught by autocorrect

Return your response as JSON:
{
  "typos": [
    {
      "typo": "the misspelling",
      "type": "phonetic|heard_not_read|mobile|speed|memory|autocorrect",
      "confidence": 0.85,
      "explanation": "Brief explanation"
    }
  ]
}

Generate EXACTLY {{count}} typos. Focus on the most plausible ones that real people would actually type.`

const creativeUserPrompt = `Generate the {{count}} most likely real-human typos for the brand name: "{{brand}}"

Think about how someone might misspell this if they:
- Heard it in a podcast but never saw it written
- Were typing quickly on their phone
- Aren't sure of the exact spelling
- Have a slight accent affecting pronunciation`

const assessSystemPrompt = `You are a domain investment analyst. Score domain opportunities based on commercial value and risk.

For each brand, assess:
1. estimated_cpc ($): what advertisers pay for clicks on the brand's keywords
2. commercial_niche: the industry/niche (e.g., "AI SaaS", "fintech", "e-commerce")
3. udrp_risk (1-10): how likely the brand owner files a UDRP complaint
   - 1-3: small startup, unlikely to pursue
   - 4-6: medium company, might pursue
   - 7-10: large corp with active legal team

Return JSON:
{
  "assessments": [
    {
      "brand": "BrandName",
      "estimated_cpc": 2.50,
      "commercial_niche": "AI SaaS",
      "udrp_risk": 4,
      "reasoning": "Brief explanation"
    }
  ]
}`

const assessUserPrompt = `Assess the following brands for domain investment: {{brands}}`
