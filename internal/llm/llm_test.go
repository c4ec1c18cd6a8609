package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jasona7/typosquat"
	"github.com/jasona7/typosquat/internal/trends"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fakeCompleter struct {
	reply  string
	system string
	user   string
	model  string
}

func (f *fakeCompleter) ChatJSON(_ context.Context, model, system, user string) (gjson.Result, error) {
	f.model, f.system, f.user = model, system, user
	return parseJSON(f.reply), nil
}

func TestRender(t *testing.T) {
	out := render("top {{max}} of {{trends}} {{unknown}}", map[string]interface{}{"max": "5", "trends": "x"})
	require.Equal(t, "top 5 of x {{unknown}}", out)
}

func TestParseJSON(t *testing.T) {
	require.Equal(t, "{}", parseJSON("").Raw)
	require.Equal(t, "{}", parseJSON("not json {").Raw)
	require.Equal(t, int64(1), parseJSON(`{"a":1}`).Get("a").Int())
}

func TestFilterTrends(t *testing.T) {
	fake := &fakeCompleter{reply: `{"targets":[
		{"name":"Anthropic","reasoning":"hard","difficulty_to_spell":8,"commercial_intent":7,"udrp_risk":3},
		{"name":""},
		{"name":"Perplexity"},
		{"name":"Cursor"}
	]}`}
	items := []trends.Item{
		{Name: "Anthropic", Source: "google_trends", Velocity: 2},
		{Name: "Perplexity", Source: "hackernews", Velocity: 0.5},
	}
	targets, err := FilterTrends(context.Background(), fake, "m", items, 2)
	require.Nil(t, err)
	require.Len(t, targets, 2)
	require.Equal(t, Target{Name: "Anthropic", Reasoning: "hard", DifficultyToSpell: 8, CommercialIntent: 7, UDRPRisk: 3}, targets[0])
	require.Equal(t, "Perplexity", targets[1].Name)
	require.Equal(t, "m", fake.model)
	require.Contains(t, fake.user, "- Anthropic (source: google_trends, velocity: 2.0)")
	require.Contains(t, fake.user, "Select the top 2 best")

	empty, err := FilterTrends(context.Background(), fake, "m", nil, 2)
	require.Nil(t, err)
	require.Empty(t, empty)
}

func TestFilterTrendsMalformed(t *testing.T) {
	targets, err := FilterTrends(context.Background(), &fakeCompleter{reply: "sorry"}, "m", []trends.Item{{Name: "x"}}, 5)
	require.Nil(t, err)
	require.Empty(t, targets)
}

func TestCreativeTypos(t *testing.T) {
	fake := &fakeCompleter{reply: `{"typos":[
		{"typo":"Antrhopic","type":"speed","confidence":0.9},
		{"typo":"anthropic","type":"speed"},
		{"typo":"antrhopic","type":"mobile"},
		{"typo":"anthro pick","confidence":1.7},
		{"typo":"zzzzzzzzzzzzzz","type":"memory"},
		{"typo":"  ","type":"memory"}
	]}`}
	candidates, err := CreativeTypos(context.Background(), fake, "m", "Anthropic", []string{".com", ".io"}, 4)
	require.Nil(t, err)
	require.Contains(t, fake.system, "Generate EXACTLY 15 typos")
	require.Contains(t, fake.user, `brand name: "Anthropic"`)

	domains := []string{}
	for _, c := range candidates {
		domains = append(domains, c.Domain)
		require.Equal(t, "Anthropic", c.Original)
		require.True(t, c.Family.IsExternal())
	}
	require.Equal(t, []string{"antrhopic.com", "antrhopic.io", "anthropick.com", "anthropick.io"}, domains)
	require.Equal(t, typosquat.Family("llm_speed"), candidates[0].Family)
	require.Equal(t, 0.9, candidates[0].Confidence)
	require.Equal(t, typosquat.Family("llm_creative"), candidates[2].Family)
	require.Equal(t, 1.0, candidates[2].Confidence)
}

func TestCreativeTyposNoDistanceLimit(t *testing.T) {
	fake := &fakeCompleter{reply: `{"typos":[{"typo":"zzzzzzzzzzzzzz"}]}`}
	candidates, err := CreativeTypos(context.Background(), fake, "m", "ab", []string{".com"}, 0)
	require.Nil(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, typosquat.DefaultConfidence, candidates[0].Confidence)
}

func TestAssessBrands(t *testing.T) {
	fake := &fakeCompleter{reply: `{"assessments":[
		{"brand":"Anthropic","estimated_cpc":4.5,"commercial_niche":"AI","udrp_risk":7,"reasoning":"big"},
		{"brand":"Tiny"}
	]}`}
	assessments, err := AssessBrands(context.Background(), fake, "m", []string{"Anthropic", "Tiny", "Tiny"})
	require.Nil(t, err)
	require.Len(t, assessments, 2)
	require.Equal(t, 4.5, assessments["anthropic"].EstimatedCPC)
	require.Equal(t, 7.0, assessments["anthropic"].UDRPRisk)
	require.Equal(t, "AI", assessments["anthropic"].CommercialNiche)
	require.Equal(t, 1.0, assessments["tiny"].EstimatedCPC)
	require.Equal(t, 3.0, assessments["tiny"].UDRPRisk)
	require.Equal(t, 1, strings.Count(fake.user, "Tiny"))
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("", "")
	require.NotNil(t, err)
}

func TestClientChatJSON(t *testing.T) {
	content := `{"targets":[{"name":"Anthropic"}]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		var req map[string]interface{}
		require.Nil(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test-model", req["model"])
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": content},
			}},
		})
	}))
	defer ts.Close()

	client, err := NewClient("test-key", ts.URL+"/v1")
	require.Nil(t, err)
	result, err := client.ChatJSON(context.Background(), "test-model", "system", "user")
	require.Nil(t, err)
	require.Equal(t, "Anthropic", result.Get("targets.0.name").String())

	content = "not json"
	result, err = client.ChatJSON(context.Background(), "test-model", "system", "user")
	require.Nil(t, err)
	require.Equal(t, "{}", result.Raw)
}
