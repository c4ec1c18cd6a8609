package trends

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/retryablehttp-go"
	errorutil "github.com/projectdiscovery/utils/errors"
	"github.com/tidwall/gjson"
)

const (
	// DefaultGoogleTrendsAPI is the base of the Google Trends explore API
	DefaultGoogleTrendsAPI  = "https://trends.google.com/trends/api"
	DefaultRisingPerKeyword = 10
)

// DefaultSeedKeywords are the tech/business searches whose rising related queries are collected
var DefaultSeedKeywords = []string{"startup", "app", "software", "AI tool"}

// GoogleTrendsRising reads rising related queries of seed keywords
// over the last 7 days
type GoogleTrendsRising struct {
	BaseURL    string
	Keywords   []string
	PerKeyword int
	client     *retryablehttp.Client
}

type comparisonItem struct {
	Keyword string `json:"keyword"`
	Geo     string `json:"geo"`
	Time    string `json:"time"`
}

type exploreRequest struct {
	ComparisonItem []comparisonItem `json:"comparisonItem"`
	Category       int              `json:"category"`
	Property       string           `json:"property"`
}

// NewGoogleTrendsRising returns a source for baseURL (DefaultGoogleTrendsAPI when empty)
func NewGoogleTrendsRising(baseURL string, keywords []string) *GoogleTrendsRising {
	if baseURL == "" {
		baseURL = DefaultGoogleTrendsAPI
	}
	if len(keywords) == 0 {
		keywords = DefaultSeedKeywords
	}
	return &GoogleTrendsRising{
		BaseURL:    baseURL,
		Keywords:   keywords,
		PerKeyword: DefaultRisingPerKeyword,
		client:     retryablehttp.NewClient(retryablehttp.DefaultOptionsSingle),
	}
}

func (g *GoogleTrendsRising) Name() string {
	return "google_trends_rising"
}

func (g *GoogleTrendsRising) Fetch(ctx context.Context) []Item {
	items := []Item{}
	for _, keyword := range g.Keywords {
		if ctx.Err() != nil {
			break
		}
		queries, err := g.rising(ctx, keyword)
		if err != nil {
			gologger.Verbose().Msgf("failed to fetch rising queries for %q: %v", keyword, err)
			continue
		}
		for i, q := range queries {
			if i == g.PerKeyword {
				break
			}
			name := q.Get("query").String()
			if name == "" {
				continue
			}
			value := 1.0
			if v := q.Get("value"); v.Exists() {
				value = v.Float()
			}
			items = append(items, Item{Name: name, Source: g.Name(), Velocity: min(value/100.0, 5.0)})
		}
	}
	return Merge(items)
}

// rising resolves the related queries widget of keyword and returns its rising list
func (g *GoogleTrendsRising) rising(ctx context.Context, keyword string) ([]gjson.Result, error) {
	payload, err := json.Marshal(exploreRequest{
		ComparisonItem: []comparisonItem{{Keyword: keyword, Geo: "US", Time: "now 7-d"}},
	})
	if err != nil {
		return nil, err
	}
	explore, err := g.get(ctx, "/explore", url.Values{"req": {string(payload)}})
	if err != nil {
		return nil, err
	}
	var widget gjson.Result
	for _, w := range explore.Get("widgets").Array() {
		if w.Get("id").String() == "RELATED_QUERIES" {
			widget = w
			break
		}
	}
	if !widget.Exists() {
		return nil, errorutil.NewWithTag("googletrends", "no related queries widget for %v", keyword)
	}
	related, err := g.get(ctx, "/widgetdata/relatedsearches", url.Values{
		"req":   {widget.Get("request").Raw},
		"token": {widget.Get("token").String()},
	})
	if err != nil {
		return nil, err
	}
	// ranked lists are [top, rising]
	lists := related.Get("default.rankedList").Array()
	if len(lists) < 2 {
		return nil, nil
	}
	return lists[1].Get("rankedKeyword").Array(), nil
}

// get calls an API path and returns its JSON body without the anti-XSSI prefix
func (g *GoogleTrendsRising) get(ctx context.Context, path string, params url.Values) (gjson.Result, error) {
	params.Set("hl", "en-US")
	params.Set("tz", "360")
	endpoint := g.BaseURL + path + "?" + params.Encode()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return gjson.Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, errorutil.NewWithTag("googletrends", "unexpected status %v for %v", resp.StatusCode, path)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}
	if idx := bytes.IndexByte(body, '{'); idx >= 0 {
		body = body[idx:]
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errorutil.NewWithTag("googletrends", "malformed response for %v", path)
	}
	return gjson.ParseBytes(body), nil
}
