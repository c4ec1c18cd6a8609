package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/retryablehttp-go"
	errorutil "github.com/projectdiscovery/utils/errors"
)

const (
	DefaultHackerNewsURL = "https://hacker-news.firebaseio.com/v0"
	DefaultMaxStories    = 60
)

var (
	brandPattern   = regexp.MustCompile(`\b[A-Z][a-z]+(?:\.[a-z]+)*\b`)
	acronymPattern = regexp.MustCompile(`\b[A-Z]{2,6}\b`)
)

// words unlikely to be brand names
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`the a an is are was were how why what show ask tell new from with
		for and not can will has have had this that your our my its all any but into about just than
		now get got use way who hn yc`) {
		stopWords[w] = struct{}{}
	}
}

// HackerNews extracts brand-like names from the top Hacker News stories
type HackerNews struct {
	BaseURL    string
	MaxStories int
	client     *retryablehttp.Client
}

type story struct {
	Title string `json:"title"`
	Score int    `json:"score"`
}

// NewHackerNews returns a source for baseURL (DefaultHackerNewsURL when empty)
func NewHackerNews(baseURL string, maxStories int) *HackerNews {
	if baseURL == "" {
		baseURL = DefaultHackerNewsURL
	}
	if maxStories <= 0 {
		maxStories = DefaultMaxStories
	}
	return &HackerNews{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		MaxStories: maxStories,
		client:     retryablehttp.NewClient(retryablehttp.DefaultOptionsSingle),
	}
}

func (h *HackerNews) Name() string {
	return "hackernews"
}

func (h *HackerNews) Fetch(ctx context.Context) []Item {
	var ids []int
	if err := h.getJSON(ctx, h.BaseURL+"/topstories.json", &ids); err != nil {
		gologger.Warning().Msgf("Hacker News fetch failed: %v", err)
		return nil
	}
	if len(ids) > h.MaxStories {
		ids = ids[:h.MaxStories]
	}
	items := []Item{}
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		var s story
		if err := h.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", h.BaseURL, id), &s); err != nil {
			gologger.Verbose().Msgf("failed to fetch HN story %v: %v", id, err)
			continue
		}
		velocity := min(float64(s.Score)/200.0, 3.0)
		for _, brand := range ExtractBrands(s.Title) {
			items = append(items, Item{Name: brand, Source: h.Name(), Velocity: velocity})
		}
	}
	return Merge(items)
}

func (h *HackerNews) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errorutil.NewWithTag("hackernews", "unexpected status %v for %v", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// ExtractBrands returns capitalized words and short acronyms of a title
// that could be brand or product names
func ExtractBrands(title string) []string {
	matches := brandPattern.FindAllString(title, -1)
	matches = append(matches, acronymPattern.FindAllString(title, -1)...)
	brands := []string{}
	for _, m := range matches {
		m = strings.TrimSpace(m)
		cleaned := strings.ToLower(m)
		if _, stop := stopWords[cleaned]; stop || len(cleaned) < 3 {
			continue
		}
		brands = append(brands, m)
	}
	return brands
}
