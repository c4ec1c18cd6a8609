package trends

import (
	"context"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/projectdiscovery/gologger"
)

// DefaultGoogleTrendsURL is the daily trending searches feed for the US
const DefaultGoogleTrendsURL = "https://trends.google.com/trending/rss?geo=US"

// GoogleTrends reads daily trending searches from the Google Trends RSS feed
type GoogleTrends struct {
	URL    string
	parser *gofeed.Parser
}

// NewGoogleTrends returns a source for url (DefaultGoogleTrendsURL when empty)
func NewGoogleTrends(url string) *GoogleTrends {
	if url == "" {
		url = DefaultGoogleTrendsURL
	}
	return &GoogleTrends{URL: url, parser: gofeed.NewParser()}
}

func (g *GoogleTrends) Name() string {
	return "google_trends_daily"
}

func (g *GoogleTrends) Fetch(ctx context.Context) []Item {
	feed, err := g.parser.ParseURLWithContext(g.URL, ctx)
	if err != nil {
		gologger.Warning().Msgf("Google Trends fetch failed: %v", err)
		return nil
	}
	items := []Item{}
	for _, entry := range feed.Items {
		name := strings.TrimSpace(entry.Title)
		if name == "" {
			continue
		}
		items = append(items, Item{
			Name:     name,
			Source:   g.Name(),
			Velocity: trafficVelocity(approxTraffic(entry)),
		})
	}
	return Merge(items)
}

// approxTraffic returns the ht:approx_traffic value of a feed entry
func approxTraffic(entry *gofeed.Item) string {
	ht, ok := entry.Extensions["ht"]
	if !ok {
		return ""
	}
	values := ht["approx_traffic"]
	if len(values) == 0 {
		return ""
	}
	return values[0].Value
}

// trafficVelocity turns an approximate traffic string (ex: 20,000+)
// into a velocity capped at 5
func trafficVelocity(traffic string) float64 {
	traffic = strings.NewReplacer(",", "", "+", "", " ", "").Replace(traffic)
	n, err := strconv.ParseFloat(traffic, 64)
	if err != nil || n <= 0 {
		return 1.0
	}
	return min(n/10000.0, 5.0)
}
