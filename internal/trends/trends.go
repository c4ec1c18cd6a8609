// Package trends collects trending brand names from public sources
package trends

import (
	"context"
	"sort"
	"strings"

	"github.com/projectdiscovery/gologger"
)

// Item is a trending name and how fast it is rising
type Item struct {
	Name     string  `json:"name"`
	Source   string  `json:"source"`
	Velocity float64 `json:"velocity"`
}

// Source fetches trend items. Implementations log and swallow
// their own network errors and return whatever they collected.
type Source interface {
	Name() string
	Fetch(ctx context.Context) []Item
}

// Merge dedups items by lower-cased name keeping the highest velocity.
// The first spelling seen for a name is kept on ties.
func Merge(lists ...[]Item) []Item {
	merged := map[string]Item{}
	order := []string{}
	for _, items := range lists {
		for _, item := range items {
			key := strings.ToLower(item.Name)
			existing, ok := merged[key]
			if !ok {
				order = append(order, key)
			}
			if !ok || item.Velocity > existing.Velocity {
				merged[key] = item
			}
		}
	}
	out := make([]Item, 0, len(order))
	for _, key := range order {
		out = append(out, merged[key])
	}
	return out
}

// Collect fetches all sources one after another and merges their items
func Collect(ctx context.Context, sources ...Source) []Item {
	lists := make([][]Item, 0, len(sources))
	for _, source := range sources {
		items := source.Fetch(ctx)
		gologger.Info().Msgf("%v: %d items", source.Name(), len(items))
		lists = append(lists, items)
	}
	all := Merge(lists...)
	gologger.Info().Msgf("Total unique trends: %d", len(all))
	return all
}

// Velocities returns a lower-cased name to velocity lookup
func Velocities(items []Item) map[string]float64 {
	m := make(map[string]float64, len(items))
	for _, item := range items {
		m[strings.ToLower(item.Name)] = item.Velocity
	}
	return m
}

// SortByVelocity orders items fastest first
func SortByVelocity(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Velocity > items[j].Velocity
	})
}
