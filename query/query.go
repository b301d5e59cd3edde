// Package query manages the persistence and retrieval of recently played
// media locations and their suggestions.
package query

import (
	"strings"

	"github.com/playman-cli/playman/filesystem"
	"github.com/playman-cli/playman/key"
	"github.com/playman-cli/playman/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type locationRecord struct {
	Rank     int    `json:"rank"`
	Location string `json:"location"`
}

var cacher = gache.New[map[string]*locationRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var suggestionCache = make(map[string][]*locationRecord)

// Remember records an opened media location in the persistent history or
// increments its popularity rank. A no-op when history is disabled.
func Remember(location string, weight int) error {
	if !viper.GetBool(key.QueriesRemember) {
		return nil
	}

	location = sanitize(location)
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*locationRecord)
	}

	if record, ok := cached[location]; ok {
		record.Rank += weight
	} else {
		cached[location] = &locationRecord{Rank: weight, Location: location}
	}

	return cacher.Set(cached)
}

// Suggest returns the most relevant historical location suggestion for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns the historical locations matching the partial input, sorted by popularity rank.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.ConsoleSuggestions) {
		return []string{}
	}

	q = sanitize(q)
	var records []*locationRecord

	if prev, ok := suggestionCache[q]; ok {
		records = prev
	} else {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		for _, record := range cached {
			if fuzzy.Match(q, record.Location) {
				records = append(records, record)
			}
		}

		slices.SortFunc(records, func(a, b *locationRecord) int {
			return b.Rank - a.Rank // Descending rank
		})

		suggestionCache[q] = records
	}

	suggestions := lo.Map(records, func(r *locationRecord, _ int) string {
		return r.Location
	})

	if limit := viper.GetInt(key.ConsoleSuggestionsCap); limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return suggestions
}

func sanitize(q string) string {
	return strings.TrimSpace(q)
}
