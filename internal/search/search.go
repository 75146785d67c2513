// Package search ranks collections against a free-form query for the CLI
// find command.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mcrews/plexkit/internal/collection"
)

// Match is a ranked search hit
type Match struct {
	Collection *collection.Collection
	Distance   int // Levenshtein distance, lower is better
}

// Collections ranks the given collections against the query. An empty query
// returns everything in title order.
func Collections(query string, collections []*collection.Collection) []Match {
	if strings.TrimSpace(query) == "" {
		matches := make([]Match, 0, len(collections))
		for _, c := range collections {
			matches = append(matches, Match{Collection: c})
		}
		sort.Slice(matches, func(i, j int) bool {
			return matches[i].Collection.TitleSort < matches[j].Collection.TitleSort
		})
		return matches
	}

	titles := make([]string, len(collections))
	for i, c := range collections {
		titles[i] = c.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	matches := make([]Match, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, Match{
			Collection: collections[r.OriginalIndex],
			Distance:   r.Distance,
		})
	}
	return matches
}
