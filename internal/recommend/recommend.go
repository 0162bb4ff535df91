// Package recommend derives a ranked candidate list from the catalog and
// the user overlay. Completed levels are never recommended. The heuristic
// weighs difficulty labels by how often the user engages with them;
// tie-breaking between otherwise unranked candidates is randomized through
// an injected source.
package recommend

import (
	"math/rand"
	"sort"
	"strings"

	"demonlist/internal/catalog"
)

const DefaultCount = 6

// Tastes is the slice of overlay state the scoring reads.
type Tastes struct {
	Completed      map[string]bool
	RecentlyViewed []catalog.Level
	Ratings        map[string]int
}

// Recommend returns up to count levels. Cold start (no views, no ratings)
// draws uniformly at random from the non-completed candidates; otherwise
// candidates matching the user's preferred difficulties come first, ordered
// by preference rank then descending rating, with random backfill.
func Recommend(rows []catalog.Level, t Tastes, count int, rng *rand.Rand) []catalog.Level {
	if count <= 0 {
		count = DefaultCount
	}

	candidates := make([]catalog.Level, 0, len(rows))
	for _, row := range rows {
		if t.Completed[row.ID] {
			continue
		}
		candidates = append(candidates, row)
	}
	if len(candidates) == 0 {
		return nil
	}

	if len(t.RecentlyViewed) == 0 && len(t.Ratings) == 0 {
		return drawRandom(candidates, count, rng)
	}

	rankOf := preferenceRanks(rows, t)

	var preferred, rest []catalog.Level
	for _, c := range candidates {
		if _, ok := rankOf[normalize(c.Difficulty)]; ok {
			preferred = append(preferred, c)
		} else {
			rest = append(rest, c)
		}
	}
	sort.SliceStable(preferred, func(i, j int) bool {
		ri := rankOf[normalize(preferred[i].Difficulty)]
		rj := rankOf[normalize(preferred[j].Difficulty)]
		if ri != rj {
			return ri < rj
		}
		return preferred[i].Rating > preferred[j].Rating
	})

	if len(preferred) >= count {
		return append([]catalog.Level(nil), preferred[:count]...)
	}
	out := append([]catalog.Level(nil), preferred...)
	need := count - len(out)
	out = append(out, drawRandom(rest, need, rng)...)
	return out
}

// preferenceRanks accumulates a weight per difficulty label: +1 for each
// recently-viewed occurrence, plus rating/5 for each rated level found in
// the catalog. Labels are ranked by weight descending, name ascending for a
// deterministic order.
func preferenceRanks(rows []catalog.Level, t Tastes) map[string]int {
	weights := map[string]float64{}
	for _, lvl := range t.RecentlyViewed {
		if label := normalize(lvl.Difficulty); label != "" {
			weights[label]++
		}
	}
	for id, rating := range t.Ratings {
		for _, row := range rows {
			if row.ID == id {
				if label := normalize(row.Difficulty); label != "" {
					weights[label] += float64(rating) / 5
				}
				break
			}
		}
	}

	labels := make([]string, 0, len(weights))
	for label := range weights {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if weights[labels[i]] != weights[labels[j]] {
			return weights[labels[i]] > weights[labels[j]]
		}
		return labels[i] < labels[j]
	})

	ranks := make(map[string]int, len(labels))
	for i, label := range labels {
		ranks[label] = i
	}
	return ranks
}

func drawRandom(pool []catalog.Level, count int, rng *rand.Rand) []catalog.Level {
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	shuffled := append([]catalog.Level(nil), pool...)
	if rng != nil {
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
	} else {
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
	}
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
