// Package query computes the filtered, sorted view of a catalog. Everything
// here is pure: same inputs, same ordered output, no side effects.
package query

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"demonlist/internal/catalog"
)

type Sort string

const (
	SortRank       Sort = "rank"
	SortName       Sort = "name"
	SortDifficulty Sort = "difficulty"
	SortCreator    Sort = "creator"
	SortRating     Sort = "rating"
)

// DifficultyAll is the sentinel that disables difficulty filtering.
const DifficultyAll = "all"

type Params struct {
	Search     string
	Difficulty string
	Sort       Sort
}

// Severity ranking for difficulty sort. Labels outside this set sort after
// every known label, keeping their relative catalog order.
var difficultyOrder = map[string]int{
	"easy":       1,
	"medium":     2,
	"hard":       3,
	"insane":     4,
	"extreme":    5,
	"impossible": 6,
}

// One past the highest known severity.
const unknownDifficultyOrder = 7

// Run filters then sorts. The input slice is never modified; rank sort is
// the identity ordering of the filtered rows, i.e. canonical catalog order.
func Run(rows []catalog.Level, p Params) []catalog.Level {
	term := strings.ToLower(strings.TrimSpace(p.Search))
	filter := strings.ToLower(strings.TrimSpace(p.Difficulty))

	out := make([]catalog.Level, 0, len(rows))
	for _, row := range rows {
		if term != "" && !strings.Contains(haystack(row), term) {
			continue
		}
		if filter != "" && filter != DifficultyAll && !strings.EqualFold(row.Difficulty, filter) {
			continue
		}
		out = append(out, row)
	}

	switch p.Sort {
	case SortName:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortCreator:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Creator, out[j].Creator) < 0
		})
	case SortDifficulty:
		sort.SliceStable(out, func(i, j int) bool {
			return severity(out[i].Difficulty) < severity(out[j].Difficulty)
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case SortRank, "":
		// Identity: canonical catalog order is already the rank order.
	}
	return out
}

func severity(label string) int {
	if v, ok := difficultyOrder[strings.ToLower(strings.TrimSpace(label))]; ok {
		return v
	}
	return unknownDifficultyOrder
}

// haystack concatenates every field value, mirroring a whole-row substring
// search.
func haystack(row catalog.Level) string {
	var b strings.Builder
	for _, part := range []string{
		row.ID, row.Name, row.Creator, row.Verifier, row.Difficulty,
		row.VideoURL, row.Description, row.Length,
		strings.Join(row.Tags, " "),
		strconv.FormatFloat(row.Rating, 'f', -1, 64),
		strconv.Itoa(row.Objects),
		strconv.Itoa(row.Downloads),
	} {
		b.WriteString(part)
		b.WriteByte(' ')
	}
	return strings.ToLower(b.String())
}
