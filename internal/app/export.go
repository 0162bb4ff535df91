package app

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"demonlist/internal/query"
)

// ExportCatalog writes the current filtered view (all pages) as CSV.
func (a *App) ExportCatalog(w io.Writer) error {
	a.mu.Lock()
	rows := query.Run(a.baseRows(), a.params)
	store := a.store
	a.mu.Unlock()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Rank", "Level", "ID Level", "Creators", "Display Nickname",
		"Level Placement Opinion", "Rating", "Tags", "Length", "Objects", "Downloads",
	}); err != nil {
		return err
	}
	for _, row := range rows {
		rank := 0
		if store != nil {
			rank = store.RankOf(row.ID)
		}
		record := []string{
			strconv.Itoa(rank),
			row.Name,
			row.ID,
			row.Creator,
			row.Verifier,
			row.Difficulty,
			strconv.FormatFloat(row.Rating, 'f', -1, 64),
			strings.Join(row.Tags, ","),
			row.Length,
			strconv.Itoa(row.Objects),
			strconv.Itoa(row.Downloads),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type comparisonEntry struct {
	Name       string  `json:"name"`
	ID         string  `json:"id"`
	Creator    string  `json:"creator"`
	Verifier   string  `json:"verifier"`
	Difficulty string  `json:"difficulty"`
	Rating     float64 `json:"rating"`
}

// ExportComparison writes the comparison tray as pretty-printed JSON.
func (a *App) ExportComparison(w io.Writer) error {
	levels := a.overlay.CompareList()
	entries := make([]comparisonEntry, 0, len(levels))
	for _, lvl := range levels {
		entries = append(entries, comparisonEntry{
			Name:       lvl.Name,
			ID:         lvl.ID,
			Creator:    lvl.Creator,
			Verifier:   lvl.Verifier,
			Difficulty: lvl.Difficulty,
			Rating:     lvl.Rating,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
