package app

import (
	"strings"

	"demonlist/internal/catalog"
	"demonlist/internal/overlay"
	"demonlist/internal/query"
)

// ListMode selects which base collection the view derives from.
type ListMode string

const (
	ModeAll       ListMode = "all"
	ModeFavorites ListMode = "favorites"
	ModeRecent    ListMode = "recent"
)

// Card is one level enriched with the user's overlay state and its
// canonical rank.
type Card struct {
	catalog.Level
	Rank       int
	Favorite   bool
	Completed  bool
	UserRating int
	Progress   int
}

// Stats summarizes the active catalog.
type Stats struct {
	Total         int
	PerDifficulty map[string]int
}

// View is the derived, render-ready snapshot handed to the presentation
// adapter. It is recomputed in full on every state change.
type View struct {
	List     catalog.ListType
	Strategy catalog.Strategy
	LoadErr  error
	Loading  bool

	Mode       ListMode
	Search     string
	Difficulty string
	Sort       query.Sort

	Cards         []Card
	Page          int
	TotalPages    int
	TotalFiltered int
	PageSize      int

	Stats        Stats
	Profile      overlay.Profile
	CompareCount int
	ViewMode     string
	Theme        string
}

// baseRows picks the collection the active list mode derives from.
func (a *App) baseRows() []catalog.Level {
	switch a.mode {
	case ModeFavorites:
		if a.store == nil {
			return nil
		}
		fav := map[string]bool{}
		for _, id := range a.overlay.Favorites() {
			fav[id] = true
		}
		rows := make([]catalog.Level, 0, len(fav))
		for _, row := range a.store.Rows {
			if fav[row.ID] {
				rows = append(rows, row)
			}
		}
		return rows
	case ModeRecent:
		return a.overlay.RecentlyViewed()
	default:
		if a.store == nil {
			return nil
		}
		return a.store.Rows
	}
}

// view recomputes the derived snapshot. Callers hold a.mu.
func (a *App) view() View {
	v := View{
		List:         a.list,
		Mode:         a.mode,
		Search:       a.params.Search,
		Difficulty:   a.params.Difficulty,
		Sort:         a.params.Sort,
		LoadErr:      a.loadErr,
		Loading:      a.loading,
		PageSize:     a.overlay.PageSize(),
		Profile:      a.overlay.Profile(),
		CompareCount: len(a.overlay.CompareList()),
		ViewMode:     a.overlay.ViewMode(),
		Theme:        a.overlay.Theme(),
	}
	if a.store != nil {
		v.Strategy = a.store.Strategy
		v.Stats = statsOf(a.store.Rows)
	}

	filtered := query.Run(a.baseRows(), a.params)
	v.TotalFiltered = len(filtered)
	page := query.Paginate(filtered, v.PageSize, a.page)
	a.page = page.Number
	v.Page = page.Number
	v.TotalPages = page.TotalPages

	v.Cards = make([]Card, 0, len(page.Items))
	for _, row := range page.Items {
		card := Card{
			Level:     row,
			Favorite:  a.overlay.IsFavorite(row.ID),
			Completed: a.overlay.IsCompleted(row.ID),
		}
		if a.store != nil {
			card.Rank = a.store.RankOf(row.ID)
		}
		if r, ok := a.overlay.RatingFor(row.ID); ok {
			card.UserRating = r
		}
		if p, ok := a.overlay.ProgressFor(row.ID); ok {
			card.Progress = p.Percent
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}

func statsOf(rows []catalog.Level) Stats {
	s := Stats{Total: len(rows), PerDifficulty: map[string]int{}}
	for _, row := range rows {
		label := strings.ToLower(strings.TrimSpace(row.Difficulty))
		if label == "" {
			label = "unknown"
		}
		s.PerDifficulty[label]++
	}
	return s
}
