package overlay

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"demonlist/internal/catalog"
	"demonlist/internal/state"
)

func newStore(t *testing.T) (*Store, *state.MemoryStore) {
	t.Helper()
	kv := state.NewMemory()
	return Load(context.Background(), kv), kv
}

func TestToggleFavoritePersists(t *testing.T) {
	ctx := context.Background()
	s, kv := newStore(t)

	added, err := s.ToggleFavorite(ctx, "X")
	if err != nil || !added {
		t.Fatalf("first toggle: added=%v err=%v", added, err)
	}
	if raw, found, _ := kv.Get(ctx, state.KeyFavorites); !found || raw != `["X"]` {
		t.Fatalf("favorites not persisted, got %q", raw)
	}
	if s.Profile().FavoriteCount != 1 {
		t.Fatalf("favoriteCount out of sync: %d", s.Profile().FavoriteCount)
	}

	added, err = s.ToggleFavorite(ctx, "X")
	if err != nil || added {
		t.Fatalf("second toggle: added=%v err=%v", added, err)
	}
	if len(s.Favorites()) != 0 || s.Profile().FavoriteCount != 0 {
		t.Fatalf("expected empty favorites after second toggle")
	}

	// A reload from the same storage sees the same state.
	reloaded := Load(ctx, kv)
	if len(reloaded.Favorites()) != 0 {
		t.Fatalf("reloaded favorites should be empty, got %v", reloaded.Favorites())
	}
}

func TestExperienceLevelBoundary(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	s.profile.Experience = 95
	s.syncProfile()
	if s.Profile().Level != 1 {
		t.Fatalf("95 xp is level 1, got %d", s.Profile().Level)
	}

	// Completing a level awards +10 xp and crosses the boundary.
	if _, err := s.ToggleCompleted(ctx, "X"); err != nil {
		t.Fatal(err)
	}
	if got := s.Profile(); got.Experience != 105 || got.Level != 2 {
		t.Fatalf("expected 105 xp at level 2, got %+v", got)
	}

	// Un-completing keeps the experience.
	if _, err := s.ToggleCompleted(ctx, "X"); err != nil {
		t.Fatal(err)
	}
	if got := s.Profile(); got.Experience != 105 || got.CompletedCount != 0 {
		t.Fatalf("expected xp retained after un-complete, got %+v", got)
	}
}

func TestProgressCompletionConsistency(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	if err := s.SetProgress(ctx, "L", 100, ""); err != nil {
		t.Fatal(err)
	}
	if !s.IsCompleted("L") {
		t.Fatalf("progress 100 must imply completion")
	}
	if s.Profile().CompletedCount != 1 {
		t.Fatalf("completedCount out of sync")
	}

	if err := s.SetProgress(ctx, "L", 60, "halfway back"); err != nil {
		t.Fatal(err)
	}
	if s.IsCompleted("L") {
		t.Fatalf("progress below 100 must revoke completion")
	}
	entry, ok := s.ProgressFor("L")
	if !ok || entry.Percent != 60 || entry.Note != "halfway back" {
		t.Fatalf("unexpected progress entry: %+v ok=%v", entry, ok)
	}

	if err := s.SetProgress(ctx, "L", 101, ""); !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got %v", err)
	}
	if err := s.SetProgress(ctx, "L", -1, ""); !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got %v", err)
	}
}

func TestRatingValidationAndXP(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	if err := s.SetRating(ctx, "L", 0); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected rejection for rating 0, got %v", err)
	}
	if err := s.SetRating(ctx, "L", 6); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected rejection for rating 6, got %v", err)
	}
	if _, ok := s.RatingFor("L"); ok {
		t.Fatalf("rejected rating must not mutate state")
	}

	if err := s.SetRating(ctx, "L", 4); err != nil {
		t.Fatal(err)
	}
	if s.Profile().Experience != xpPerNewRating {
		t.Fatalf("first rating awards xp, got %d", s.Profile().Experience)
	}
	if err := s.SetRating(ctx, "L", 5); err != nil {
		t.Fatal(err)
	}
	if s.Profile().Experience != xpPerNewRating {
		t.Fatalf("re-rating must not award xp again, got %d", s.Profile().Experience)
	}
	if v, _ := s.RatingFor("L"); v != 5 {
		t.Fatalf("expected overwritten rating 5, got %d", v)
	}
}

func TestRecentlyViewedBounded(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	for i := 0; i < 15; i++ {
		lvl := catalog.Level{ID: fmt.Sprintf("id-%d", i), Name: fmt.Sprintf("level %d", i)}
		if err := s.RecordView(ctx, lvl); err != nil {
			t.Fatal(err)
		}
	}
	recent := s.RecentlyViewed()
	if len(recent) != MaxRecentlyViewed {
		t.Fatalf("expected bound %d, got %d", MaxRecentlyViewed, len(recent))
	}
	if recent[0].ID != "id-14" {
		t.Fatalf("most recent first, got %s", recent[0].ID)
	}

	// Re-viewing moves to front without duplicating.
	if err := s.RecordView(ctx, catalog.Level{ID: "id-8"}); err != nil {
		t.Fatal(err)
	}
	recent = s.RecentlyViewed()
	if recent[0].ID != "id-8" || len(recent) != MaxRecentlyViewed {
		t.Fatalf("re-view must move to front, got %s len=%d", recent[0].ID, len(recent))
	}
	seen := map[string]bool{}
	for _, lvl := range recent {
		if seen[lvl.ID] {
			t.Fatalf("duplicate id %s in recently viewed", lvl.ID)
		}
		seen[lvl.ID] = true
	}
}

func TestSearchHistoryBounded(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	if err := s.RecordSearch(ctx, "   "); err != nil {
		t.Fatal(err)
	}
	if len(s.SearchHistory()) != 0 {
		t.Fatalf("blank terms are not recorded")
	}
	for i := 0; i < 12; i++ {
		if err := s.RecordSearch(ctx, fmt.Sprintf("term-%d", i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RecordSearch(ctx, "term-5"); err != nil {
		t.Fatal(err)
	}
	history := s.SearchHistory()
	if len(history) != MaxSearchHistory || history[0] != "term-5" {
		t.Fatalf("unexpected history: %v", history)
	}
}

func TestCompareTrayBounded(t *testing.T) {
	s, _ := newStore(t)
	for i := 0; i < MaxCompare; i++ {
		added, err := s.ToggleCompare(catalog.Level{ID: fmt.Sprintf("c-%d", i)})
		if err != nil || !added {
			t.Fatalf("add %d: added=%v err=%v", i, added, err)
		}
	}
	if _, err := s.ToggleCompare(catalog.Level{ID: "c-extra"}); !errors.Is(err, ErrCompareFull) {
		t.Fatalf("expected ErrCompareFull, got %v", err)
	}
	// Toggling an existing entry removes it.
	if added, err := s.ToggleCompare(catalog.Level{ID: "c-1"}); err != nil || added {
		t.Fatalf("toggle existing: added=%v err=%v", added, err)
	}
	s.RemoveCompare("c-0")
	if len(s.CompareList()) != 2 {
		t.Fatalf("expected 2 left, got %d", len(s.CompareList()))
	}
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	if _, err := s.AddReview(ctx, "L", "", "  ", 4); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
	review, err := s.AddReview(ctx, "L", "", "great level", 4)
	if err != nil {
		t.Fatal(err)
	}
	if review.Author != "Guest" {
		t.Fatalf("empty author defaults to profile username, got %q", review.Author)
	}
	if review.ID == "" {
		t.Fatalf("review needs an id")
	}
	if _, err := s.AddReview(ctx, "M", "someone", "ok", 3); err != nil {
		t.Fatal(err)
	}
	if s.TotalReviewCount() != 2 {
		t.Fatalf("expected 2 reviews total, got %d", s.TotalReviewCount())
	}
	if got := s.ReviewsFor("L"); len(got) != 1 || got[0].Comment != "great level" {
		t.Fatalf("unexpected reviews: %+v", got)
	}
}

func TestAchievementsMonotonic(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	newly, err := s.Unlock(ctx, "firstLevel")
	if err != nil || !newly {
		t.Fatalf("unlock: newly=%v err=%v", newly, err)
	}
	newly, err = s.Unlock(ctx, "firstLevel")
	if err != nil || newly {
		t.Fatalf("re-unlock must be a no-op, newly=%v err=%v", newly, err)
	}
	if len(s.Achievements()) != 1 || !s.HasAchievement("firstLevel") {
		t.Fatalf("unexpected achievements: %v", s.Achievements())
	}
}

func TestCorruptStorageDegradesToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := state.NewMemory()
	_ = kv.Set(ctx, state.KeyFavorites, "{definitely not json")
	_ = kv.Set(ctx, state.KeyUserProfile, `{"username":"Guest","experience":250,"level":99,"completedCount":42}`)
	_ = kv.Set(ctx, state.KeyPageSize, "zero")

	s := Load(ctx, kv)
	if len(s.Favorites()) != 0 {
		t.Fatalf("corrupt favorites must default to empty")
	}
	// Stored derived fields are recomputed, not trusted.
	if got := s.Profile(); got.Level != 3 || got.CompletedCount != 0 {
		t.Fatalf("derived profile fields must be recomputed, got %+v", got)
	}
	if s.PageSize() != 12 {
		t.Fatalf("corrupt page size defaults to 12, got %d", s.PageSize())
	}
}

func TestResetWipesEverything(t *testing.T) {
	ctx := context.Background()
	s, kv := newStore(t)

	if _, err := s.ToggleFavorite(ctx, "X"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTheme(ctx, "light"); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if len(s.Favorites()) != 0 || s.Theme() != "dark" || s.Profile().Experience != 0 {
		t.Fatalf("reset must restore defaults")
	}
	if _, found, _ := kv.Get(ctx, state.KeyFavorites); found {
		t.Fatalf("reset must clear persisted storage")
	}
}
