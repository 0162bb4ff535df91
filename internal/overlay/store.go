// Package overlay owns the per-user state layered on top of the catalogs:
// favorites, completions, ratings, progress, reviews, recently viewed,
// search history, comparison tray, achievements and the profile aggregate.
// Every mutation is synchronously flushed to the persistence adapter so the
// in-memory state and the stored copy never drift between operations.
package overlay

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"demonlist/internal/catalog"
	"demonlist/internal/query"
	"demonlist/internal/state"
)

type Store struct {
	kv state.KV

	// mu guards every collection below; mutations arrive from the event
	// loop and from debounced timers.
	mu sync.Mutex

	favorites      []string
	completed      []string
	recentlyViewed []catalog.Level
	ratings        map[string]int
	progress       map[string]ProgressEntry
	reviews        map[string][]Review
	searchHistory  []string
	achievements   []string
	compare        []catalog.Level
	profile        Profile

	viewMode string
	theme    string
	pageSize int

	now func() time.Time
}

// Load builds the overlay from persisted state. Every key is independently
// defaulted when missing or malformed; corruption is absorbed, never fatal.
func Load(ctx context.Context, kv state.KV) *Store {
	s := &Store{kv: kv, now: time.Now}
	s.applyDefaults()

	readJSON(ctx, kv, state.KeyFavorites, &s.favorites)
	readJSON(ctx, kv, state.KeyCompletedLevels, &s.completed)
	readJSON(ctx, kv, state.KeyRecentlyViewed, &s.recentlyViewed)
	readJSON(ctx, kv, state.KeyUserRatings, &s.ratings)
	readJSON(ctx, kv, state.KeyLevelProgress, &s.progress)
	readJSON(ctx, kv, state.KeyCommunityReviews, &s.reviews)
	readJSON(ctx, kv, state.KeySearchHistory, &s.searchHistory)
	readJSON(ctx, kv, state.KeyAchievements, &s.achievements)
	readJSON(ctx, kv, state.KeyUserProfile, &s.profile)

	if v, found, _ := kv.Get(ctx, state.KeyViewMode); found && (v == "grid" || v == "list") {
		s.viewMode = v
	}
	if v, found, _ := kv.Get(ctx, state.KeyTheme); found && (v == "dark" || v == "light") {
		s.theme = v
	}
	if v, found, _ := kv.Get(ctx, state.KeyPageSize); found {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.pageSize = n
		}
	}

	if s.profile.Username == "" {
		s.profile.Username = "Guest"
	}
	// Derived profile fields are never trusted from storage.
	s.syncProfile()
	return s
}

func (s *Store) applyDefaults() {
	s.favorites = nil
	s.completed = nil
	s.recentlyViewed = nil
	s.ratings = map[string]int{}
	s.progress = map[string]ProgressEntry{}
	s.reviews = map[string][]Review{}
	s.searchHistory = nil
	s.achievements = nil
	s.compare = nil
	s.profile = defaultProfile()
	s.viewMode = "grid"
	s.theme = "dark"
	s.pageSize = query.DefaultPageSize
}

func readJSON(ctx context.Context, kv state.KV, key string, dst any) {
	raw, found, err := kv.Get(ctx, key)
	if err != nil || !found {
		return
	}
	// Malformed persisted JSON degrades to the default already in dst.
	_ = json.Unmarshal([]byte(raw), dst)
}

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(b))
}

func (s *Store) syncProfile() {
	s.profile.CompletedCount = len(s.completed)
	s.profile.FavoriteCount = len(s.favorites)
	if s.profile.Experience < 0 {
		s.profile.Experience = 0
	}
	s.profile.Level = LevelForExperience(s.profile.Experience)
}

func (s *Store) persistProfile(ctx context.Context) error {
	s.syncProfile()
	return s.putJSON(ctx, state.KeyUserProfile, s.profile)
}

// ToggleFavorite adds or removes a level id and reports whether it is now a
// favorite.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := true
	for i, fav := range s.favorites {
		if fav == id {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			added = false
			break
		}
	}
	if added {
		s.favorites = append(s.favorites, id)
	}
	if err := s.putJSON(ctx, state.KeyFavorites, s.favorites); err != nil {
		return added, err
	}
	return added, s.persistProfile(ctx)
}

// ToggleCompleted flips completion for a level id. Newly completing a level
// awards experience; un-completing does not claw it back.
func (s *Store) ToggleCompleted(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isCompleted(id) {
		return false, s.removeCompleted(ctx, id)
	}
	return true, s.addCompleted(ctx, id)
}

func (s *Store) isCompleted(id string) bool {
	for _, c := range s.completed {
		if c == id {
			return true
		}
	}
	return false
}

func (s *Store) addCompleted(ctx context.Context, id string) error {
	if s.isCompleted(id) {
		return nil
	}
	s.completed = append(s.completed, id)
	s.profile.Experience += xpPerCompletion
	if err := s.putJSON(ctx, state.KeyCompletedLevels, s.completed); err != nil {
		return err
	}
	return s.persistProfile(ctx)
}

func (s *Store) removeCompleted(ctx context.Context, id string) error {
	for i, c := range s.completed {
		if c == id {
			s.completed = append(s.completed[:i], s.completed[i+1:]...)
			if err := s.putJSON(ctx, state.KeyCompletedLevels, s.completed); err != nil {
				return err
			}
			return s.persistProfile(ctx)
		}
	}
	return nil
}

// SetRating stores a 1..5 rating. The first rating of a level awards
// experience; re-rating just overwrites.
func (s *Store) SetRating(ctx context.Context, id string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, rated := s.ratings[id]
	s.ratings[id] = rating
	if !rated {
		s.profile.Experience += xpPerNewRating
	}
	if err := s.putJSON(ctx, state.KeyUserRatings, s.ratings); err != nil {
		return err
	}
	return s.persistProfile(ctx)
}

// AddReview appends a community review for a level.
func (s *Store) AddReview(ctx context.Context, id, author, comment string, rating int) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return Review{}, ErrEmptyComment
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(author) == "" {
		author = s.profile.Username
	}
	review := Review{
		ID:        uuid.NewString(),
		Author:    author,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now().UTC(),
	}
	s.reviews[id] = append(s.reviews[id], review)
	return review, s.putJSON(ctx, state.KeyCommunityReviews, s.reviews)
}

// SetProgress records 0..100 percent progress. Reaching 100 implies
// completion; dropping below 100 revokes it. The two sets never disagree
// once this returns.
func (s *Store) SetProgress(ctx context.Context, id string, percent int, note string) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidProgress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[id] = ProgressEntry{Percent: percent, Note: note, UpdatedAt: s.now().UTC()}
	if err := s.putJSON(ctx, state.KeyLevelProgress, s.progress); err != nil {
		return err
	}
	if percent >= 100 {
		return s.addCompleted(ctx, id)
	}
	return s.removeCompleted(ctx, id)
}

// RecordView pushes a level snapshot to the front of recently-viewed,
// de-duplicated by id and bounded to MaxRecentlyViewed.
func (s *Store) RecordView(ctx context.Context, lvl catalog.Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, seen := range s.recentlyViewed {
		if seen.ID == lvl.ID {
			s.recentlyViewed = append(s.recentlyViewed[:i], s.recentlyViewed[i+1:]...)
			break
		}
	}
	s.recentlyViewed = append([]catalog.Level{lvl}, s.recentlyViewed...)
	if len(s.recentlyViewed) > MaxRecentlyViewed {
		s.recentlyViewed = s.recentlyViewed[:MaxRecentlyViewed]
	}
	return s.putJSON(ctx, state.KeyRecentlyViewed, s.recentlyViewed)
}

// RecordSearch pushes a non-empty search term to the front of the bounded,
// de-duplicated history.
func (s *Store) RecordSearch(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.searchHistory {
		if h == term {
			s.searchHistory = append(s.searchHistory[:i], s.searchHistory[i+1:]...)
			break
		}
	}
	s.searchHistory = append([]string{term}, s.searchHistory...)
	if len(s.searchHistory) > MaxSearchHistory {
		s.searchHistory = s.searchHistory[:MaxSearchHistory]
	}
	return s.putJSON(ctx, state.KeySearchHistory, s.searchHistory)
}

// ToggleCompare adds a level to the comparison tray, or removes it when
// already present. The tray holds at most MaxCompare levels.
func (s *Store) ToggleCompare(lvl catalog.Level) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.compare {
		if c.ID == lvl.ID {
			s.compare = append(s.compare[:i], s.compare[i+1:]...)
			return false, nil
		}
	}
	if len(s.compare) >= MaxCompare {
		return false, ErrCompareFull
	}
	s.compare = append(s.compare, lvl)
	return true, nil
}

// RemoveCompare drops a level id from the comparison tray.
func (s *Store) RemoveCompare(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.compare {
		if c.ID == id {
			s.compare = append(s.compare[:i], s.compare[i+1:]...)
			return
		}
	}
}

// Unlock records an achievement id. Unlocking is one-way and idempotent.
func (s *Store) Unlock(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.achievements {
		if a == id {
			return false, nil
		}
	}
	s.achievements = append(s.achievements, id)
	return true, s.putJSON(ctx, state.KeyAchievements, s.achievements)
}

func (s *Store) SetViewMode(ctx context.Context, mode string) error {
	if mode != "grid" && mode != "list" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = mode
	return s.kv.Set(ctx, state.KeyViewMode, mode)
}

func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != "dark" && theme != "light" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return s.kv.Set(ctx, state.KeyTheme, theme)
}

func (s *Store) SetPageSize(ctx context.Context, n int) error {
	if n < 1 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = n
	return s.kv.Set(ctx, state.KeyPageSize, strconv.Itoa(n))
}

// Reset wipes persisted storage and reinitializes every field to defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Clear(ctx); err != nil {
		return err
	}
	s.applyDefaults()
	return nil
}
