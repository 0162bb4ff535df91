package overlay

import "demonlist/internal/catalog"

// Accessors return copies so callers can never mutate overlay state behind
// the store's back.

func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.favorites...)
}

func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fav := range s.favorites {
		if fav == id {
			return true
		}
	}
	return false
}

func (s *Store) CompletedLevels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.completed...)
}

func (s *Store) IsCompleted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isCompleted(id)
}

func (s *Store) CompletedSet() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[string]bool, len(s.completed))
	for _, id := range s.completed {
		set[id] = true
	}
	return set
}

func (s *Store) RecentlyViewed() []catalog.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Level(nil), s.recentlyViewed...)
}

func (s *Store) Ratings() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.ratings))
	for k, v := range s.ratings {
		out[k] = v
	}
	return out
}

func (s *Store) RatingFor(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.ratings[id]
	return v, ok
}

func (s *Store) ProgressFor(id string) (ProgressEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.progress[id]
	return v, ok
}

func (s *Store) ProgressCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.progress)
}

func (s *Store) ReviewsFor(id string) []Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Review(nil), s.reviews[id]...)
}

// TotalReviewCount sums reviews across all levels.
func (s *Store) TotalReviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, list := range s.reviews {
		total += len(list)
	}
	return total
}

func (s *Store) SearchHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.searchHistory...)
}

func (s *Store) CompareList() []catalog.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Level(nil), s.compare...)
}

func (s *Store) Achievements() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.achievements...)
}

func (s *Store) HasAchievement(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.achievements {
		if a == id {
			return true
		}
	}
	return false
}

func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Store) ViewMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Store) PageSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageSize
}
