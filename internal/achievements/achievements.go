// Package achievements evaluates unlock conditions against the user
// overlay. Each achievement is a one-way state machine: locked until its
// predicate first holds, then unlocked forever.
package achievements

// Stats is the overlay summary the predicates run against.
type Stats struct {
	RecentlyViewed int
	Favorites      int
	Completed      int
	Ratings        int
	Progress       int
	Reviews        int
}

type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Condition   func(Stats) bool
}

// All returns every achievement in a fixed evaluation order. Thresholds are
// inclusive.
func All() []Achievement {
	return []Achievement{
		{
			ID:          "firstLevel",
			Title:       "First Steps",
			Description: "View your first level",
			Icon:        "fa-shoe-prints",
			Condition:   func(s Stats) bool { return s.RecentlyViewed >= 1 },
		},
		{
			ID:          "explorer",
			Title:       "Explorer",
			Description: "View 10 different levels",
			Icon:        "fa-compass",
			Condition:   func(s Stats) bool { return s.RecentlyViewed >= 10 },
		},
		{
			ID:          "collector",
			Title:       "Collector",
			Description: "Add 5 levels to favorites",
			Icon:        "fa-heart",
			Condition:   func(s Stats) bool { return s.Favorites >= 5 },
		},
		{
			ID:          "completer",
			Title:       "Demon Slayer",
			Description: "Complete 3 levels",
			Icon:        "fa-skull",
			Condition:   func(s Stats) bool { return s.Completed >= 3 },
		},
		{
			ID:          "master",
			Title:       "Demon Master",
			Description: "Complete 10 levels",
			Icon:        "fa-crown",
			Condition:   func(s Stats) bool { return s.Completed >= 10 },
		},
		{
			ID:          "reviewer",
			Title:       "Critic",
			Description: "Rate 5 levels",
			Icon:        "fa-star",
			Condition:   func(s Stats) bool { return s.Ratings >= 5 },
		},
		{
			ID:          "progressTracker",
			Title:       "Progress Tracker",
			Description: "Track progress on 5 levels",
			Icon:        "fa-chart-line",
			Condition:   func(s Stats) bool { return s.Progress >= 5 },
		},
		{
			ID:          "communityMember",
			Title:       "Community Member",
			Description: "Write 3 reviews",
			Icon:        "fa-comments",
			Condition:   func(s Stats) bool { return s.Reviews >= 3 },
		},
	}
}

// Evaluate returns the achievements whose conditions hold and that the
// unlocked predicate does not already report. Re-evaluating an unlocked
// achievement yields nothing.
func Evaluate(s Stats, unlocked func(id string) bool) []Achievement {
	var newly []Achievement
	for _, a := range All() {
		if unlocked(a.ID) {
			continue
		}
		if a.Condition(s) {
			newly = append(newly, a)
		}
	}
	return newly
}
