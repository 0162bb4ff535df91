package recommend

import (
	"fmt"
	"math/rand"
	"testing"

	"demonlist/internal/catalog"
)

func buildCatalog() []catalog.Level {
	// 20 levels: 8 extreme, 6 hard, 6 easy.
	rows := make([]catalog.Level, 0, 20)
	add := func(diff string, n int, baseRating float64) {
		for i := 0; i < n; i++ {
			rows = append(rows, catalog.Level{
				ID:         fmt.Sprintf("%s-%d", diff, i),
				Name:       fmt.Sprintf("%s level %d", diff, i),
				Difficulty: diff,
				Rating:     baseRating - float64(i)*0.1,
			})
		}
	}
	add("extreme", 8, 5)
	add("hard", 6, 4)
	add("easy", 6, 3)
	return rows
}

func TestColdStartScenario(t *testing.T) {
	rows := buildCatalog()
	completed := map[string]bool{"extreme-0": true, "hard-0": true, "easy-0": true}

	got := Recommend(rows, Tastes{Completed: completed}, 6, rand.New(rand.NewSource(1)))
	if len(got) != 6 {
		t.Fatalf("expected 6 recommendations, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, lvl := range got {
		if completed[lvl.ID] {
			t.Fatalf("completed level %s recommended", lvl.ID)
		}
		if seen[lvl.ID] {
			t.Fatalf("duplicate recommendation %s", lvl.ID)
		}
		seen[lvl.ID] = true
	}
}

func TestPreferredDifficultyFirst(t *testing.T) {
	rows := buildCatalog()
	tastes := Tastes{
		Completed: map[string]bool{},
		RecentlyViewed: []catalog.Level{
			{ID: "extreme-1", Difficulty: "Extreme"},
			{ID: "extreme-2", Difficulty: "extreme"},
			{ID: "hard-1", Difficulty: "hard"},
		},
		Ratings: map[string]int{"hard-2": 5},
	}
	// Weights: extreme=2, hard=1+1=2; tie broken by label, extreme < hard
	// alphabetically... "extreme" < "hard", so extreme ranks first.
	got := Recommend(rows, tastes, 6, rand.New(rand.NewSource(7)))
	if len(got) != 6 {
		t.Fatalf("expected 6, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Difficulty == got[i].Difficulty && got[i-1].Rating < got[i].Rating {
			t.Fatalf("within a difficulty, rating must be non-increasing: %v then %v", got[i-1], got[i])
		}
	}
	if got[0].Difficulty != "extreme" {
		t.Fatalf("expected extreme candidates first, got %s", got[0].Difficulty)
	}
	// All 8 extreme are candidates, so the whole page is extreme.
	for _, lvl := range got {
		if lvl.Difficulty != "extreme" {
			t.Fatalf("expected only extreme in the first 6, got %s", lvl.Difficulty)
		}
	}
}

func TestBackfillWhenPreferredScarce(t *testing.T) {
	rows := []catalog.Level{
		{ID: "1", Difficulty: "insane", Rating: 4},
		{ID: "2", Difficulty: "easy", Rating: 1},
		{ID: "3", Difficulty: "easy", Rating: 2},
		{ID: "4", Difficulty: "medium", Rating: 3},
	}
	tastes := Tastes{
		Completed:      map[string]bool{},
		RecentlyViewed: []catalog.Level{{ID: "1", Difficulty: "insane"}},
	}
	got := Recommend(rows, tastes, 3, rand.New(rand.NewSource(3)))
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	if got[0].ID != "1" {
		t.Fatalf("the only preferred candidate comes first, got %s", got[0].ID)
	}
}

func TestSmallerPoolThanCount(t *testing.T) {
	rows := []catalog.Level{
		{ID: "1", Difficulty: "easy"},
		{ID: "2", Difficulty: "easy"},
	}
	got := Recommend(rows, Tastes{Completed: map[string]bool{"2": true}}, 6, rand.New(rand.NewSource(5)))
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected the single remaining candidate, got %v", got)
	}
	if got := Recommend(nil, Tastes{}, 6, nil); got != nil {
		t.Fatalf("empty catalog yields nil, got %v", got)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	rows := buildCatalog()
	a := Recommend(rows, Tastes{}, 6, rand.New(rand.NewSource(42)))
	b := Recommend(rows, Tastes{}, 6, rand.New(rand.NewSource(42)))
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same seed must reproduce the same draw")
		}
	}
}
