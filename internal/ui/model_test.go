package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"demonlist/internal/app"
	"demonlist/internal/catalog"
	"demonlist/internal/query"
	"demonlist/internal/state"
	"demonlist/internal/telemetry"
)

func testModel(t *testing.T) Model {
	t.Helper()
	logger, err := telemetry.NewLogger("")
	if err != nil {
		t.Fatal(err)
	}
	cfg := app.DefaultConfig()
	cfg.Ephemeral = true
	cfg.SearchDebounce = 10 * time.Millisecond
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	core := app.New(app.Options{
		Config:  cfg,
		Logger:  logger,
		KV:      state.NewMemory(),
		Sources: catalog.DefaultSources(),
		Seed:    1,
	})
	t.Cleanup(func() { _ = core.Close() })
	core.LoadSampleData()
	return New(core, t.TempDir())
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestBrowseRendersSampleCatalog(t *testing.T) {
	m := testModel(t)
	out := m.View()
	if !strings.Contains(out, "Demonlist") {
		t.Fatalf("missing title:\n%s", out)
	}
	for _, name := range []string{"Sample Demon", "Practice Gauntlet", "Impossible Wave"} {
		if !strings.Contains(out, name) {
			t.Fatalf("sample level %s not rendered:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "page 1/1") {
		t.Fatalf("missing pagination footer:\n%s", out)
	}
}

func TestFavoriteKeyTogglesCursorLevel(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(keyPress('f'))
	m = next.(Model)

	id := m.view.Cards[0].ID
	if !m.core.Overlay().IsFavorite(id) {
		t.Fatalf("favorite key did not reach the core")
	}
}

func TestDetailScreenShowsLevel(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.screen != screenDetail {
		t.Fatalf("enter must open the detail screen")
	}
	out := m.View()
	if !strings.Contains(out, m.detail.Name) || !strings.Contains(out, "Verifier") {
		t.Fatalf("detail screen incomplete:\n%s", out)
	}
	if len(m.core.Overlay().RecentlyViewed()) != 1 {
		t.Fatalf("opening details must record the view")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.screen != screenBrowse {
		t.Fatalf("esc must return to browsing")
	}
}

func TestSortAndDifficultyCycle(t *testing.T) {
	if got := next(sortCycle, query.SortRank); got != query.SortName {
		t.Fatalf("expected name after rank, got %s", got)
	}
	if got := next(sortCycle, query.SortRating); got != query.SortRank {
		t.Fatalf("cycle must wrap, got %s", got)
	}
	if got := next(difficultyCycle, "bogus"); got != query.DifficultyAll {
		t.Fatalf("unknown value must restart the cycle, got %s", got)
	}
}

func TestLoadFailureOffersFallbacks(t *testing.T) {
	m := testModel(t)
	m.view.LoadErr = catalog.ErrNetwork
	m.view.Loading = false
	out := m.View()
	if !strings.Contains(out, "retry") || !strings.Contains(out, "sample") {
		t.Fatalf("failure screen must offer fallbacks:\n%s", out)
	}
}
