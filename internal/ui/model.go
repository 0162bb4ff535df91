// Package ui is the terminal presentation adapter. It renders the derived
// view snapshots produced by the app core and translates key presses into
// core intents. All state lives in the core; the model only holds cursor
// position, the active screen and widget state.
package ui

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"demonlist/internal/app"
	"demonlist/internal/catalog"
	"demonlist/internal/query"
)

type screen int

const (
	screenBrowse screen = iota
	screenDetail
	screenRecommend
	screenCompare
)

var sortCycle = []query.Sort{
	query.SortRank, query.SortName, query.SortDifficulty, query.SortCreator, query.SortRating,
}

var difficultyCycle = []string{
	query.DifficultyAll, "easy", "medium", "hard", "insane", "extreme", "impossible",
}

var modeCycle = []app.ListMode{app.ModeAll, app.ModeFavorites, app.ModeRecent}

// appEventMsg wraps a core notification for the bubbletea loop.
type appEventMsg app.Event

type Model struct {
	core   *app.App
	keys   keyMap
	help   help.Model
	search textinput.Model
	pager  paginator.Model
	styles styles

	screen   screen
	view     app.View
	cursor   int
	detail   app.Card
	recs     []catalog.Level
	status   string
	flipGate *app.Throttler

	exportDir string
	width     int
	height    int
}

func New(core *app.App, exportDir string) Model {
	search := textinput.New()
	search.Placeholder = "search levels, creators, tags"
	search.Prompt = "/ "
	search.CharLimit = 64

	pager := paginator.New()
	pager.Type = paginator.Dots

	m := Model{
		core:      core,
		keys:      newKeyMap(),
		help:      help.New(),
		search:    search,
		pager:     pager,
		flipGate:  app.NewThrottler(app.PageFlipInterval),
		exportDir: exportDir,
	}
	m.view = core.View()
	m.styles = newStyles(m.view.Theme)
	return m
}

func (m Model) Init() tea.Cmd {
	m.core.Init()
	return tea.Batch(listenEvents(m.core), textinput.Blink)
}

// listenEvents blocks on the core's notification stream and feeds each
// event back into the update loop, then re-arms itself.
func listenEvents(core *app.App) tea.Cmd {
	return func() tea.Msg {
		return appEventMsg(<-core.Events())
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case appEventMsg:
		return m.onEvent(app.Event(msg))

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.onKey(msg)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) onEvent(e app.Event) (tea.Model, tea.Cmd) {
	switch e.Kind {
	case app.EventDataLoaded, app.EventViewRefreshed, app.EventLoadFailed:
		m.refresh()
	case app.EventAchievementUnlocked, app.EventNotice:
		m.status = e.Message
		m.refresh()
	}
	return m, listenEvents(m.core)
}

// refresh pulls a fresh snapshot and re-clamps the cursor and paginator.
func (m *Model) refresh() {
	m.view = m.core.View()
	m.styles = newStyles(m.view.Theme)
	if m.cursor >= len(m.view.Cards) {
		m.cursor = len(m.view.Cards) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.view.TotalPages > 0 {
		m.pager.SetTotalPages(m.view.TotalPages)
		m.pager.Page = m.view.Page - 1
	}
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Blur()
		return m, nil
	case "enter":
		m.search.Blur()
		m.core.SetSearch(m.search.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.core.SetSearch(m.search.Value())
	return m, cmd
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, k.Back):
		if m.screen != screenBrowse {
			m.screen = screenBrowse
			return m, nil
		}
		m.core.ResetFilters()
		m.search.SetValue("")
		return m, nil
	}

	switch m.screen {
	case screenDetail:
		return m.onDetailKey(msg)
	case screenRecommend:
		return m.onRecommendKey(msg)
	case screenCompare:
		return m.onCompareKey(msg)
	}
	return m.onBrowseKey(msg)
}

func (m Model) onBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.cursor < len(m.view.Cards)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.NextPage):
		if m.flipGate.Allow() && m.view.Page < m.view.TotalPages {
			m.cursor = 0
			m.core.SetPage(m.view.Page + 1)
		}
	case key.Matches(msg, k.PrevPage):
		if m.flipGate.Allow() && m.view.Page > 1 {
			m.cursor = 0
			m.core.SetPage(m.view.Page - 1)
		}
	case key.Matches(msg, k.Search):
		return m, m.search.Focus()
	case key.Matches(msg, k.Difficulty):
		m.core.SetDifficulty(next(difficultyCycle, m.view.Difficulty))
	case key.Matches(msg, k.Sort):
		m.core.SetSort(next(sortCycle, m.view.Sort))
	case key.Matches(msg, k.Mode):
		m.core.SetMode(next(modeCycle, m.view.Mode))
	case key.Matches(msg, k.Favorite):
		if c, ok := m.current(); ok {
			_, _ = m.core.ToggleFavorite(ctx, c.ID)
		}
	case key.Matches(msg, k.Complete):
		if c, ok := m.current(); ok {
			_, _ = m.core.MarkCompleted(ctx, c.ID)
		}
	case key.Matches(msg, k.Compare):
		if c, ok := m.current(); ok {
			if _, err := m.core.ToggleCompare(c.Level); err != nil {
				m.status = "Comparison tray is full"
			}
		}
	case key.Matches(msg, k.Details):
		if c, ok := m.current(); ok {
			m.detail = c
			m.screen = screenDetail
			_ = m.core.ViewLevel(ctx, c.Level)
		}
	case key.Matches(msg, k.Random):
		if lvl, ok := m.core.RandomLevel(ctx); ok {
			m.detail = m.cardFor(lvl)
			m.screen = screenDetail
		}
	case key.Matches(msg, k.Recs):
		m.recs = m.core.Recommendations(0)
		m.screen = screenRecommend
	case key.Matches(msg, k.Retry):
		m.core.RetryLoad()
	case key.Matches(msg, k.UseCache):
		_ = m.core.LoadCachedData(ctx)
	case key.Matches(msg, k.UseSample):
		m.core.LoadSampleData()
	case key.Matches(msg, k.Export):
		m.status = m.exportCatalog()
	case key.Matches(msg, k.Theme):
		m.toggleTheme(ctx)
	case msg.String() == "O":
		m.screen = screenCompare
	}
	return m, nil
}

func (m Model) onDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	k := m.keys
	id := m.detail.ID
	switch s := msg.String(); {
	case s >= "1" && s <= "5":
		if err := m.core.RateLevel(ctx, id, int(s[0]-'0'), ""); err == nil {
			m.detail.UserRating = int(s[0] - '0')
			m.status = "Rated " + m.detail.Name
		}
	case s == "+" || s == "=":
		m.bumpProgress(ctx, 5)
	case s == "-":
		m.bumpProgress(ctx, -5)
	case key.Matches(msg, k.Favorite):
		if added, err := m.core.ToggleFavorite(ctx, id); err == nil {
			m.detail.Favorite = added
		}
	case key.Matches(msg, k.Complete):
		if done, err := m.core.MarkCompleted(ctx, id); err == nil {
			m.detail.Completed = done
			if done {
				m.detail.Progress = 100
			}
		}
	case key.Matches(msg, k.Compare):
		if _, err := m.core.ToggleCompare(m.detail.Level); err != nil {
			m.status = "Comparison tray is full"
		}
	}
	return m, nil
}

func (m *Model) bumpProgress(ctx context.Context, delta int) {
	p := m.detail.Progress + delta
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	if err := m.core.SetProgress(ctx, m.detail.ID, p, ""); err == nil {
		m.detail.Progress = p
		m.detail.Completed = p == 100
	}
}

func (m Model) onRecommendKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.cursor < len(m.recs)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.Details):
		if m.cursor < len(m.recs) {
			lvl := m.recs[m.cursor]
			m.detail = m.cardFor(lvl)
			m.screen = screenDetail
			_ = m.core.ViewLevel(context.Background(), lvl)
		}
	case key.Matches(msg, k.Recs):
		m.recs = m.core.Recommendations(0)
	}
	return m, nil
}

func (m Model) onCompareKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	tray := m.core.CompareList()
	switch {
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.cursor < len(tray)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.Compare):
		if m.cursor < len(tray) {
			m.core.RemoveFromCompare(tray[m.cursor].ID)
			if m.cursor > 0 {
				m.cursor--
			}
		}
	case key.Matches(msg, k.Export):
		m.status = m.exportComparison()
	}
	return m, nil
}

func (m *Model) toggleTheme(ctx context.Context) {
	theme := "dark"
	if m.view.Theme == "dark" {
		theme = "light"
	}
	if err := m.core.SetTheme(ctx, theme); err == nil {
		m.view.Theme = theme
		m.styles = newStyles(theme)
	}
}

func (m Model) exportCatalog() string {
	path := filepath.Join(m.exportDir, "catalog-export.csv")
	f, err := os.Create(path)
	if err != nil {
		return "Export failed: " + err.Error()
	}
	defer f.Close()
	if err := m.core.ExportCatalog(f); err != nil {
		return "Export failed: " + err.Error()
	}
	return "Exported catalog to " + path
}

func (m Model) exportComparison() string {
	path := filepath.Join(m.exportDir, "level-comparison.json")
	f, err := os.Create(path)
	if err != nil {
		return "Export failed: " + err.Error()
	}
	defer f.Close()
	if err := m.core.ExportComparison(f); err != nil {
		return "Export failed: " + err.Error()
	}
	return "Exported comparison to " + path
}

func (m Model) current() (app.Card, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Cards) {
		return app.Card{}, false
	}
	return m.view.Cards[m.cursor], true
}

// cardFor enriches a bare level with overlay state for the detail screen.
func (m Model) cardFor(lvl catalog.Level) app.Card {
	ov := m.core.Overlay()
	card := app.Card{Level: lvl, Favorite: ov.IsFavorite(lvl.ID), Completed: ov.IsCompleted(lvl.ID)}
	if r, ok := ov.RatingFor(lvl.ID); ok {
		card.UserRating = r
	}
	if p, ok := ov.ProgressFor(lvl.ID); ok {
		card.Progress = p.Percent
	}
	return card
}

// next returns the element after cur, wrapping around. Unknown values
// restart the cycle.
func next[T comparable](cycle []T, cur T) T {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}
