// Package app is the composition root: it owns the canonical catalog and
// overlay state, applies intents from the presentation adapter in order,
// and recomputes the derived view after every mutation. The adapter never
// touches the stores directly.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"demonlist/internal/achievements"
	"demonlist/internal/catalog"
	"demonlist/internal/overlay"
	"demonlist/internal/query"
	"demonlist/internal/recommend"
	"demonlist/internal/state"
	"demonlist/internal/telemetry"
)

type App struct {
	cfg     Config
	logger  *telemetry.Logger
	kv      state.KV
	overlay *overlay.Store
	fetcher *catalog.HTTPFetcher
	sources catalog.Sources
	rng     *rand.Rand

	sessionID string
	events    chan Event
	debounce  *Debouncer

	mu      sync.Mutex
	list    catalog.ListType
	store   *catalog.Store
	loadErr error
	loading bool
	loadSeq int
	cancel  context.CancelFunc

	mode   ListMode
	params query.Params
	page   int
}

type Options struct {
	Config  Config
	Logger  *telemetry.Logger
	KV      state.KV
	Sources catalog.Sources
	Seed    int64
}

func New(opts Options) *App {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a := &App{
		cfg:       opts.Config,
		logger:    opts.Logger,
		kv:        opts.KV,
		overlay:   overlay.Load(context.Background(), opts.KV),
		fetcher:   catalog.NewFetcher(opts.Config.FetchTimeout),
		sources:   opts.Sources,
		rng:       rand.New(rand.NewSource(seed)),
		sessionID: uuid.NewString(),
		events:    make(chan Event, 32),
		debounce:  NewDebouncer(opts.Config.SearchDebounce),
		list:      catalog.ListType(opts.Config.List),
		mode:      ModeAll,
		params:    query.Params{Difficulty: query.DifficultyAll, Sort: query.SortRank},
		page:      1,
	}
	a.logger.Info("app.start", map[string]any{"session": a.sessionID, "list": string(a.list)})
	return a
}

// Events is the notification stream consumed by the presentation adapter.
func (a *App) Events() <-chan Event { return a.events }

func (a *App) emit(e Event) {
	select {
	case a.events <- e:
	default:
		// A stalled adapter must never block the core.
	}
}

func (a *App) SessionID() string { return a.sessionID }

// Close stops pending work and releases the log.
func (a *App) Close() error {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.mu.Unlock()
	a.debounce.Stop()
	return a.logger.Close()
}

// View returns the current derived snapshot.
func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view()
}

// --- catalog loading -------------------------------------------------------

// Init starts the initial network load for the configured list.
func (a *App) Init() { a.StartLoad() }

// StartLoad kicks off an asynchronous network load. Any load already in
// flight is cancelled and its result discarded.
func (a *App) StartLoad() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.loadSeq++
	seq := a.loadSeq
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.loading = true
	a.loadErr = nil
	list := a.list
	a.mu.Unlock()

	go a.runLoad(ctx, seq, list)
}

func (a *App) runLoad(ctx context.Context, seq int, list catalog.ListType) {
	url, err := a.sources.URL(list)
	var rows []catalog.Level
	if err == nil {
		rows, err = a.fetcher.Fetch(ctx, url)
	}

	a.mu.Lock()
	if seq != a.loadSeq {
		// Superseded by retry/cache/sample; discard.
		a.mu.Unlock()
		return
	}
	a.loading = false
	if err != nil {
		a.loadErr = err
		a.mu.Unlock()
		a.logger.Error("catalog.load_failed", map[string]any{"list": string(list), "error": err.Error()})
		a.emit(Event{Kind: EventLoadFailed, Err: err, Message: "Failed to load level data"})
		return
	}
	store := &catalog.Store{List: list, Rows: rows, Strategy: catalog.StrategyNetwork, LoadedAt: time.Now().UTC()}
	a.store = store
	a.loadErr = nil
	a.page = 1
	a.mu.Unlock()

	if err := catalog.SaveSnapshot(ctx, a.kv, store); err != nil {
		a.logger.Warn("catalog.cache_write_failed", map[string]any{"error": err.Error()})
	}
	a.logger.Info("catalog.loaded", map[string]any{"list": string(list), "levels": len(rows)})
	a.emit(Event{Kind: EventDataLoaded, Message: "Loaded live level data"})
	a.emit(Event{Kind: EventViewRefreshed})
}

// RetryLoad re-runs the network load.
func (a *App) RetryLoad() { a.StartLoad() }

// LoadCachedData falls back to the last persisted snapshot.
func (a *App) LoadCachedData(ctx context.Context) error {
	store, err := catalog.LoadSnapshot(ctx, a.kv)

	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.loadSeq++
	a.loading = false
	if err != nil {
		a.mu.Unlock()
		a.emit(Event{Kind: EventLoadFailed, Err: err, Message: "No cached data available"})
		return err
	}
	a.store = store
	a.loadErr = nil
	a.page = 1
	a.mu.Unlock()

	a.logger.Info("catalog.loaded_cache", map[string]any{"levels": len(store.Rows)})
	a.emit(Event{Kind: EventDataLoaded, Message: "Loaded cached data"})
	a.emit(Event{Kind: EventViewRefreshed})
	return nil
}

// LoadSampleData switches to the built-in dataset. It never fails.
func (a *App) LoadSampleData() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.loadSeq++
	a.loading = false
	a.store = catalog.SampleStore(a.list)
	a.loadErr = nil
	a.page = 1
	a.mu.Unlock()

	a.emit(Event{Kind: EventDataLoaded, Message: "Loaded sample data"})
	a.emit(Event{Kind: EventViewRefreshed})
}

// SelectList switches the active catalog and reloads it. The list type is
// always explicit; it is never inferred from the environment.
func (a *App) SelectList(list catalog.ListType) error {
	if !list.Valid() {
		return fmt.Errorf("unknown list type %q", list)
	}
	a.mu.Lock()
	a.list = list
	a.store = nil
	a.mode = ModeAll
	a.page = 1
	a.mu.Unlock()
	a.StartLoad()
	return nil
}

// --- filtering and paging --------------------------------------------------

// ApplyFilters sets the whole filter state at once and resets to page 1.
func (a *App) ApplyFilters(search, difficulty string, sort query.Sort) {
	a.mu.Lock()
	a.params = query.Params{Search: search, Difficulty: difficulty, Sort: sort}
	a.page = 1
	a.mu.Unlock()
	a.emit(Event{Kind: EventViewRefreshed})
}

// SetSearch debounces keystrokes: only the last term within the window is
// applied, recorded to history, and announced.
func (a *App) SetSearch(term string) {
	a.debounce.Trigger(func() {
		a.mu.Lock()
		a.params.Search = term
		a.page = 1
		a.mu.Unlock()
		if err := a.overlay.RecordSearch(context.Background(), term); err != nil {
			a.logger.Warn("overlay.search_history", map[string]any{"error": err.Error()})
		}
		a.emit(Event{Kind: EventViewRefreshed})
	})
}

// SetDifficulty applies a difficulty filter immediately.
func (a *App) SetDifficulty(label string) {
	a.mu.Lock()
	a.params.Difficulty = label
	a.page = 1
	a.mu.Unlock()
	a.emit(Event{Kind: EventViewRefreshed})
}

// SetSort applies a sort key immediately.
func (a *App) SetSort(sort query.Sort) {
	a.mu.Lock()
	a.params.Sort = sort
	a.page = 1
	a.mu.Unlock()
	a.emit(Event{Kind: EventViewRefreshed})
}

// ResetFilters restores the default query and list mode.
func (a *App) ResetFilters() {
	a.mu.Lock()
	a.params = query.Params{Difficulty: query.DifficultyAll, Sort: query.SortRank}
	a.mode = ModeAll
	a.page = 1
	a.mu.Unlock()
	a.emit(Event{Kind: EventViewRefreshed})
}

// SetPage moves to a 1-based page; out-of-range values clamp on the next
// view computation.
func (a *App) SetPage(n int) {
	a.mu.Lock()
	a.page = n
	a.mu.Unlock()
	a.emit(Event{Kind: EventViewRefreshed})
}

// SetPageSize changes the page size and resets to page 1.
func (a *App) SetPageSize(ctx context.Context, n int) error {
	if err := a.overlay.SetPageSize(ctx, n); err != nil {
		return err
	}
	a.mu.Lock()
	a.page = 1
	a.mu.Unlock()
	a.emit(Event{Kind: EventViewRefreshed})
	return nil
}

// SetMode switches between the full catalog, favorites and recently viewed.
func (a *App) SetMode(mode ListMode) {
	a.mu.Lock()
	a.mode = mode
	a.page = 1
	a.mu.Unlock()
	a.emit(Event{Kind: EventViewRefreshed})
}

// --- overlay intents -------------------------------------------------------

func (a *App) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	added, err := a.overlay.ToggleFavorite(ctx, id)
	if err != nil {
		return added, err
	}
	a.checkAchievements(ctx)
	a.emit(Event{Kind: EventViewRefreshed})
	return added, nil
}

func (a *App) MarkCompleted(ctx context.Context, id string) (bool, error) {
	completed, err := a.overlay.ToggleCompleted(ctx, id)
	if err != nil {
		return completed, err
	}
	a.checkAchievements(ctx)
	a.emit(Event{Kind: EventViewRefreshed})
	return completed, nil
}

// RateLevel stores a rating and, when a comment is present, a community
// review. Validation failures reject the whole intent with no state change.
func (a *App) RateLevel(ctx context.Context, id string, rating int, comment string) error {
	if err := a.overlay.SetRating(ctx, id, rating); err != nil {
		return err
	}
	if comment != "" {
		if _, err := a.overlay.AddReview(ctx, id, "", comment, rating); err != nil {
			return err
		}
	}
	a.checkAchievements(ctx)
	a.emit(Event{Kind: EventViewRefreshed})
	return nil
}

func (a *App) SetProgress(ctx context.Context, id string, percent int, note string) error {
	if err := a.overlay.SetProgress(ctx, id, percent, note); err != nil {
		return err
	}
	a.checkAchievements(ctx)
	a.emit(Event{Kind: EventViewRefreshed})
	return nil
}

// ViewLevel records a level visit and runs the achievement check.
func (a *App) ViewLevel(ctx context.Context, lvl catalog.Level) error {
	if err := a.overlay.RecordView(ctx, lvl); err != nil {
		return err
	}
	a.checkAchievements(ctx)
	a.emit(Event{Kind: EventViewRefreshed})
	return nil
}

// RandomLevel picks a uniformly random level from the active catalog and
// records the visit.
func (a *App) RandomLevel(ctx context.Context) (catalog.Level, bool) {
	a.mu.Lock()
	if a.store == nil || len(a.store.Rows) == 0 {
		a.mu.Unlock()
		return catalog.Level{}, false
	}
	lvl := a.store.Rows[a.rng.Intn(len(a.store.Rows))]
	a.mu.Unlock()
	_ = a.ViewLevel(ctx, lvl)
	return lvl, true
}

func (a *App) ToggleCompare(lvl catalog.Level) (bool, error) {
	added, err := a.overlay.ToggleCompare(lvl)
	if err != nil {
		return added, err
	}
	a.emit(Event{Kind: EventViewRefreshed})
	return added, nil
}

func (a *App) RemoveFromCompare(id string) {
	a.overlay.RemoveCompare(id)
	a.emit(Event{Kind: EventViewRefreshed})
}

func (a *App) CompareList() []catalog.Level { return a.overlay.CompareList() }

func (a *App) SetViewMode(ctx context.Context, mode string) error {
	return a.overlay.SetViewMode(ctx, mode)
}

func (a *App) SetTheme(ctx context.Context, theme string) error {
	return a.overlay.SetTheme(ctx, theme)
}

// ResetUserData wipes all persisted overlay state.
func (a *App) ResetUserData(ctx context.Context) error {
	if err := a.overlay.Reset(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	a.page = 1
	a.mode = ModeAll
	a.mu.Unlock()
	a.emit(Event{Kind: EventViewRefreshed})
	a.emit(Event{Kind: EventNotice, Message: "User data cleared"})
	return nil
}

// Overlay grants the presentation adapter read access to overlay views.
func (a *App) Overlay() *overlay.Store { return a.overlay }

// --- derived engines -------------------------------------------------------

// Recommendations derives up to count suggestions from the active catalog
// and the user's tastes.
func (a *App) Recommendations(count int) []catalog.Level {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		return nil
	}
	return recommend.Recommend(a.store.Rows, recommend.Tastes{
		Completed:      a.overlay.CompletedSet(),
		RecentlyViewed: a.overlay.RecentlyViewed(),
		Ratings:        a.overlay.Ratings(),
	}, count, a.rng)
}

// checkAchievements evaluates the unlock predicates and fires events for
// newly satisfied ones. Runs after every mutating overlay operation.
func (a *App) checkAchievements(ctx context.Context) {
	stats := achievements.Stats{
		RecentlyViewed: len(a.overlay.RecentlyViewed()),
		Favorites:      len(a.overlay.Favorites()),
		Completed:      len(a.overlay.CompletedLevels()),
		Ratings:        len(a.overlay.Ratings()),
		Progress:       a.overlay.ProgressCount(),
		Reviews:        a.overlay.TotalReviewCount(),
	}
	for _, unlocked := range achievements.Evaluate(stats, a.overlay.HasAchievement) {
		newly, err := a.overlay.Unlock(ctx, unlocked.ID)
		if err != nil {
			a.logger.Error("achievement.persist_failed", map[string]any{"id": unlocked.ID, "error": err.Error()})
			continue
		}
		if !newly {
			continue
		}
		ach := unlocked
		a.logger.Info("achievement.unlocked", map[string]any{"id": ach.ID})
		a.emit(Event{Kind: EventAchievementUnlocked, Message: "Achievement Unlocked: " + ach.Title + "!", Achievement: &ach})
	}
}
