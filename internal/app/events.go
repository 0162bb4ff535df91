package app

import "demonlist/internal/achievements"

type EventKind string

const (
	EventDataLoaded          EventKind = "data_loaded"
	EventLoadFailed          EventKind = "load_failed"
	EventViewRefreshed       EventKind = "view_refreshed"
	EventAchievementUnlocked EventKind = "achievement_unlocked"
	EventNotice              EventKind = "notice"
)

// Event is the app-to-presentation notification contract. Display is the
// adapter's problem; the core only guarantees emission.
type Event struct {
	Kind        EventKind
	Message     string
	Err         error
	Achievement *achievements.Achievement
}
