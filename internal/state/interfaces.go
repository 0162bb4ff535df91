package state

import "context"

// KV is the durable key/value storage behind the user overlay and the
// catalog cache. Values are textually serialized; a missing key is not an
// error, it reports found=false.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Well-known storage keys. The layout is flat: one row per key, every value
// independently read-defaulted when missing or malformed.
const (
	KeyFavorites        = "favorites"
	KeyRecentlyViewed   = "recentlyViewed"
	KeyCompletedLevels  = "completedLevels"
	KeyAchievements     = "achievements"
	KeyUserProfile      = "userProfile"
	KeyViewMode         = "viewMode"
	KeyUserRatings      = "userRatings"
	KeyLevelProgress    = "levelProgress"
	KeySearchHistory    = "searchHistory"
	KeyCommunityReviews = "communityReviews"
	KeyPageSize         = "pageSize"
	KeyTheme            = "theme"
	KeyCachedData       = "cachedDemonData"
	KeyLastDataUpdate   = "lastDataUpdate"
)
