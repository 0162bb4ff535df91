package overlay

import (
	"errors"
	"time"
)

const (
	MaxRecentlyViewed = 10
	MaxSearchHistory  = 10
	MaxCompare        = 4

	// Experience awarded per action. Level is always floor(xp/100)+1.
	xpPerCompletion = 10
	xpPerNewRating  = 5
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrCompareFull     = errors.New("comparison holds at most 4 levels")
	ErrEmptyComment    = errors.New("review comment is empty")
)

// Review is one community review attached to a level id.
type Review struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"timestamp"`
}

// ProgressEntry tracks partial completion of a level.
type ProgressEntry struct {
	Percent   int       `json:"percent"`
	Note      string    `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile aggregates the user's activity. CompletedCount, FavoriteCount and
// Level are derived; they are recomputed after every mutation and never
// trusted from storage.
type Profile struct {
	Username       string `json:"username"`
	CompletedCount int    `json:"completedCount"`
	FavoriteCount  int    `json:"favoriteCount"`
	Level          int    `json:"level"`
	Experience     int    `json:"experience"`
}

func defaultProfile() Profile {
	return Profile{Username: "Guest", Level: 1}
}

// LevelForExperience is the one place the level formula lives.
func LevelForExperience(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/100 + 1
}
