package catalog

import "time"

// ListType selects one of the three parallel catalogs. It is always passed
// explicitly; nothing is inferred from the environment.
type ListType string

const (
	DemonList      ListType = "demonlist"
	PemonList      ListType = "pemonlist"
	ImpossibleList ListType = "impossiblelist"
)

func (t ListType) Valid() bool {
	switch t {
	case DemonList, PemonList, ImpossibleList:
		return true
	}
	return false
}

// Level is one row of a catalog. Rank is not a field: it is the row's
// 1-based position in the store at load time.
type Level struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Creator     string   `json:"creator"`
	Verifier    string   `json:"verifier"`
	Difficulty  string   `json:"difficulty"`
	VideoURL    string   `json:"videoUrl"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Length      string   `json:"length"`
	Objects     int      `json:"objects"`
	Downloads   int      `json:"downloads"`
}

// Strategy records which of the four load outcomes produced the active store.
type Strategy string

const (
	StrategyNetwork Strategy = "network"
	StrategyCache   Strategy = "cache"
	StrategySample  Strategy = "sample"
	StrategyFailed  Strategy = "failed"
)

// Store is the canonical ordered collection for one list type. It is
// replaced wholesale on every (re)load, never mutated in place.
type Store struct {
	List     ListType
	Rows     []Level
	Strategy Strategy
	LoadedAt time.Time
}

// Rank returns the canonical 1-based rank of the row at index i.
func (s *Store) Rank(i int) int { return i + 1 }

// FindByID returns the first row with the given id. Duplicate ids are
// tolerated in source data; lookups resolve to the first match.
func (s *Store) FindByID(id string) (Level, bool) {
	for _, row := range s.Rows {
		if row.ID == id {
			return row, true
		}
	}
	return Level{}, false
}

// RankOf returns the 1-based rank of the first row with the given id, or 0.
func (s *Store) RankOf(id string) int {
	for i, row := range s.Rows {
		if row.ID == id {
			return i + 1
		}
	}
	return 0
}
