package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"demonlist/internal/state"
)

type snapshot struct {
	List ListType `json:"list"`
	Rows []Level  `json:"rows"`
}

// SaveSnapshot mirrors a successfully loaded store into the persistence
// adapter so a later session can fall back to it offline.
func SaveSnapshot(ctx context.Context, kv state.KV, s *Store) error {
	b, err := json.Marshal(snapshot{List: s.List, Rows: s.Rows})
	if err != nil {
		return err
	}
	if err := kv.Set(ctx, state.KeyCachedData, string(b)); err != nil {
		return err
	}
	return kv.Set(ctx, state.KeyLastDataUpdate, s.LoadedAt.UTC().Format(time.RFC3339))
}

// LoadSnapshot deserializes the last cached catalog. Absent or corrupt
// snapshots fail with ErrNoCachedData.
func LoadSnapshot(ctx context.Context, kv state.KV) (*Store, error) {
	raw, found, err := kv.Get(ctx, state.KeyCachedData)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoCachedData
	}
	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil || len(snap.Rows) == 0 {
		return nil, fmt.Errorf("%w: corrupt snapshot", ErrNoCachedData)
	}

	loadedAt := time.Time{}
	if ts, found, _ := kv.Get(ctx, state.KeyLastDataUpdate); found {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			loadedAt = t
		}
	}
	return &Store{List: snap.List, Rows: snap.Rows, Strategy: StrategyCache, LoadedAt: loadedAt}, nil
}
