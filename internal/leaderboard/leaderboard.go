// Package leaderboard owns the canonical list of match results and the
// rank/percentile math derived from it.
package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flagdash/flagdash/internal/clock"
	"github.com/flagdash/flagdash/internal/models"
	"github.com/flagdash/flagdash/internal/store"
)

// MaxEntries caps the stored board. The cap keeps the blob bounded at the
// cost of all-time history fidelity past the 2000 best times.
const MaxEntries = 2000

// Store reads and writes the leaderboard collection as one JSON blob.
type Store struct {
	kv    store.KV
	clock clock.Clock
	log   *logrus.Logger
}

func New(kv store.KV, clk clock.Clock, log *logrus.Logger) *Store {
	return &Store{kv: kv, clock: clk, log: log}
}

// all loads every stored entry. Corrupt or missing data reads as empty.
func (s *Store) all(ctx context.Context) ([]models.Entry, error) {
	raw, found, err := s.kv.Get(ctx, store.KeyLeaderboard)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Entry{}, nil
	}
	var entries []models.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.WithError(err).Warn("corrupt leaderboard blob, resetting to empty")
		return []models.Entry{}, nil
	}
	return entries, nil
}

func (s *Store) save(ctx context.Context, entries []models.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal leaderboard: %w", err)
	}
	return s.kv.Set(ctx, store.KeyLeaderboard, string(data))
}

// Record persists a finished run. History-kept modes always append; best-time
// modes keep one row per (user, mode, season) and only improve it. The board
// is re-sorted ascending by time and truncated to MaxEntries.
//
// The returned entry carries the assigned id and season.
func (s *Store) Record(ctx context.Context, e models.Entry) (models.Entry, error) {
	entries, err := s.all(ctx)
	if err != nil {
		return e, err
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.SeasonID = clock.SeasonID(s.clock.Now())

	if e.Mode.KeepsHistory() {
		entries = append(entries, e)
	} else {
		idx := -1
		for i := range entries {
			if entries[i].Username == e.Username && entries[i].Mode == e.Mode && entries[i].SeasonID == e.SeasonID {
				idx = i
				break
			}
		}
		switch {
		case idx == -1:
			entries = append(entries, e)
		case e.TimeMs < entries[idx].TimeMs:
			entries[idx] = e
		default:
			// Slower than the stored best: discard the new entry.
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimeMs < entries[j].TimeMs
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	if err := s.save(ctx, entries); err != nil {
		return e, err
	}
	return e, nil
}

// Query returns entries sorted ascending by time, optionally filtered by mode
// and season. Empty mode or season means "all". Callers must not assume any
// dedup beyond the per-mode write policy.
func (s *Store) Query(ctx context.Context, mode models.GameMode, seasonID string) ([]models.Entry, error) {
	entries, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if mode != "" && e.Mode != mode {
			continue
		}
		if seasonID != "" && e.SeasonID != seasonID {
			continue
		}
		filtered = append(filtered, e)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].TimeMs < filtered[j].TimeMs
	})
	return filtered, nil
}

// Standing is a run's position within its mode/season scope.
type Standing struct {
	Rank       int `json:"rank"`
	Total      int `json:"total"`
	Percentile int `json:"percentile"`
}

// Stats computes the 1-based rank of the first entry matching timeMs exactly
// within the scope, plus the percentile ceil(rank/total*100). When no entry
// matches, rank is total+1; a zero total never divides.
func (s *Store) Stats(ctx context.Context, timeMs int64, mode models.GameMode, seasonID string) (Standing, error) {
	entries, err := s.Query(ctx, mode, seasonID)
	if err != nil {
		return Standing{}, err
	}

	total := len(entries)
	rank := 0
	for i, e := range entries {
		if e.TimeMs == timeMs {
			rank = i + 1
			break
		}
	}
	if rank == 0 {
		rank = total + 1
	}

	percentile := 100
	if total > 0 {
		percentile = (rank*100 + total - 1) / total // ceil(rank/total*100)
	}
	return Standing{Rank: rank, Total: total, Percentile: percentile}, nil
}

// SetUserLevel rewrites the level shown on all of a user's rows after a
// level-up, so old entries don't advertise a stale level.
func (s *Store) SetUserLevel(ctx context.Context, username string, level int) error {
	entries, err := s.all(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range entries {
		if entries[i].Username == username && entries[i].Level != level {
			entries[i].Level = level
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(ctx, entries)
}
