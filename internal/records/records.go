// Package records owns the world-record and national-record tables for the
// competitive modes. Record times only ever improve.
package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/flagdash/flagdash/internal/models"
	"github.com/flagdash/flagdash/internal/store"
)

// Tracker reads and writes the global record table.
type Tracker struct {
	kv  store.KV
	log *logrus.Logger
}

func New(kv store.KV, log *logrus.Logger) *Tracker {
	return &Tracker{kv: kv, log: log}
}

// All loads the full record table. Corrupt or missing data reads as empty.
func (t *Tracker) All(ctx context.Context) (models.GlobalRecords, error) {
	raw, found, err := t.kv.Get(ctx, store.KeyGlobalRecords)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.GlobalRecords{}, nil
	}
	var recs models.GlobalRecords
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		t.log.WithError(err).Warn("corrupt global records blob, resetting to empty")
		return models.GlobalRecords{}, nil
	}
	return recs, nil
}

func (t *Tracker) save(ctx context.Context, recs models.GlobalRecords) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal global records: %w", err)
	}
	return t.kv.Set(ctx, store.KeyGlobalRecords, string(data))
}

// Submit checks a competitive run against the stored WR and the NR for the
// runner's country. Both may break on the same submission. Non-competitive
// modes are ignored. Returns the broken-record flags ("WR", "NR").
func (t *Tracker) Submit(ctx context.Context, e models.Entry) ([]string, error) {
	if !e.Mode.Competitive() {
		return nil, nil
	}

	recs, err := t.All(ctx)
	if err != nil {
		return nil, err
	}

	mr := recs[e.Mode]
	if mr == nil {
		mr = &models.ModeRecords{NR: map[string]models.RecordHolder{}}
		recs[e.Mode] = mr
	}
	if mr.NR == nil {
		mr.NR = map[string]models.RecordHolder{}
	}

	var broken []string

	if mr.WR == nil || e.TimeMs < mr.WR.TimeMs {
		mr.WR = &models.RecordHolder{TimeMs: e.TimeMs, Username: e.Username, CountryCode: e.CountryCode}
		broken = append(broken, "WR")
	}

	if nr, ok := mr.NR[e.CountryCode]; !ok || e.TimeMs < nr.TimeMs {
		mr.NR[e.CountryCode] = models.RecordHolder{TimeMs: e.TimeMs, Username: e.Username}
		broken = append(broken, "NR")
	}

	if err := t.save(ctx, recs); err != nil {
		return nil, err
	}
	return broken, nil
}

// BadgesFor annotates a historical leaderboard row: a badge is returned only
// if the current record's time equals the row's time exactly, so a badge moves
// to whoever later ties or beats the record.
func (t *Tracker) BadgesFor(ctx context.Context, mode models.GameMode, countryCode string, timeMs int64) ([]string, error) {
	if !mode.Competitive() {
		return nil, nil
	}
	recs, err := t.All(ctx)
	if err != nil {
		return nil, err
	}
	mr := recs[mode]
	if mr == nil {
		return nil, nil
	}

	var badges []string
	if mr.WR != nil && mr.WR.TimeMs == timeMs {
		badges = append(badges, "WR")
	}
	if nr, ok := mr.NR[countryCode]; ok && nr.TimeMs == timeMs {
		badges = append(badges, "NR")
	}
	return badges, nil
}

// WorldRecordHolders returns the competitive modes whose WR the user currently
// holds. Backs the dynamic WR medals on the profile screen.
func (t *Tracker) WorldRecordHolders(ctx context.Context, username string) ([]models.GameMode, error) {
	recs, err := t.All(ctx)
	if err != nil {
		return nil, err
	}
	var modes []models.GameMode
	for _, m := range models.AllModes {
		if !m.Competitive() {
			continue
		}
		if mr := recs[m]; mr != nil && mr.WR != nil && mr.WR.Username == username {
			modes = append(modes, m)
		}
	}
	return modes, nil
}
