// Package activity keeps the short recent-events feed shown on the home
// screen.
package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flagdash/flagdash/internal/models"
	"github.com/flagdash/flagdash/internal/store"
)

// MaxEntries bounds the feed; only the newest few events are kept.
const MaxEntries = 4

// Log is the bounded activity feed, newest first.
type Log struct {
	kv  store.KV
	log *logrus.Logger
}

func New(kv store.KV, log *logrus.Logger) *Log {
	return &Log{kv: kv, log: log}
}

// Recent returns the stored feed, newest first. Corrupt data reads as empty.
func (l *Log) Recent(ctx context.Context) ([]models.ActivityEntry, error) {
	raw, found, err := l.kv.Get(ctx, store.KeyActivityLog)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.ActivityEntry{}, nil
	}
	var entries []models.ActivityEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		l.log.WithError(err).Warn("corrupt activity log blob, resetting to empty")
		return []models.ActivityEntry{}, nil
	}
	return entries, nil
}

// Add prepends an event and truncates the feed to MaxEntries.
func (l *Log) Add(ctx context.Context, e models.ActivityEntry) error {
	entries, err := l.Recent(ctx)
	if err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	entries = append([]models.ActivityEntry{e}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal activity log: %w", err)
	}
	return l.kv.Set(ctx, store.KeyActivityLog, string(data))
}
