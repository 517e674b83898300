package activity

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flagdash/flagdash/internal/models"
	"github.com/flagdash/flagdash/internal/store"
)

func newLog() (*Log, *store.MemoryKV) {
	kv := store.NewMemoryKV()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(kv, logger), kv
}

func TestAddPrependsAndCaps(t *testing.T) {
	l, _ := newLog()
	ctx := context.Background()

	for i := 0; i < MaxEntries+3; i++ {
		err := l.Add(ctx, models.ActivityEntry{
			Username: "ana",
			Mode:     models.ModeCompetitive,
			TimeMs:   int64(40000 + i),
		})
		require.NoError(t, err)
	}

	recent, err := l.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, MaxEntries)
	// Newest first, ids assigned.
	assert.Equal(t, int64(40000+MaxEntries+2), recent[0].TimeMs)
	assert.NotEmpty(t, recent[0].ID)
}

func TestCorruptFeedReadsAsEmpty(t *testing.T) {
	l, kv := newLog()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeyActivityLog, "[broken"))
	recent, err := l.Recent(ctx)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
