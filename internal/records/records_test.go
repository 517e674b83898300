package records

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/flagdash/flagdash/internal/models"
	"github.com/flagdash/flagdash/internal/store"
)

func newTracker() *Tracker {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(store.NewMemoryKV(), logger)
}

func entry(username, country string, timeMs int64) models.Entry {
	return models.Entry{
		Username:    username,
		CountryCode: country,
		Mode:        models.ModeCompetitive,
		TimeMs:      timeMs,
	}
}

func TestFirstSubmissionBreaksBothRecords(t *testing.T) {
	tr := newTracker()
	ctx := context.Background()

	broken, err := tr.Submit(ctx, entry("ana", "ES", 42000))
	if err != nil {
		t.Fatal(err)
	}
	if len(broken) != 2 || broken[0] != "WR" || broken[1] != "NR" {
		t.Errorf("expected [WR NR], got %v", broken)
	}
}

func TestRecordsAreMonotonic(t *testing.T) {
	tr := newTracker()
	ctx := context.Background()

	times := []int64{42000, 45000, 40000, 41000, 39000}
	lastWR := int64(1 << 60)
	for _, ms := range times {
		if _, err := tr.Submit(ctx, entry("ana", "ES", ms)); err != nil {
			t.Fatal(err)
		}
		recs, err := tr.All(ctx)
		if err != nil {
			t.Fatal(err)
		}
		wr := recs[models.ModeCompetitive].WR
		if wr.TimeMs > lastWR {
			t.Errorf("WR regressed from %d to %d", lastWR, wr.TimeMs)
		}
		lastWR = wr.TimeMs
	}
	if lastWR != 39000 {
		t.Errorf("final WR = %d, want 39000", lastWR)
	}
}

func TestNationalRecordIndependentOfWorldRecord(t *testing.T) {
	tr := newTracker()
	ctx := context.Background()

	if _, err := tr.Submit(ctx, entry("ana", "ES", 40000)); err != nil {
		t.Fatal(err)
	}
	// Slower world-wide, but first for France: NR only.
	broken, err := tr.Submit(ctx, entry("claire", "FR", 44000))
	if err != nil {
		t.Fatal(err)
	}
	if len(broken) != 1 || broken[0] != "NR" {
		t.Errorf("expected [NR], got %v", broken)
	}
}

func TestNonCompetitiveModesIgnored(t *testing.T) {
	tr := newTracker()
	e := entry("ana", "ES", 30000)
	e.Mode = models.ModeDailyStandard

	broken, err := tr.Submit(context.Background(), e)
	if err != nil {
		t.Fatal(err)
	}
	if broken != nil {
		t.Errorf("daily mode must not touch records, got %v", broken)
	}
}

func TestBadgesFollowCurrentHolder(t *testing.T) {
	tr := newTracker()
	ctx := context.Background()

	if _, err := tr.Submit(ctx, entry("ana", "ES", 42000)); err != nil {
		t.Fatal(err)
	}
	badges, err := tr.BadgesFor(ctx, models.ModeCompetitive, "ES", 42000)
	if err != nil {
		t.Fatal(err)
	}
	if len(badges) != 2 {
		t.Fatalf("expected WR+NR badges on record time, got %v", badges)
	}

	// A faster run takes both records; the old time loses its badges.
	if _, err := tr.Submit(ctx, entry("bruno", "ES", 41000)); err != nil {
		t.Fatal(err)
	}
	badges, err = tr.BadgesFor(ctx, models.ModeCompetitive, "ES", 42000)
	if err != nil {
		t.Fatal(err)
	}
	if len(badges) != 0 {
		t.Errorf("stale time should have no badges, got %v", badges)
	}
}

func TestWorldRecordHolders(t *testing.T) {
	tr := newTracker()
	ctx := context.Background()

	e := entry("ana", "ES", 42000)
	e.Mode = models.ModeCompetitive5
	if _, err := tr.Submit(ctx, e); err != nil {
		t.Fatal(err)
	}

	modes, err := tr.WorldRecordHolders(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if len(modes) != 1 || modes[0] != models.ModeCompetitive5 {
		t.Errorf("expected [COMPETITIVE_5], got %v", modes)
	}
}
