package league

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flagdash/flagdash/internal/accounts"
	"github.com/flagdash/flagdash/internal/clock"
	"github.com/flagdash/flagdash/internal/leaderboard"
	"github.com/flagdash/flagdash/internal/models"
	"github.com/flagdash/flagdash/internal/store"
)

// Wednesday 2026-01-14: week id 2026-01-10, league day 5.
var wednesday = time.Date(2026, 1, 14, 12, 0, 0, 0, clock.Madrid)

type fixture struct {
	kv     *store.MemoryKV
	logger *logrus.Logger
}

func newFixture() *fixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &fixture{kv: store.NewMemoryKV(), logger: logger}
}

func (f *fixture) engineAt(at time.Time) (*Engine, *accounts.Store, *leaderboard.Store) {
	clk := clock.Fixed{T: at}
	acc := accounts.New(f.kv, clk, f.logger)
	lb := leaderboard.New(f.kv, clk, f.logger)
	return New(acc, lb, clk, f.logger), acc, lb
}

func (f *fixture) registerWithState(t *testing.T, acc *accounts.Store, username string, state *models.WeeklyLeagueState) {
	t.Helper()
	ctx := context.Background()
	res, err := acc.Register(ctx, username, "secret", "ES")
	require.NoError(t, err)
	require.True(t, res.Success)
	if state != nil {
		_, err = acc.Update(ctx, username, func(u *models.User) {
			st := *state
			u.WeeklyState = &st
		})
		require.NoError(t, err)
	}
}

// seedWeeklyBoard records weekly-league times so that the named user holds the
// given rank (0-based) among total participants.
func (f *fixture) seedWeeklyBoard(t *testing.T, lb *leaderboard.Store, username string, rank, total int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < total; i++ {
		name := fmt.Sprintf("rival%d", i)
		if i == rank {
			name = username
		}
		_, err := lb.Record(ctx, models.Entry{
			Username:    name,
			CountryCode: "ES",
			Mode:        models.ModeWeeklyLeague,
			TimeMs:      int64(30000 + i*1000),
			Timestamp:   wednesday.Add(-2 * time.Hour).UnixMilli(),
		})
		require.NoError(t, err)
	}
}

func TestMissedDayEliminates(t *testing.T) {
	f := newFixture()
	eng, acc, _ := f.engineAt(wednesday) // day 5

	f.registerWithState(t, acc, "ana", &models.WeeklyLeagueState{
		CurrentTier:    models.TierSilver,
		BestTimeMs:     31000,
		LastUpdatedDay: 3, // last seen Monday; Tuesday was skipped
		WeekID:         "2026-01-10",
	})

	u, err := eng.CheckWeeklyProgress(context.Background(), "ana")
	require.NoError(t, err)
	assert.True(t, u.WeeklyState.IsEliminated)
	assert.Equal(t, 5, u.WeeklyState.LastUpdatedDay)
	// Tier label survives elimination for display.
	assert.Equal(t, models.TierSilver, u.WeeklyState.CurrentTier)
}

func TestNoTimeRecordedEliminates(t *testing.T) {
	f := newFixture()
	eng, acc, _ := f.engineAt(wednesday)

	f.registerWithState(t, acc, "ana", &models.WeeklyLeagueState{
		CurrentTier:    models.TierGold,
		BestTimeMs:     0, // never played the current tier
		LastUpdatedDay: 4,
		WeekID:         "2026-01-10",
	})

	u, err := eng.CheckWeeklyProgress(context.Background(), "ana")
	require.NoError(t, err)
	assert.True(t, u.WeeklyState.IsEliminated)
}

// 10 participants, user ranked 2nd: percentile 1 - 1/10 = 0.9, Gold requires
// 0.5, so the user is promoted and the best time resets for the next tier.
func TestPromotionMath(t *testing.T) {
	f := newFixture()
	eng, acc, lb := f.engineAt(wednesday)

	f.registerWithState(t, acc, "ana", &models.WeeklyLeagueState{
		CurrentTier:    models.TierGold,
		BestTimeMs:     31000,
		LastUpdatedDay: 4,
		WeekID:         "2026-01-10",
	})
	f.seedWeeklyBoard(t, lb, "ana", 1, 10)

	u, err := eng.CheckWeeklyProgress(context.Background(), "ana")
	require.NoError(t, err)
	require.False(t, u.WeeklyState.IsEliminated)
	// Day 5 promotes into TierProgression[4].
	assert.Equal(t, models.TierPlatinum, u.WeeklyState.CurrentTier)
	assert.Zero(t, u.WeeklyState.BestTimeMs)
	assert.Equal(t, 5, u.WeeklyState.LastUpdatedDay)
}

func TestBottomRankEliminated(t *testing.T) {
	f := newFixture()
	eng, acc, lb := f.engineAt(wednesday)

	f.registerWithState(t, acc, "ana", &models.WeeklyLeagueState{
		CurrentTier:    models.TierGold,
		BestTimeMs:     39000,
		LastUpdatedDay: 4,
		WeekID:         "2026-01-10",
	})
	// Last of 10: percentile 1 - 9/10 = 0.1 < 0.5 required.
	f.seedWeeklyBoard(t, lb, "ana", 9, 10)

	u, err := eng.CheckWeeklyProgress(context.Background(), "ana")
	require.NoError(t, err)
	assert.True(t, u.WeeklyState.IsEliminated)
}

// With fewer than five participants the cutoff is waived entirely.
func TestTinyPopulationAutoPasses(t *testing.T) {
	f := newFixture()
	eng, acc, lb := f.engineAt(wednesday)

	f.registerWithState(t, acc, "ana", &models.WeeklyLeagueState{
		CurrentTier:    models.TierGold,
		BestTimeMs:     39000,
		LastUpdatedDay: 4,
		WeekID:         "2026-01-10",
	})
	f.seedWeeklyBoard(t, lb, "ana", 3, 4)

	u, err := eng.CheckWeeklyProgress(context.Background(), "ana")
	require.NoError(t, err)
	assert.False(t, u.WeeklyState.IsEliminated)
	assert.Equal(t, models.TierPlatinum, u.WeeklyState.CurrentTier)
}

func TestEliminationIsSticky(t *testing.T) {
	f := newFixture()
	eng, acc, _ := f.engineAt(wednesday)

	f.registerWithState(t, acc, "ana", &models.WeeklyLeagueState{
		CurrentTier:    models.TierBronze,
		BestTimeMs:     31000,
		IsEliminated:   true,
		LastUpdatedDay: 3,
		WeekID:         "2026-01-10",
	})

	u, err := eng.CheckWeeklyProgress(context.Background(), "ana")
	require.NoError(t, err)
	assert.True(t, u.WeeklyState.IsEliminated)
	assert.Equal(t, 5, u.WeeklyState.LastUpdatedDay)
	assert.Equal(t, models.TierBronze, u.WeeklyState.CurrentTier)
}

func TestSameDayIsNoOp(t *testing.T) {
	f := newFixture()
	eng, acc, _ := f.engineAt(wednesday)

	state := &models.WeeklyLeagueState{
		CurrentTier:    models.TierGold,
		BestTimeMs:     31000,
		LastUpdatedDay: 5,
		WeekID:         "2026-01-10",
	}
	f.registerWithState(t, acc, "ana", state)

	u, err := eng.CheckWeeklyProgress(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, *state, *u.WeeklyState)
}

func TestWeekRolloverAwardsMedal(t *testing.T) {
	f := newFixture()
	eng, acc, _ := f.engineAt(wednesday)

	f.registerWithState(t, acc, "ana", &models.WeeklyLeagueState{
		CurrentTier:    models.TierDiamond,
		BestTimeMs:     30000,
		LastUpdatedDay: 7,
		WeekID:         "2026-01-03", // previous week
	})

	u, err := eng.CheckWeeklyProgress(context.Background(), "ana")
	require.NoError(t, err)

	assert.Contains(t, u.Medals, "Diamond_2026-01-03")
	require.Len(t, u.Achievements, 1)
	assert.Equal(t, models.AchievementLeagueWin, u.Achievements[0].Type)
	assert.Equal(t, "Diamond", u.Achievements[0].Detail)

	st := u.WeeklyState
	assert.Equal(t, models.TierQualifying, st.CurrentTier)
	assert.False(t, st.IsEliminated)
	assert.Zero(t, st.BestTimeMs)
	assert.Equal(t, "2026-01-10", st.WeekID)
	assert.Equal(t, 5, st.LastUpdatedDay)
}

func TestWeekRolloverWithoutSurvivalAwardsNothing(t *testing.T) {
	f := newFixture()
	eng, acc, _ := f.engineAt(wednesday)

	f.registerWithState(t, acc, "ana", &models.WeeklyLeagueState{
		CurrentTier:    models.TierGold,
		BestTimeMs:     30000,
		IsEliminated:   true,
		LastUpdatedDay: 6,
		WeekID:         "2026-01-03",
	})

	u, err := eng.CheckWeeklyProgress(context.Background(), "ana")
	require.NoError(t, err)
	assert.Empty(t, u.Medals)
	assert.Empty(t, u.Achievements)
	assert.Equal(t, "2026-01-10", u.WeeklyState.WeekID)
}

func TestRecordLeagueTimeKeepsBest(t *testing.T) {
	f := newFixture()
	eng, acc, _ := f.engineAt(wednesday)

	f.registerWithState(t, acc, "ana", nil)
	ctx := context.Background()

	u, err := eng.RecordLeagueTime(ctx, "ana", 32000)
	require.NoError(t, err)
	assert.Equal(t, int64(32000), u.WeeklyState.BestTimeMs)

	u, err = eng.RecordLeagueTime(ctx, "ana", 35000)
	require.NoError(t, err)
	assert.Equal(t, int64(32000), u.WeeklyState.BestTimeMs)

	u, err = eng.RecordLeagueTime(ctx, "ana", 30000)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), u.WeeklyState.BestTimeMs)
}
