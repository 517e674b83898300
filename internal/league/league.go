// Package league advances each user's weekly elimination-league state. Weeks
// run Saturday through Friday; surviving a day's percentile cutoff promotes,
// anything else eliminates until the next week resets everyone to Qualifying.
package league

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flagdash/flagdash/internal/accounts"
	"github.com/flagdash/flagdash/internal/clock"
	"github.com/flagdash/flagdash/internal/leaderboard"
	"github.com/flagdash/flagdash/internal/models"
)

// minParticipants is the population below which the cutoff is waived and
// everyone passes. Preserved from the original rules, quirks included.
const minParticipants = 5

// weekWindow is how far back weekly-league times count toward the cutoff.
const weekWindow = 7 * 24 * time.Hour

// Engine evaluates league transitions lazily, at most once per Madrid day
// per user.
type Engine struct {
	accounts *accounts.Store
	lb       *leaderboard.Store
	clock    clock.Clock
	log      *logrus.Logger
}

func New(acc *accounts.Store, lb *leaderboard.Store, clk clock.Clock, log *logrus.Logger) *Engine {
	return &Engine{accounts: acc, lb: lb, clock: clk, log: log}
}

// CheckWeeklyProgress brings the user's league state up to the current day.
// Call it on session load and before showing league UI; calling it twice on
// the same day is a no-op.
func (e *Engine) CheckWeeklyProgress(ctx context.Context, username string) (*models.User, error) {
	u, err := e.accounts.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	now := e.clock.Now()
	currentWeek := clock.WeekID(now)
	currentDay := clock.LeagueDay(now)

	state := models.WeeklyLeagueState{
		CurrentTier: models.TierQualifying,
		WeekID:      currentWeek,
	}
	if u.WeeklyState != nil {
		state = *u.WeeklyState
	}

	// Week rollover: award the finished week, then restart in Qualifying.
	if state.WeekID != currentWeek {
		survived := !state.IsEliminated && state.BestTimeMs != 0
		finishedTier := state.CurrentTier
		finishedWeek := state.WeekID

		fresh := models.WeeklyLeagueState{
			CurrentTier:    models.TierQualifying,
			LastUpdatedDay: currentDay,
			WeekID:         currentWeek,
		}
		return e.accounts.Update(ctx, username, func(u *models.User) {
			if survived {
				u.Medals = append(u.Medals, string(finishedTier)+"_"+finishedWeek)
				u.Achievements = append(u.Achievements, models.AchievementEntry{
					ID:        uuid.NewString(),
					Type:      models.AchievementLeagueWin,
					Timestamp: now.UnixMilli(),
					Mode:      models.ModeWeeklyLeague,
					Detail:    string(finishedTier),
				})
				e.log.WithFields(logrus.Fields{
					"user": username,
					"tier": finishedTier,
					"week": finishedWeek,
				}).Info("league week survived, medal awarded")
			}
			u.WeeklyState = &fresh
		})
	}

	// Same week, same day: nothing to evaluate yet.
	if state.LastUpdatedDay >= currentDay {
		return u, nil
	}

	// Elimination is sticky for the rest of the week.
	if state.IsEliminated {
		state.LastUpdatedDay = currentDay
		return e.saveState(ctx, username, state)
	}

	switch {
	case currentDay-state.LastUpdatedDay > 1 && state.LastUpdatedDay != 0:
		// Skipped a whole day.
		state.IsEliminated = true
	case state.BestTimeMs == 0 && state.LastUpdatedDay > 0:
		// Never played the current tier.
		state.IsEliminated = true
	default:
		passed, err := e.passedCutoff(ctx, username, state.CurrentTier)
		if err != nil {
			return nil, err
		}
		if passed {
			next := currentDay - 1
			if next > len(models.TierProgression)-1 {
				next = len(models.TierProgression) - 1
			}
			state.CurrentTier = models.TierProgression[next]
			state.BestTimeMs = 0
		} else {
			state.IsEliminated = true
		}
	}

	state.LastUpdatedDay = currentDay
	return e.saveState(ctx, username, state)
}

// passedCutoff ranks the user among the last seven days of weekly-league
// entries. myPercentile = 1 - rank/total must reach 1 - Cutoffs[tier]. A
// population under minParticipants always passes; Master's 1.0 cutoff means
// the final day never cuts anyone.
func (e *Engine) passedCutoff(ctx context.Context, username string, tier models.LeagueTier) (bool, error) {
	entries, err := e.lb.Query(ctx, models.ModeWeeklyLeague, "")
	if err != nil {
		return false, err
	}
	cutoffTs := e.clock.Now().Add(-weekWindow).UnixMilli()
	recent := entries[:0]
	for _, en := range entries {
		if en.Timestamp > cutoffTs {
			recent = append(recent, en)
		}
	}

	myRank := -1
	for i, en := range recent {
		if en.Username == username {
			myRank = i
			break
		}
	}
	totalPlayers := len(recent)
	if totalPlayers < minParticipants {
		return true, nil
	}

	myPercentile := 1 - float64(myRank)/float64(totalPlayers)
	required, ok := models.Cutoffs[tier]
	if !ok {
		required = 0.5
	}
	return myPercentile >= 1-required, nil
}

func (e *Engine) saveState(ctx context.Context, username string, state models.WeeklyLeagueState) (*models.User, error) {
	return e.accounts.Update(ctx, username, func(u *models.User) {
		st := state
		u.WeeklyState = &st
	})
}

// RecordLeagueTime notes a weekly-league run on the user's state. Only an
// improvement (or a first time for the tier) is kept.
func (e *Engine) RecordLeagueTime(ctx context.Context, username string, timeMs int64) (*models.User, error) {
	now := e.clock.Now()
	return e.accounts.Update(ctx, username, func(u *models.User) {
		if u.WeeklyState == nil {
			u.WeeklyState = &models.WeeklyLeagueState{
				CurrentTier:    models.TierQualifying,
				LastUpdatedDay: clock.LeagueDay(now),
				WeekID:         clock.WeekID(now),
			}
		}
		if u.WeeklyState.IsEliminated {
			return
		}
		if u.WeeklyState.BestTimeMs == 0 || timeMs < u.WeeklyState.BestTimeMs {
			u.WeeklyState.BestTimeMs = timeMs
		}
	})
}
