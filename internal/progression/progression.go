// Package progression is the orchestrator: the single integration point that
// turns a finished match into leaderboard rows, records, account updates,
// achievements and the result summary the UI renders.
package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flagdash/flagdash/internal/accounts"
	"github.com/flagdash/flagdash/internal/achievements"
	"github.com/flagdash/flagdash/internal/activity"
	"github.com/flagdash/flagdash/internal/clock"
	"github.com/flagdash/flagdash/internal/leaderboard"
	"github.com/flagdash/flagdash/internal/league"
	"github.com/flagdash/flagdash/internal/models"
	"github.com/flagdash/flagdash/internal/records"
)

// dailyWinWindow is the idempotency window for backfilled daily-win
// achievements: a matching entry younger than this blocks a duplicate.
const dailyWinWindow = 48 * time.Hour

// Orchestrator sequences the progression components. Every public method is
// one read-modify-write unit per touched store.
type Orchestrator struct {
	lb        *leaderboard.Store
	records   *records.Tracker
	accounts  *accounts.Store
	league    *league.Engine
	activity  *activity.Log
	evaluator *achievements.Evaluator
	clock     clock.Clock
	log       *logrus.Logger
}

func New(
	lb *leaderboard.Store,
	rec *records.Tracker,
	acc *accounts.Store,
	lg *league.Engine,
	act *activity.Log,
	eval *achievements.Evaluator,
	clk clock.Clock,
	log *logrus.Logger,
) *Orchestrator {
	return &Orchestrator{
		lb:        lb,
		records:   rec,
		accounts:  acc,
		league:    lg,
		activity:  act,
		evaluator: eval,
		clock:     clk,
		log:       log,
	}
}

// Summary is the match-end result handed to the presentation layer.
type Summary struct {
	User       models.User `json:"user"`
	Badges     []string    `json:"badges"` // any of PB, SB, WR, NR
	Rank       int         `json:"rank"`
	Total      int         `json:"total"`
	Percentile int         `json:"percentile"`
	Unlocked   []string    `json:"unlocked,omitempty"` // cosmetic ids earned this run
}

// ProcessMatchEnd folds one finished run into every store and returns the
// summary. xpGained is computed by the caller (the quiz flow knows correct
// answers and speed); the formula is outside this core.
func (o *Orchestrator) ProcessMatchEnd(ctx context.Context, username string, mode models.GameMode, timeMs, xpGained int64) (*Summary, error) {
	u, err := o.accounts.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("progression: unknown user %q", username)
	}

	now := o.clock.Now()
	entry := models.Entry{
		Username:    username,
		CountryCode: u.CountryCode,
		Mode:        mode,
		TimeMs:      timeMs,
		Timestamp:   now.UnixMilli(),
		Level:       u.Level,
	}

	stored, err := o.lb.Record(ctx, entry)
	if err != nil {
		return nil, err
	}

	broken, err := o.records.Submit(ctx, stored)
	if err != nil {
		return nil, err
	}

	updated, pbsb, err := o.accounts.ApplyResult(ctx, username, mode, timeMs, xpGained)
	if err != nil {
		return nil, err
	}

	if mode == models.ModeWeeklyLeague {
		updated, err = o.league.RecordLeagueTime(ctx, username, timeMs)
		if err != nil {
			return nil, err
		}
	}

	badges := append(append([]string{}, pbsb...), broken...)

	if len(broken) > 0 {
		updated, err = o.accounts.Update(ctx, username, func(u *models.User) {
			for _, b := range broken {
				typ := models.AchievementWR
				if b == "NR" {
					typ = models.AchievementNR
				}
				u.Achievements = append(u.Achievements, models.AchievementEntry{
					ID:        uuid.NewString(),
					Type:      typ,
					Timestamp: now.UnixMilli(),
					Mode:      mode,
					TimeMs:    timeMs,
				})
			}
		})
		if err != nil {
			return nil, err
		}
	}

	standing, err := o.lb.Stats(ctx, timeMs, mode, stored.SeasonID)
	if err != nil {
		return nil, err
	}

	lastGame := achievements.LastGame{
		Mode:   mode,
		TimeMs: timeMs,
		Rank:   standing.Rank,
		Badges: badges,
	}
	unlocked := o.evaluator.Evaluate(updated, &lastGame)
	if len(unlocked) > 0 {
		updated, err = o.accounts.UnlockCosmetics(ctx, username, unlocked)
		if err != nil {
			return nil, err
		}
		o.log.WithFields(logrus.Fields{
			"user":      username,
			"cosmetics": unlocked,
		}).Info("cosmetics unlocked")
	}

	// A level-up must show on the user's old rows too.
	if updated.Level != u.Level {
		if err := o.lb.SetUserLevel(ctx, username, updated.Level); err != nil {
			return nil, err
		}
	}

	if err := o.activity.Add(ctx, models.ActivityEntry{
		Username:    username,
		CountryCode: u.CountryCode,
		Mode:        mode,
		TimeMs:      timeMs,
		Timestamp:   now.UnixMilli(),
		Badges:      badges,
	}); err != nil {
		return nil, err
	}

	return &Summary{
		User:       updated.Sanitized(),
		Badges:     badges,
		Rank:       standing.Rank,
		Total:      standing.Total,
		Percentile: standing.Percentile,
		Unlocked:   unlocked,
	}, nil
}

// YesterdayWinners returns yesterday's best performer per daily mode, or ""
// when nobody played.
func (o *Orchestrator) YesterdayWinners(ctx context.Context) (standard, thematic string, err error) {
	yesterday := clock.DayKey(clock.Yesterday(o.clock.Now()))

	best := func(mode models.GameMode) (string, error) {
		entries, err := o.lb.Query(ctx, mode, "")
		if err != nil {
			return "", err
		}
		for _, e := range entries { // sorted ascending by time
			if clock.DayKey(time.UnixMilli(e.Timestamp)) == yesterday {
				return e.Username, nil
			}
		}
		return "", nil
	}

	if standard, err = best(models.ModeDailyStandard); err != nil {
		return "", "", err
	}
	if thematic, err = best(models.ModeDailyThematic); err != nil {
		return "", "", err
	}
	return standard, thematic, nil
}

// CheckDailyWinAchievement backfills a DAILY_WIN achievement if the user won
// yesterday's daily and none was recorded within the last 48 hours. It is a
// best-effort idempotent sweep run on session load, not a transactional award.
func (o *Orchestrator) CheckDailyWinAchievement(ctx context.Context, username string) (*models.User, error) {
	u, err := o.accounts.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	standard, thematic, err := o.YesterdayWinners(ctx)
	if err != nil {
		return nil, err
	}

	type win struct {
		detail string
		mode   models.GameMode
	}
	var wins []win
	if standard == username {
		wins = append(wins, win{"Standard", models.ModeDailyStandard})
	}
	if thematic == username {
		wins = append(wins, win{"Thematic", models.ModeDailyThematic})
	}
	if len(wins) == 0 {
		return u, nil
	}

	nowMs := o.clock.Now().UnixMilli()
	windowMs := dailyWinWindow.Milliseconds()

	changed := false
	updated, err := o.accounts.Update(ctx, username, func(u *models.User) {
		for _, w := range wins {
			already := false
			for _, a := range u.Achievements {
				if a.Type == models.AchievementDailyWin && a.Detail == w.detail && nowMs-a.Timestamp < windowMs {
					already = true
					break
				}
			}
			if already {
				continue
			}
			u.Achievements = append(u.Achievements, models.AchievementEntry{
				ID:        uuid.NewString(),
				Type:      models.AchievementDailyWin,
				Timestamp: nowMs,
				Mode:      w.mode,
				Detail:    w.detail,
			})
			changed = true
		}
	})
	if err != nil {
		return nil, err
	}
	if changed {
		o.log.WithField("user", username).Info("daily win achievement backfilled")
	}
	return updated, nil
}

// DynamicMedals computes the display-only medals that depend on current
// records and yesterday's results rather than the user's stored history.
func (o *Orchestrator) DynamicMedals(ctx context.Context, username string) ([]string, error) {
	var medals []string

	modes, err := o.records.WorldRecordHolders(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, m := range modes {
		switch m {
		case models.ModeCompetitive5:
			medals = append(medals, "MEDAL_WR_5")
		case models.ModeCompetitive:
			medals = append(medals, "MEDAL_WR_10")
		case models.ModeCompetitive20:
			medals = append(medals, "MEDAL_WR_20")
		}
	}

	standard, thematic, err := o.YesterdayWinners(ctx)
	if err != nil {
		return nil, err
	}
	if standard == username {
		medals = append(medals, "MEDAL_DAILY_WIN")
	}
	if thematic == username {
		medals = append(medals, "MEDAL_THEMATIC_WIN")
	}
	return medals, nil
}
