// cmd/flagdash-daily/main.go
//
// Once-per-day maintenance job: awards nations-league points from today's
// standings and backfills daily-win achievements for yesterday's winners.
// Safe to run from cron more than once; a day marker guards the point award.
package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/flagdash/flagdash/internal/accounts"
	"github.com/flagdash/flagdash/internal/achievements"
	"github.com/flagdash/flagdash/internal/activity"
	"github.com/flagdash/flagdash/internal/auth"
	"github.com/flagdash/flagdash/internal/clock"
	"github.com/flagdash/flagdash/internal/leaderboard"
	"github.com/flagdash/flagdash/internal/league"
	"github.com/flagdash/flagdash/internal/nations"
	"github.com/flagdash/flagdash/internal/progression"
	"github.com/flagdash/flagdash/internal/records"
	"github.com/flagdash/flagdash/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	ctx := context.Background()

	if err := auth.Init(); err != nil {
		logger.Fatalf("auth init: %v", err)
	}

	kv, err := store.Open(ctx)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}

	clk := clock.System{}
	lb := leaderboard.New(kv, clk, logger)
	acc := accounts.New(kv, clk, logger)
	rec := records.New(kv, logger)
	act := activity.New(kv, logger)
	agg := nations.New(lb, kv, clk, logger)
	lg := league.New(acc, lb, clk, logger)

	thresholds, err := achievements.LoadThresholds(os.Getenv("FLAGDASH_ACHIEVEMENTS_FILE"))
	if err != nil {
		logger.Fatalf("load achievements config: %v", err)
	}
	eval := achievements.NewEvaluator(achievements.Catalog(thresholds))
	orch := progression.New(lb, rec, acc, lg, act, eval, clk, logger)

	today := clock.DayKey(clk.Now())

	awarded, _, err := kv.Get(ctx, store.KeyNationAwardDay)
	if err != nil {
		logger.Fatalf("read award marker: %v", err)
	}
	if awarded == today {
		logger.WithField("day", today).Info("nation points already awarded today")
	} else {
		if err := agg.AwardDailyPoints(ctx); err != nil {
			logger.Fatalf("award daily points: %v", err)
		}
		if err := kv.Set(ctx, store.KeyNationAwardDay, today); err != nil {
			logger.Fatalf("write award marker: %v", err)
		}
		standings, err := agg.TotalPoints(ctx)
		if err != nil {
			logger.Fatalf("read standings: %v", err)
		}
		for i, s := range standings {
			if i >= 10 {
				break
			}
			logger.WithFields(logrus.Fields{
				"rank":    i + 1,
				"country": s.CountryCode,
				"points":  s.Points,
			}).Info("nations league standing")
		}
	}

	usernames, err := acc.Usernames(ctx)
	if err != nil {
		logger.Fatalf("list users: %v", err)
	}
	for _, name := range usernames {
		if _, err := orch.CheckDailyWinAchievement(ctx, name); err != nil {
			logger.WithError(err).WithField("user", name).Warn("daily win backfill failed")
		}
	}
	logger.WithField("users", len(usernames)).Info("daily maintenance complete")
}
