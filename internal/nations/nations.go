// Package nations computes the daily national rankings and maintains the
// cumulative national points ledger.
package nations

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flagdash/flagdash/internal/clock"
	"github.com/flagdash/flagdash/internal/leaderboard"
	"github.com/flagdash/flagdash/internal/models"
	"github.com/flagdash/flagdash/internal/store"
)

const (
	// contributorsPerNation is how many times count toward a country's total.
	contributorsPerNation = 5
	// missingPenaltyMs is added once per contributor slot a country left empty.
	missingPenaltyMs = 60000
	// maxScoringRanks: rank 0 earns 10 points down to rank 9 earning 1.
	maxScoringRanks = 10
)

// Aggregator derives daily standings from the leaderboard and owns the
// persistent points ledger.
type Aggregator struct {
	lb    *leaderboard.Store
	kv    store.KV
	clock clock.Clock
	log   *logrus.Logger
}

func New(lb *leaderboard.Store, kv store.KV, clk clock.Clock, log *logrus.Logger) *Aggregator {
	return &Aggregator{lb: lb, kv: kv, clock: clk, log: log}
}

// DailyStats groups today's nations-league entries by country, sums each
// country's five lowest times (plus a fixed penalty per missing contributor)
// and returns the standings sorted ascending by total. Recomputed from the
// leaderboard on every call; nothing is cached.
func (a *Aggregator) DailyStats(ctx context.Context) ([]models.NationDailyStats, error) {
	entries, err := a.lb.Query(ctx, models.ModeNationsLeague, "")
	if err != nil {
		return nil, err
	}

	today := clock.DayKey(a.clock.Now())
	byCountry := map[string][]int64{}
	for _, e := range entries {
		if clock.DayKey(time.UnixMilli(e.Timestamp)) != today {
			continue
		}
		byCountry[e.CountryCode] = append(byCountry[e.CountryCode], e.TimeMs)
	}

	stats := make([]models.NationDailyStats, 0, len(byCountry))
	for code, times := range byCountry {
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
		if len(times) > contributorsPerNation {
			times = times[:contributorsPerNation]
		}
		var sum int64
		for _, t := range times {
			sum += t
		}
		penalty := int64(contributorsPerNation-len(times)) * missingPenaltyMs
		stats = append(stats, models.NationDailyStats{
			CountryCode:       code,
			TotalTimeMs:       sum + penalty,
			ContributingTimes: len(times),
			PenaltyMs:         penalty,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalTimeMs < stats[j].TotalTimeMs
	})
	return stats, nil
}

// pointsLedger loads the persisted country→points map. Corrupt data reads as
// empty.
func (a *Aggregator) pointsLedger(ctx context.Context) (map[string]int, error) {
	raw, found, err := a.kv.Get(ctx, store.KeyNationPoints)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]int{}, nil
	}
	var ledger map[string]int
	if err := json.Unmarshal([]byte(raw), &ledger); err != nil {
		a.log.WithError(err).Warn("corrupt nation points blob, resetting to empty")
		return map[string]int{}, nil
	}
	return ledger, nil
}

// AwardDailyPoints adds points to the ledger from today's standings: rank 0
// earns 10, decreasing by one per rank, nothing past rank 9. The ledger is
// strictly additive and never recalculated retroactively. Calling this once
// per day is the caller's responsibility.
func (a *Aggregator) AwardDailyPoints(ctx context.Context) error {
	stats, err := a.DailyStats(ctx)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return nil
	}

	ledger, err := a.pointsLedger(ctx)
	if err != nil {
		return err
	}
	for i, stat := range stats {
		if i >= maxScoringRanks {
			break
		}
		ledger[stat.CountryCode] += maxScoringRanks - i
	}

	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("marshal nation points: %w", err)
	}
	return a.kv.Set(ctx, store.KeyNationPoints, string(data))
}

// TotalPoints returns the cumulative ledger sorted by points descending.
func (a *Aggregator) TotalPoints(ctx context.Context) ([]models.NationPointsEntry, error) {
	ledger, err := a.pointsLedger(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.NationPointsEntry, 0, len(ledger))
	for code, pts := range ledger {
		result = append(result, models.NationPointsEntry{CountryCode: code, Points: pts})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Points != result[j].Points {
			return result[i].Points > result[j].Points
		}
		return result[i].CountryCode < result[j].CountryCode
	})
	return result, nil
}
