// Package achievements evaluates unlock conditions against user state and
// emits cosmetic unlocks. The catalog is configuration; the evaluator is the
// core.
package achievements

import (
	"strings"

	"github.com/flagdash/flagdash/internal/models"
)

// LastGame is the just-finished match context a predicate may consult.
type LastGame struct {
	Mode   models.GameMode
	TimeMs int64
	Rank   int
	Badges []string // PB/SB/WR/NR flags from this run
}

// HasBadge reports whether the run earned the given badge.
func (g *LastGame) HasBadge(badge string) bool {
	if g == nil {
		return false
	}
	for _, b := range g.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// Definition binds an unlock condition to the cosmetic it rewards.
type Definition struct {
	ID       string
	Title    string
	RewardID string
	Check    func(u *models.User, last *LastGame) bool
}

// Evaluator runs the catalog in a single pass.
type Evaluator struct {
	defs []Definition
}

func NewEvaluator(defs []Definition) *Evaluator {
	return &Evaluator{defs: defs}
}

// Evaluate returns the reward ids newly unlocked by the current user state.
// Already-owned rewards are skipped; unlocks are permanent, so there is no
// revocation path here or anywhere else.
func (e *Evaluator) Evaluate(u *models.User, last *LastGame) []string {
	var unlocked []string
	for _, def := range e.defs {
		if u.HasCosmetic(def.RewardID) {
			continue
		}
		if def.Check(u, last) {
			unlocked = append(unlocked, def.RewardID)
		}
	}
	return unlocked
}

// hasAchievement reports whether the user's history contains an entry of the
// given type, optionally filtered by detail prefix.
func hasAchievement(u *models.User, typ models.AchievementType, detailPrefix string) bool {
	for _, a := range u.Achievements {
		if a.Type != typ {
			continue
		}
		if detailPrefix == "" || strings.HasPrefix(a.Detail, detailPrefix) {
			return true
		}
	}
	return false
}
