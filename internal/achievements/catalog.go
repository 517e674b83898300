package achievements

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flagdash/flagdash/internal/models"
)

// Thresholds are the tunable numbers behind the default catalog. They can be
// overridden from a YAML file without touching the predicates.
type Thresholds struct {
	GamesPlayed  []int `yaml:"gamesPlayed"`
	Streaks      []int `yaml:"streaks"`
	Levels       []int `yaml:"levels"`
	SprintTimeMs int64 `yaml:"sprintTimeMs"`
}

// DefaultThresholds returns the shipped tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GamesPlayed:  []int{1, 10, 50, 100, 250},
		Streaks:      []int{3, 7, 14, 30},
		Levels:       []int{5, 10, 20},
		SprintTimeMs: 30000,
	}
}

// LoadThresholds reads overrides from a YAML file on top of the defaults.
// A missing path keeps the defaults.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("read achievements config: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse achievements config: %w", err)
	}
	return t, nil
}

// Catalog builds the default achievement catalog from the given thresholds.
func Catalog(t Thresholds) []Definition {
	var defs []Definition

	gameRewards := []string{"frame_rookie", "frame_regular", "frame_dedicated", "banner_centurion", "banner_obsessed"}
	for i, n := range t.GamesPlayed {
		if i >= len(gameRewards) {
			break
		}
		n := n
		defs = append(defs, Definition{
			ID:       fmt.Sprintf("games_%d", n),
			Title:    fmt.Sprintf("Play %d games", n),
			RewardID: gameRewards[i],
			Check: func(u *models.User, _ *LastGame) bool {
				return u.TotalGames >= n
			},
		})
	}

	streakRewards := []string{"style_ember", "style_blaze", "banner_inferno", "frame_eternal"}
	for i, n := range t.Streaks {
		if i >= len(streakRewards) {
			break
		}
		n := n
		defs = append(defs, Definition{
			ID:       fmt.Sprintf("streak_%d", n),
			Title:    fmt.Sprintf("%d-day streak", n),
			RewardID: streakRewards[i],
			Check: func(u *models.User, _ *LastGame) bool {
				return u.CurrentStreak >= n
			},
		})
	}

	levelRewards := []string{"banner_adept", "frame_expert", "style_legend"}
	for i, n := range t.Levels {
		if i >= len(levelRewards) {
			break
		}
		n := n
		defs = append(defs, Definition{
			ID:       fmt.Sprintf("level_%d", n),
			Title:    fmt.Sprintf("Reach level %d", n),
			RewardID: levelRewards[i],
			Check: func(u *models.User, _ *LastGame) bool {
				return u.Level >= n
			},
		})
	}

	defs = append(defs,
		Definition{
			ID:       "world_record",
			Title:    "Set a world record",
			RewardID: "frame_champion",
			Check: func(_ *models.User, last *LastGame) bool {
				return last.HasBadge("WR")
			},
		},
		Definition{
			ID:       "national_record",
			Title:    "Set a national record",
			RewardID: "banner_patriot",
			Check: func(_ *models.User, last *LastGame) bool {
				return last.HasBadge("NR")
			},
		},
		Definition{
			ID:       "daily_winner",
			Title:    "Win a daily challenge",
			RewardID: "style_sunrise",
			Check: func(u *models.User, _ *LastGame) bool {
				return hasAchievement(u, models.AchievementDailyWin, "")
			},
		},
		Definition{
			ID:       "league_gold",
			Title:    "Finish a league week in Gold or above",
			RewardID: "frame_gilded",
			Check: func(u *models.User, _ *LastGame) bool {
				return hasAchievement(u, models.AchievementLeagueWin, string(models.TierGold)) ||
					hasAchievement(u, models.AchievementLeagueWin, string(models.TierPlatinum)) ||
					hasAchievement(u, models.AchievementLeagueWin, string(models.TierDiamond)) ||
					hasAchievement(u, models.AchievementLeagueWin, string(models.TierMaster))
			},
		},
		Definition{
			ID:       "league_master",
			Title:    "Survive a full league week",
			RewardID: "banner_master",
			Check: func(u *models.User, _ *LastGame) bool {
				return hasAchievement(u, models.AchievementLeagueWin, string(models.TierMaster))
			},
		},
		Definition{
			ID:       "sprint",
			Title:    "Finish a competitive run under the sprint time",
			RewardID: "style_lightning",
			Check: func(_ *models.User, last *LastGame) bool {
				return last != nil && last.Mode.Competitive() && last.TimeMs < t.SprintTimeMs
			},
		},
	)

	return defs
}
