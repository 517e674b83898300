package models

// AchievementType classifies an achievement history entry.
type AchievementType string

const (
	AchievementWR        AchievementType = "WR"
	AchievementNR        AchievementType = "NR"
	AchievementLeagueWin AchievementType = "LEAGUE_WIN"
	AchievementDailyWin  AchievementType = "DAILY_WIN"
)

// AchievementEntry is an append-only history record. Besides display it backs
// idempotency checks, e.g. "already awarded this daily win within 48h".
type AchievementEntry struct {
	ID        string          `json:"id"`
	Type      AchievementType `json:"type"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
	Mode      GameMode        `json:"mode,omitempty"`
	TimeMs    int64           `json:"timeMs,omitempty"`
	Detail    string          `json:"detail,omitempty"`
}
