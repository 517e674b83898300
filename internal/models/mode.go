package models

// GameMode identifies one of the playable quiz formats. Values are persisted
// verbatim in leaderboard entries, so they must stay stable.
type GameMode string

const (
	ModeCompetitive5  GameMode = "COMPETITIVE_5"
	ModeCompetitive   GameMode = "COMPETITIVE"
	ModeCompetitive20 GameMode = "COMPETITIVE_20"
	ModeDailyStandard GameMode = "DAILY_STANDARD"
	ModeDailyThematic GameMode = "DAILY_THEMATIC"
	ModeWeeklyLeague  GameMode = "WEEKLY_LEAGUE"
	ModeNationsLeague GameMode = "NATIONS_LEAGUE"
)

// AllModes lists every mode in display order.
var AllModes = []GameMode{
	ModeCompetitive5,
	ModeCompetitive,
	ModeCompetitive20,
	ModeDailyStandard,
	ModeDailyThematic,
	ModeWeeklyLeague,
	ModeNationsLeague,
}

// Competitive reports whether the mode participates in WR/NR tracking.
func (m GameMode) Competitive() bool {
	switch m {
	case ModeCompetitive5, ModeCompetitive, ModeCompetitive20:
		return true
	}
	return false
}

// KeepsHistory reports whether every finished run produces its own leaderboard
// row. Best-time modes instead keep a single row per (user, mode, season).
func (m GameMode) KeepsHistory() bool {
	return m.Competitive() || m == ModeNationsLeague
}

// Label returns the human-readable name used in the activity feed and medals.
func (m GameMode) Label() string {
	switch m {
	case ModeCompetitive5:
		return "Sprint (5 flags)"
	case ModeCompetitive:
		return "Competitive (10 flags)"
	case ModeCompetitive20:
		return "Marathon (20 flags)"
	case ModeDailyStandard:
		return "Daily Challenge"
	case ModeDailyThematic:
		return "Thematic Daily"
	case ModeWeeklyLeague:
		return "Weekly League"
	case ModeNationsLeague:
		return "Nations League"
	}
	return string(m)
}

// QuestionCount returns how many flags a run of this mode asks.
func (m GameMode) QuestionCount() int {
	switch m {
	case ModeCompetitive5:
		return 5
	case ModeCompetitive20:
		return 20
	default:
		return 10
	}
}
