package models

// Entry is a single leaderboard row. For history-kept modes an Entry is
// immutable once written; for best-time modes it is the user's current best
// for the season and is replaced in place when beaten.
type Entry struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	CountryCode string   `json:"countryCode"`
	Mode        GameMode `json:"mode"`
	TimeMs      int64    `json:"timeMs"`
	Timestamp   int64    `json:"timestamp"` // unix milliseconds
	SeasonID    string   `json:"seasonId"`  // YYYY-MM, Madrid-local month at write time
	Level       int      `json:"level"`
}
