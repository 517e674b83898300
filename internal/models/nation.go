package models

// NationDailyStats is one country's standing in today's nations league.
// Derived on demand from the leaderboard, never persisted.
type NationDailyStats struct {
	CountryCode       string `json:"countryCode"`
	TotalTimeMs       int64  `json:"totalTimeMs"`
	ContributingTimes int    `json:"contributingTimes"`
	PenaltyMs         int64  `json:"penaltyMs"`
}

// NationPointsEntry is a country's cumulative nations-league points.
type NationPointsEntry struct {
	CountryCode string `json:"countryCode"`
	Points      int    `json:"points"`
}
