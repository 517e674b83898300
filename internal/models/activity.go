package models

// ActivityEntry is one line in the recent-events feed shown on the home
// screen. The feed is bounded; old entries fall off the end.
type ActivityEntry struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	CountryCode string   `json:"countryCode"`
	Mode        GameMode `json:"mode"`
	TimeMs      int64    `json:"timeMs"`
	Timestamp   int64    `json:"timestamp"` // unix milliseconds
	Badges      []string `json:"badges,omitempty"`
}
