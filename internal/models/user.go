package models

// ModeRecord holds a user's personal best and season best for one mode.
// A zero TimeMs means "no time yet".
type ModeRecord struct {
	PB       int64  `json:"pb"`
	SB       int64  `json:"sb"`
	SeasonID string `json:"seasonId"`
}

// EquippedCosmetics names the cosmetic currently worn per slot.
type EquippedCosmetics struct {
	FrameID     string `json:"frameId,omitempty"`
	BannerID    string `json:"bannerId,omitempty"`
	NameStyleID string `json:"nameStyleId,omitempty"`
}

// User is the persisted account aggregate. Level is always derived from XP;
// it is stored only so leaderboard rows can display it without a join.
type User struct {
	Username    string `json:"username"`
	Password    string `json:"password,omitempty"` // argon2id encoded hash
	CountryCode string `json:"countryCode"`

	TotalGames int   `json:"totalGames"`
	XP         int64 `json:"xp"`
	Level      int   `json:"level"`

	Medals       []string                `json:"medals"`
	Achievements []AchievementEntry      `json:"achievements"`
	Records      map[GameMode]ModeRecord `json:"records"`

	UnlockedCosmetics []string          `json:"unlockedCosmetics"`
	Equipped          EquippedCosmetics `json:"equippedCosmetics"`

	WeeklyState *WeeklyLeagueState `json:"weeklyState,omitempty"`

	CurrentStreak  int    `json:"currentStreak"`
	LastPlayedDate string `json:"lastPlayedDate"` // YYYY-MM-DD, Madrid-local

	LastDailyStandard string `json:"lastDailyStandard"`
	LastDailyThematic string `json:"lastDailyThematic"`
}

// Sanitized returns a copy safe to hand outside the account store.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// EnsureDefaults fills collections that older persisted users may lack.
// Missing fields decode as nil and must behave as empty.
func (u *User) EnsureDefaults() {
	if u.Medals == nil {
		u.Medals = []string{}
	}
	if u.Achievements == nil {
		u.Achievements = []AchievementEntry{}
	}
	if u.Records == nil {
		u.Records = map[GameMode]ModeRecord{}
	}
	if u.UnlockedCosmetics == nil {
		u.UnlockedCosmetics = []string{}
	}
}

// HasCosmetic reports whether the cosmetic id has been unlocked.
func (u *User) HasCosmetic(id string) bool {
	for _, c := range u.UnlockedCosmetics {
		if c == id {
			return true
		}
	}
	return false
}
