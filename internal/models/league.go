package models

// LeagueTier is a weekly-league bracket. Qualifying is the entry bracket every
// user restarts in when a new week begins.
type LeagueTier string

const (
	TierQualifying LeagueTier = "Qualifying"
	TierBronze     LeagueTier = "Bronze"
	TierSilver     LeagueTier = "Silver"
	TierGold       LeagueTier = "Gold"
	TierPlatinum   LeagueTier = "Platinum"
	TierDiamond    LeagueTier = "Diamond"
	TierMaster     LeagueTier = "Master"
)

// TierProgression maps league day N to the tier reached by surviving day N.
// Index 0 is day 1 (Saturday, Qualifying).
var TierProgression = []LeagueTier{
	TierQualifying,
	TierBronze,
	TierSilver,
	TierGold,
	TierPlatinum,
	TierDiamond,
	TierMaster,
}

// Cutoffs holds the percentile a user must reach to survive each tier's day.
// Master's 1.0 means nobody is cut on the final day.
var Cutoffs = map[LeagueTier]float64{
	TierQualifying: 0.8,
	TierBronze:     0.7,
	TierSilver:     0.6,
	TierGold:       0.5,
	TierPlatinum:   0.4,
	TierDiamond:    0.3,
	TierMaster:     1.0,
}

// WeeklyLeagueState is a user's position in the current league week.
// Elimination is a flag rather than a tier so the last tier label survives
// for display after the user is out.
type WeeklyLeagueState struct {
	CurrentTier    LeagueTier `json:"currentTier"`
	BestTimeMs     int64      `json:"bestTimeMs"` // 0 = no time this tier
	IsEliminated   bool       `json:"isEliminated"`
	LastUpdatedDay int        `json:"lastUpdatedDay"` // 1..7, Saturday=1; 0 = never
	WeekID         string     `json:"weekId"`         // YYYY-MM-DD of the week's Saturday
}
