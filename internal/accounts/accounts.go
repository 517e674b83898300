// Package accounts is the user repository: registration, login, and every
// read-modify-write mutation of the user aggregate.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/flagdash/flagdash/internal/auth"
	"github.com/flagdash/flagdash/internal/clock"
	"github.com/flagdash/flagdash/internal/models"
	"github.com/flagdash/flagdash/internal/store"
)

// XPBaseDivisor scales the exponential leveling curve.
const XPBaseDivisor = 100

// CalculateLevel derives a user's level from XP: floor(sqrt(xp/divisor))+1,
// never below 1. Level is always recomputed from XP, never tracked separately.
func CalculateLevel(xp int64) int {
	if xp <= 0 {
		return 1
	}
	return int(math.Sqrt(float64(xp)/XPBaseDivisor)) + 1
}

// Result is a structured outcome for validation-style operations. Domain
// rejections (duplicate username, bad credentials) are results, not errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginResult extends Result with the authenticated user and session token.
type LoginResult struct {
	Result
	User  *models.User `json:"user,omitempty"`
	Token string       `json:"token,omitempty"`
}

// Store is the account repository over the KV substrate.
type Store struct {
	kv    store.KV
	clock clock.Clock
	log   *logrus.Logger
}

func New(kv store.KV, clk clock.Clock, log *logrus.Logger) *Store {
	return &Store{kv: kv, clock: clk, log: log}
}

// users loads the full username→user map. Corrupt data reads as empty.
func (s *Store) users(ctx context.Context) (map[string]models.User, error) {
	raw, found, err := s.kv.Get(ctx, store.KeyUsers)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]models.User{}, nil
	}
	var users map[string]models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		s.log.WithError(err).Warn("corrupt users blob, resetting to empty")
		return map[string]models.User{}, nil
	}
	return users, nil
}

func (s *Store) saveUsers(ctx context.Context, users map[string]models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	return s.kv.Set(ctx, store.KeyUsers, string(data))
}

// Register creates a new account with all counters zeroed. A taken username
// is a validation failure, not an error.
func (s *Store) Register(ctx context.Context, username, password, countryCode string) (Result, error) {
	users, err := s.users(ctx)
	if err != nil {
		return Result{}, err
	}
	if _, taken := users[username]; taken {
		return Result{Success: false, Message: "username already exists"}, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Result{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u := models.User{
		Username:    username,
		Password:    hash,
		CountryCode: countryCode,
		Level:       1,
	}
	u.EnsureDefaults()

	users[username] = u
	if err := s.saveUsers(ctx, users); err != nil {
		return Result{}, err
	}
	return Result{Success: true, Message: "user registered"}, nil
}

// Authenticate verifies credentials, issues a session token and persists the
// active session. Wrong username and wrong password produce the same message.
func (s *Store) Authenticate(ctx context.Context, username, password string) (LoginResult, error) {
	users, err := s.users(ctx)
	if err != nil {
		return LoginResult{}, err
	}

	invalid := LoginResult{Result: Result{Success: false, Message: "invalid username or password"}}

	u, ok := users[username]
	if !ok {
		return invalid, nil
	}
	match, err := auth.VerifyPassword(password, u.Password)
	if err != nil || !match {
		return invalid, nil
	}

	token, err := auth.CreateToken(username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to create session token: %w", err)
	}
	if err := s.SaveSession(ctx, username, token); err != nil {
		return LoginResult{}, err
	}

	u.EnsureDefaults()
	safe := u.Sanitized()
	return LoginResult{
		Result: Result{Success: true, Message: "login ok"},
		User:   &safe,
		Token:  token,
	}, nil
}

// Get returns the stored user, or nil if absent.
func (s *Store) Get(ctx context.Context, username string) (*models.User, error) {
	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := users[username]
	if !ok {
		return nil, nil
	}
	u.EnsureDefaults()
	return &u, nil
}

// Usernames lists every registered account, sorted for stable iteration.
func (s *Store) Usernames(ctx context.Context) ([]string, error) {
	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Update applies mutate to the stored user in one read-modify-write unit and
// returns the updated aggregate. Level is recomputed from XP on every write so
// the two can never drift apart.
func (s *Store) Update(ctx context.Context, username string, mutate func(*models.User)) (*models.User, error) {
	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := users[username]
	if !ok {
		return nil, fmt.Errorf("accounts: unknown user %q", username)
	}
	u.EnsureDefaults()
	mutate(&u)
	u.Level = CalculateLevel(u.XP)
	users[username] = u
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	return &u, nil
}

// ApplyResult folds a finished run into the user: total games, streak, PB/SB,
// XP/level, daily-completion stamps. Returns the updated user and the earned
// PB/SB badges.
func (s *Store) ApplyResult(ctx context.Context, username string, mode models.GameMode, timeMs, xpGained int64) (*models.User, []string, error) {
	now := s.clock.Now()
	today := clock.DayKey(now)
	yesterday := clock.DayKey(clock.Yesterday(now))
	season := clock.SeasonID(now)

	var badges []string
	u, err := s.Update(ctx, username, func(u *models.User) {
		u.TotalGames++

		switch u.LastPlayedDate {
		case today:
			// Already played today; streak unchanged.
		case yesterday:
			u.CurrentStreak++
		default:
			u.CurrentStreak = 1
		}
		u.LastPlayedDate = today

		rec, ok := u.Records[mode]
		if !ok {
			rec = models.ModeRecord{SeasonID: season}
		}

		if rec.PB == 0 || timeMs < rec.PB {
			rec.PB = timeMs
			badges = append(badges, "PB")
		}

		if rec.SeasonID != season {
			// Season rolled over: SB resets to this run even if it is slower.
			rec.SB = timeMs
			rec.SeasonID = season
			badges = append(badges, "SB")
		} else if rec.SB == 0 || timeMs < rec.SB {
			rec.SB = timeMs
			badges = append(badges, "SB")
		}
		u.Records[mode] = rec

		u.XP += xpGained

		switch mode {
		case models.ModeDailyStandard:
			u.LastDailyStandard = today
		case models.ModeDailyThematic:
			u.LastDailyThematic = today
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return u, badges, nil
}

// UnlockCosmetics appends any not-yet-owned cosmetic ids. Unlocks are
// permanent; there is no revocation path.
func (s *Store) UnlockCosmetics(ctx context.Context, username string, ids []string) (*models.User, error) {
	return s.Update(ctx, username, func(u *models.User) {
		for _, id := range ids {
			if !u.HasCosmetic(id) {
				u.UnlockedCosmetics = append(u.UnlockedCosmetics, id)
			}
		}
	})
}

// Equip sets the worn cosmetics. Only unlocked ids are applied; empty fields
// clear the slot.
func (s *Store) Equip(ctx context.Context, username string, eq models.EquippedCosmetics) (*models.User, error) {
	return s.Update(ctx, username, func(u *models.User) {
		if eq.FrameID == "" || u.HasCosmetic(eq.FrameID) {
			u.Equipped.FrameID = eq.FrameID
		}
		if eq.BannerID == "" || u.HasCosmetic(eq.BannerID) {
			u.Equipped.BannerID = eq.BannerID
		}
		if eq.NameStyleID == "" || u.HasCosmetic(eq.NameStyleID) {
			u.Equipped.NameStyleID = eq.NameStyleID
		}
	})
}

// session is the persisted active-session record.
type session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// SaveSession persists the active session.
func (s *Store) SaveSession(ctx context.Context, username, token string) error {
	data, err := json.Marshal(session{Username: username, Token: token})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.kv.Set(ctx, store.KeySession, string(data))
}

// LoadSession returns the username of the persisted session if its token
// still verifies.
func (s *Store) LoadSession(ctx context.Context) (string, bool, error) {
	raw, found, err := s.kv.Get(ctx, store.KeySession)
	if err != nil || !found {
		return "", false, err
	}
	var sess session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.log.WithError(err).Warn("corrupt session blob, clearing")
		return "", false, nil
	}
	username, err := auth.VerifyToken(sess.Token)
	if err != nil || username != sess.Username {
		return "", false, nil
	}
	return username, true, nil
}

// ClearSession logs the active session out.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.kv.Set(ctx, store.KeySession, "{}")
}
