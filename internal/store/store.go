// Package store provides the key-value persistence substrate. Every logical
// collection (users, leaderboard, records, ...) is one JSON blob under one
// fixed key, matching the original client's storage layout.
package store

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Fixed storage keys. One key per logical store; values are JSON-serialized
// entity collections.
const (
	KeyUsers          = "flagdash_users_v1"
	KeyLeaderboard    = "flagdash_leaderboard_v1"
	KeyGlobalRecords  = "flagdash_global_records_v1"
	KeyActivityLog    = "flagdash_activity_log_v1"
	KeyNationPoints   = "flagdash_nation_points_v1"
	KeySession        = "flagdash_current_user"
	KeyNationAwardDay = "flagdash_nation_award_day"
)

// KV is the persistence contract. Get reports found=false for an absent key;
// that is not an error. Set overwrites unconditionally (last writer wins, an
// accepted limitation of the design).
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Open builds a KV from environment configuration. FLAGDASH_BACKEND selects
// "redis" (default) or "postgres".
func Open(ctx context.Context) (KV, error) {
	switch backend := getEnv("FLAGDASH_BACKEND", "redis"); backend {
	case "redis":
		return OpenRedis(ctx)
	case "postgres":
		return OpenPostgres(ctx)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt parses an environment variable as an integer, else a default.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
