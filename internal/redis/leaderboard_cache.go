package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/coolguy173/focus-app1/internal/domain"
)

const leaderboardKey = "leaderboard:top"

// LeaderboardCache is a best-effort Redis cache in front of the PostgreSQL
// leaderboard query. Cache failures are logged and treated as misses; the
// database remains the source of truth.
type LeaderboardCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewLeaderboardCache(rdb *goredis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached leaderboard, or (nil, false) on a miss or error.
func (c *LeaderboardCache) Get(ctx context.Context) ([]domain.LeaderboardEntry, bool) {
	raw, err := c.rdb.Get(ctx, leaderboardKey).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("Leaderboard cache read failed", "error", err)
		return nil, false
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		slog.Warn("Leaderboard cache entry corrupt, dropping", "error", err)
		_ = c.rdb.Del(ctx, leaderboardKey).Err()
		return nil, false
	}
	return entries, true
}

// Set stores the leaderboard with the cache TTL.
func (c *LeaderboardCache) Set(ctx context.Context, entries []domain.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	if err := c.rdb.Set(ctx, leaderboardKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write leaderboard cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached leaderboard. Called after every recorded
// outcome so standings never lag more than one read behind.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, leaderboardKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate leaderboard cache: %w", err)
	}
	return nil
}
