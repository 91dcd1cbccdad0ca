package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/waste3d/honeyhive/services/economy-service/internal/application/usecase"
)

const leaderboardKey = "leaderboard:xp"

// LeaderboardCache keeps total XP per user in a sorted set.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

func (c *LeaderboardCache) RecordXP(ctx context.Context, userID string, xp int) error {
	return c.client.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(xp), Member: userID}).Err()
}

func (c *LeaderboardCache) Top(ctx context.Context, limit int) ([]usecase.RankedUser, error) {
	zs, err := c.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]usecase.RankedUser, 0, len(zs))
	for _, z := range zs {
		id, _ := z.Member.(string)
		out = append(out, usecase.RankedUser{UserID: id, XP: int(z.Score)})
	}
	return out, nil
}

// Forget drops a user from the board.
func (c *LeaderboardCache) Forget(ctx context.Context, userID string) error {
	return c.client.ZRem(ctx, leaderboardKey, userID).Err()
}

var _ usecase.XPRanker = (*LeaderboardCache)(nil)
