package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*LeaderboardCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLeaderboardCache(client), mr
}

func TestLeaderboardOrdersByXP(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.RecordXP(ctx, "ann", 300)
	c.RecordXP(ctx, "bob", 1200)
	c.RecordXP(ctx, "cid", 50)
	c.RecordXP(ctx, "ann", 1500)

	top, err := c.Top(ctx, 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d entries, want 2", len(top))
	}
	if top[0].UserID != "ann" || top[0].XP != 1500 || top[1].UserID != "bob" {
		t.Errorf("unexpected order %+v", top)
	}
}

func TestLeaderboardForget(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.RecordXP(ctx, "ann", 10)
	c.Forget(ctx, "ann")
	if mr.Exists(leaderboardKey) {
		t.Error("sorted set should be gone once empty")
	}
	top, err := c.Top(ctx, 10)
	if err != nil || len(top) != 0 {
		t.Errorf("Top = %+v, %v", top, err)
	}
}

func TestLeaderboardUnavailable(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	if _, err := c.Top(context.Background(), 5); err == nil {
		t.Error("expected error with redis down")
	}
}
