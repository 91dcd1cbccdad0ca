package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"
)

// EconomyRepository is the persistence the economy needs. Reads that find
// nothing return (nil, nil) except GetProfile, which returns ErrProfileNotFound.
type EconomyRepository interface {
	CreateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetProfiles(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error)
	UpdateBalances(ctx context.Context, id uuid.UUID, u domain.BalanceUpdate) (*domain.Profile, error)
	GetJar(ctx context.Context, id uuid.UUID) (*domain.JarProgress, error)
	GetUnclaimedGift(ctx context.Context, id uuid.UUID) (*domain.MysteryGift, error)
	GetBadge(ctx context.Context, id uuid.UUID) (*domain.FlamingBadge, error)
	TopByXP(ctx context.Context, limit int) ([]domain.Profile, error)
	WithinTx(ctx context.Context, fn func(tx EconomyTx) error) error
}

// EconomyTx exposes row-locked access inside one transaction.
type EconomyTx interface {
	LockProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	SaveProfile(ctx context.Context, p *domain.Profile) error
	// LockJar returns a zero jar for users that have none yet.
	LockJar(ctx context.Context, id uuid.UUID) (*domain.JarProgress, error)
	SaveJar(ctx context.Context, j *domain.JarProgress) error
	GiftForCycle(ctx context.Context, id uuid.UUID, cycle int) (*domain.MysteryGift, error)
	CreateGift(ctx context.Context, g *domain.MysteryGift) error
	LockGift(ctx context.Context, giftID uuid.UUID) (*domain.MysteryGift, error)
	SaveGift(ctx context.Context, g *domain.MysteryGift) error
	SaveBadge(ctx context.Context, b *domain.FlamingBadge) error
	AddTransaction(ctx context.Context, t *domain.RewardTransaction) error
}

type EventPublisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

type RankedUser struct {
	UserID string
	XP     int
}

type XPRanker interface {
	RecordXP(ctx context.Context, userID string, xp int) error
	Top(ctx context.Context, limit int) ([]RankedUser, error)
	Forget(ctx context.Context, userID string) error
}

type Clock func() time.Time
