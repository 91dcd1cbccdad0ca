package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"
)

type ClaimResult struct {
	GiftType       domain.GiftType
	GiftAmount     int
	Hearts         int
	Gems           int
	BadgeExpiresAt *time.Time
}

func (uc *EconomyUseCase) AddPollenToJar(ctx context.Context, userID uuid.UUID, pollen int) (domain.PollenResult, error) {
	if pollen <= 0 {
		return domain.PollenResult{}, domain.ErrInvalidAmount
	}
	var (
		res domain.PollenResult
		jar domain.JarProgress
	)
	err := uc.repo.WithinTx(ctx, func(tx EconomyTx) error {
		if _, err := tx.LockProfile(ctx, userID); err != nil {
			return err
		}
		j, err := tx.LockJar(ctx, userID)
		if err != nil {
			return err
		}
		res = j.AddPollen(pollen, uc.now())
		jar = *j
		return tx.SaveJar(ctx, j)
	})
	if err != nil {
		return res, err
	}
	uc.publish(ctx, uc.jarEvent(userID, &jar))
	return res, nil
}

// GenerateMysteryGift creates the gift for the current fill cycle. Calling it
// again before the claim returns the same gift, so duplicate observers of a
// full jar cannot mint a second one.
func (uc *EconomyUseCase) GenerateMysteryGift(ctx context.Context, userID uuid.UUID) (*domain.MysteryGift, error) {
	var (
		gift    *domain.MysteryGift
		created bool
	)
	err := uc.repo.WithinTx(ctx, func(tx EconomyTx) error {
		j, err := tx.LockJar(ctx, userID)
		if err != nil {
			return err
		}
		if !j.IsFull {
			return domain.ErrJarNotFull
		}
		existing, err := tx.GiftForCycle(ctx, userID, j.Cycle)
		if err != nil {
			return err
		}
		if existing != nil {
			gift = existing
			return nil
		}

		giftType, amount := domain.RollGift(uc.dice)
		gift = &domain.MysteryGift{
			ID:         uuid.New(),
			UserID:     userID,
			Cycle:      j.Cycle,
			GiftType:   giftType,
			GiftAmount: amount,
			CreatedAt:  uc.now(),
		}
		created = true
		return tx.CreateGift(ctx, gift)
	})
	if err != nil {
		return nil, err
	}
	if created {
		g := *gift
		uc.publish(ctx, domain.Event{Kind: domain.EventGiftCreated, UserID: userID.String(), Gift: &g, At: uc.now()})
	}
	return gift, nil
}

// ClaimMysteryGift applies the reward, marks that one gift claimed and resets the jar.
func (uc *EconomyUseCase) ClaimMysteryGift(ctx context.Context, userID, giftID uuid.UUID) (ClaimResult, error) {
	var (
		res  ClaimResult
		gift domain.MysteryGift
		jar  domain.JarProgress
	)
	err := uc.repo.WithinTx(ctx, func(tx EconomyTx) error {
		p, err := tx.LockProfile(ctx, userID)
		if err != nil {
			return err
		}
		g, err := tx.LockGift(ctx, giftID)
		if err != nil {
			return err
		}
		if g.UserID != userID {
			return domain.ErrGiftNotFound
		}
		if g.IsClaimed {
			return domain.ErrGiftAlreadyClaimed
		}

		now := uc.now()
		res = ClaimResult{GiftType: g.GiftType, GiftAmount: g.GiftAmount}
		grant := domain.Grant{Amount: g.GiftAmount, Source: domain.SourceMysteryGift, Metadata: map[string]any{"gift_id": g.ID.String()}}

		switch g.GiftType {
		case domain.GiftPollen:
			p.Gems += g.GiftAmount
			if err := tx.AddTransaction(ctx, domain.NewTransaction(userID, domain.CurrencyGems, grant, p.Gems, now)); err != nil {
				return err
			}
		case domain.GiftHoneyDrops:
			p.AwardHearts(g.GiftAmount)
			if err := tx.AddTransaction(ctx, domain.NewTransaction(userID, domain.CurrencyHearts, grant, p.Hearts, now)); err != nil {
				return err
			}
		case domain.GiftFlamingBadge:
			b := domain.NewFlamingBadge(userID, now)
			if err := tx.SaveBadge(ctx, b); err != nil {
				return err
			}
			res.BadgeExpiresAt = &b.ExpiresAt
		}
		if err := tx.SaveProfile(ctx, p); err != nil {
			return err
		}

		g.IsClaimed = true
		g.ClaimedAt = &now
		if err := tx.SaveGift(ctx, g); err != nil {
			return err
		}

		j, err := tx.LockJar(ctx, userID)
		if err != nil {
			return err
		}
		j.Reset(now)
		if err := tx.SaveJar(ctx, j); err != nil {
			return err
		}

		res.Hearts, res.Gems = p.Hearts, p.Gems
		gift, jar = *g, *j
		return nil
	})
	if err != nil {
		return res, err
	}
	uc.publish(ctx,
		domain.Event{Kind: domain.EventGiftClaimed, UserID: userID.String(), Gift: &gift, At: uc.now()},
		uc.jarEvent(userID, &jar),
	)
	return res, nil
}

// GetJarProgress returns an empty jar for users that never earned pollen.
func (uc *EconomyUseCase) GetJarProgress(ctx context.Context, userID uuid.UUID) (*domain.JarProgress, error) {
	j, err := uc.repo.GetJar(ctx, userID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return &domain.JarProgress{UserID: userID}, nil
	}
	return j, nil
}

func (uc *EconomyUseCase) GetUnclaimedGift(ctx context.Context, userID uuid.UUID) (*domain.MysteryGift, error) {
	return uc.repo.GetUnclaimedGift(ctx, userID)
}

// GetActiveFlamingBadge treats an expired badge the same as no badge.
func (uc *EconomyUseCase) GetActiveFlamingBadge(ctx context.Context, userID uuid.UUID) (*domain.FlamingBadge, error) {
	b, err := uc.repo.GetBadge(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !b.ActiveAt(uc.now()) {
		return nil, nil
	}
	return b, nil
}

func (uc *EconomyUseCase) jarEvent(userID uuid.UUID, j *domain.JarProgress) domain.Event {
	return domain.Event{Kind: domain.EventJarProgressChanged, UserID: userID.String(), Jar: j, At: uc.now()}
}
