package usecase

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"
)

type EconomyUseCase struct {
	repo   EconomyRepository
	events EventPublisher
	ranker XPRanker
	now    Clock
	dice   domain.Dice
}

type Option func(*EconomyUseCase)

func WithClock(c Clock) Option {
	return func(uc *EconomyUseCase) { uc.now = c }
}

func WithDice(d domain.Dice) Option {
	return func(uc *EconomyUseCase) { uc.dice = d }
}

// NewEconomyUseCase wires the economy. events and ranker may be nil.
func NewEconomyUseCase(repo EconomyRepository, events EventPublisher, ranker XPRanker, opts ...Option) *EconomyUseCase {
	uc := &EconomyUseCase{
		repo:   repo,
		events: events,
		ranker: ranker,
		now:    time.Now,
		dice:   rand.Intn,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type AwardResult struct {
	NewBalance    int
	TransactionID uuid.UUID
}

type ConvertResult struct {
	NewGems   int
	NewHearts int
}

func (uc *EconomyUseCase) CreateProfile(ctx context.Context, userID uuid.UUID, username string) (*domain.Profile, error) {
	return uc.repo.CreateProfile(ctx, domain.NewProfile(userID, username, uc.now()))
}

func (uc *EconomyUseCase) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return uc.repo.GetProfile(ctx, userID)
}

// UpdateBalances is the raw write used by client fallbacks. It is not atomic
// with respect to concurrent awards.
func (uc *EconomyUseCase) UpdateBalances(ctx context.Context, userID uuid.UUID, u domain.BalanceUpdate) (*domain.Profile, error) {
	p, err := uc.repo.UpdateBalances(ctx, userID, u)
	if err != nil {
		return nil, err
	}
	if u.XP != nil {
		uc.recordXP(ctx, p)
	}
	return p, nil
}

func (uc *EconomyUseCase) CheckAndRefillHearts(ctx context.Context, userID uuid.UUID) (domain.RefillResult, error) {
	var res domain.RefillResult
	err := uc.repo.WithinTx(ctx, func(tx EconomyTx) error {
		p, err := tx.LockProfile(ctx, userID)
		if err != nil {
			return err
		}
		res = p.RefillIfDue(uc.now())
		if !res.Refilled {
			return nil
		}
		return tx.SaveProfile(ctx, p)
	})
	return res, err
}

func (uc *EconomyUseCase) DeductHearts(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	var hearts int
	err := uc.repo.WithinTx(ctx, func(tx EconomyTx) error {
		p, err := tx.LockProfile(ctx, userID)
		if err != nil {
			return err
		}
		now := uc.now()
		hearts = p.DeductHearts(amount, now)
		if err := tx.SaveProfile(ctx, p); err != nil {
			return err
		}
		g := domain.Grant{Amount: -amount, Source: domain.SourceWrongAnswer}
		return tx.AddTransaction(ctx, domain.NewTransaction(userID, domain.CurrencyHearts, g, hearts, now))
	})
	return hearts, err
}

func (uc *EconomyUseCase) AwardHearts(ctx context.Context, userID uuid.UUID, g domain.Grant) (int, error) {
	if g.Amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	var hearts int
	err := uc.repo.WithinTx(ctx, func(tx EconomyTx) error {
		p, err := tx.LockProfile(ctx, userID)
		if err != nil {
			return err
		}
		hearts = p.AwardHearts(g.Amount)
		if err := tx.SaveProfile(ctx, p); err != nil {
			return err
		}
		return tx.AddTransaction(ctx, domain.NewTransaction(userID, domain.CurrencyHearts, g, hearts, uc.now()))
	})
	return hearts, err
}

func (uc *EconomyUseCase) AwardXP(ctx context.Context, userID uuid.UUID, g domain.Grant) (AwardResult, error) {
	res, p, err := uc.award(ctx, userID, domain.CurrencyXP, g, func(p *domain.Profile) int {
		p.XP += g.Amount
		return p.XP
	})
	if err == nil {
		uc.recordXP(ctx, p)
	}
	return res, err
}

func (uc *EconomyUseCase) AwardGems(ctx context.Context, userID uuid.UUID, g domain.Grant) (AwardResult, error) {
	res, _, err := uc.award(ctx, userID, domain.CurrencyGems, g, func(p *domain.Profile) int {
		p.Gems += g.Amount
		return p.Gems
	})
	return res, err
}

func (uc *EconomyUseCase) award(ctx context.Context, userID uuid.UUID, cur domain.Currency, g domain.Grant, apply func(*domain.Profile) int) (AwardResult, *domain.Profile, error) {
	if g.Amount <= 0 {
		return AwardResult{}, nil, domain.ErrInvalidAmount
	}
	var (
		res     AwardResult
		updated *domain.Profile
	)
	err := uc.repo.WithinTx(ctx, func(tx EconomyTx) error {
		p, err := tx.LockProfile(ctx, userID)
		if err != nil {
			return err
		}
		balance := apply(p)
		if err := tx.SaveProfile(ctx, p); err != nil {
			return err
		}
		t := domain.NewTransaction(userID, cur, g, balance, uc.now())
		if err := tx.AddTransaction(ctx, t); err != nil {
			return err
		}
		res = AwardResult{NewBalance: balance, TransactionID: t.ID}
		updated = p
		return nil
	})
	return res, updated, err
}

// ConvertGemsToHearts spends GemsPerHeart gems per heart. gemCost of 0 means
// "use the rate"; any other value must agree with it.
func (uc *EconomyUseCase) ConvertGemsToHearts(ctx context.Context, userID uuid.UUID, hearts, gemCost int) (ConvertResult, error) {
	if hearts <= 0 {
		return ConvertResult{}, domain.ErrInvalidAmount
	}
	cost := hearts * domain.GemsPerHeart
	if gemCost != 0 && gemCost != cost {
		return ConvertResult{}, domain.ErrGemCostMismatch
	}

	var res ConvertResult
	err := uc.repo.WithinTx(ctx, func(tx EconomyTx) error {
		p, err := tx.LockProfile(ctx, userID)
		if err != nil {
			return err
		}
		if p.Gems < cost {
			return domain.ErrInsufficientGems
		}
		now := uc.now()
		p.Gems -= cost
		p.AwardHearts(hearts)
		if err := tx.SaveProfile(ctx, p); err != nil {
			return err
		}
		spend := domain.Grant{Amount: -cost, Source: domain.SourceGemConversion}
		if err := tx.AddTransaction(ctx, domain.NewTransaction(userID, domain.CurrencyGems, spend, p.Gems, now)); err != nil {
			return err
		}
		gain := domain.Grant{Amount: hearts, Source: domain.SourceGemConversion}
		if err := tx.AddTransaction(ctx, domain.NewTransaction(userID, domain.CurrencyHearts, gain, p.Hearts, now)); err != nil {
			return err
		}
		res = ConvertResult{NewGems: p.Gems, NewHearts: p.Hearts}
		return nil
	})
	return res, err
}

// Leaderboard reads the redis ranking. The database answers instead when the
// ranker is missing, failing or holds fewer users than asked for, and the
// ranker is refilled from that answer.
func (uc *EconomyUseCase) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	refill := false
	if uc.ranker != nil {
		entries, err := uc.rankedFromCache(ctx, limit)
		if err == nil && len(entries) == limit {
			return entries, nil
		}
		if err != nil {
			log.Printf("leaderboard cache unavailable, reading database: %v", err)
		}
		refill = err == nil
	}

	profiles, err := uc.repo.TopByXP(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		if refill {
			uc.recordXP(ctx, &profiles[i])
		}
		entries = append(entries, domain.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   p.ID.String(),
			Username: p.Username,
			XP:       p.XP,
			Shield:   domain.ShieldFor(p.XP),
		})
	}
	return entries, nil
}

// rankedFromCache returns the cached ranking of users that still have a
// profile. Members without one are dropped from the ranker.
func (uc *EconomyUseCase) rankedFromCache(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	ranked, err := uc.ranker.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(ranked))
	for _, r := range ranked {
		if id, err := uuid.Parse(r.UserID); err == nil {
			ids = append(ids, id)
		}
	}
	profiles, err := uc.repo.GetProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.ID.String()] = p.Username
	}

	entries := make([]domain.LeaderboardEntry, 0, len(ranked))
	for _, r := range ranked {
		name, ok := names[r.UserID]
		if !ok {
			if err := uc.ranker.Forget(ctx, r.UserID); err != nil {
				log.Printf("Error dropping %s from leaderboard: %v", r.UserID, err)
			}
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			Rank:     len(entries) + 1,
			UserID:   r.UserID,
			Username: name,
			XP:       r.XP,
			Shield:   domain.ShieldFor(r.XP),
		})
	}
	return entries, nil
}

func (uc *EconomyUseCase) recordXP(ctx context.Context, p *domain.Profile) {
	if uc.ranker == nil || p == nil {
		return
	}
	if err := uc.ranker.RecordXP(ctx, p.ID.String(), p.XP); err != nil {
		log.Printf("Error updating leaderboard for %s: %v", p.ID, err)
	}
}

func (uc *EconomyUseCase) publish(ctx context.Context, evs ...domain.Event) {
	if uc.events == nil {
		return
	}
	for _, ev := range evs {
		if err := uc.events.Publish(ctx, ev); err != nil {
			log.Printf("Error publishing %s for %s: %v", ev.Kind, ev.UserID, err)
		}
	}
}
