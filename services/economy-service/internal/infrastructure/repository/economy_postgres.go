package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/waste3d/honeyhive/services/economy-service/internal/application/usecase"
	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ usecase.EconomyRepository = (*EconomyRepository)(nil)

type EconomyRepository struct {
	db *gorm.DB
}

func NewEconomyRepository(db *gorm.DB) *EconomyRepository {
	return &EconomyRepository{db: db}
}

// Models lists every table the economy owns, for AutoMigrate.
func Models() []any {
	return []any{
		&domain.Profile{},
		&domain.JarProgress{},
		&domain.MysteryGift{},
		&domain.FlamingBadge{},
		&domain.RewardTransaction{},
	}
}

// CreateProfile does nothing if the profile already exists.
func (r *EconomyRepository) CreateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	out := *p
	err := r.db.WithContext(ctx).
		Where(domain.Profile{ID: p.ID}).
		Attrs(out).
		FirstOrCreate(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *EconomyRepository) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *EconomyRepository) GetProfiles(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error) {
	var profiles []domain.Profile
	if len(ids) == 0 {
		return profiles, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error
	return profiles, err
}

// UpdateBalances reads then writes without a lock. Concurrent atomic calls may
// be overwritten; only client fallbacks use it.
func (r *EconomyRepository) UpdateBalances(ctx context.Context, id uuid.UUID, u domain.BalanceUpdate) (*domain.Profile, error) {
	// 1. Сначала получаем текущее состояние профиля
	p, err := r.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	// 2. Применяем только переданные поля
	u.Apply(p)

	// 3. Пишем балансы одной командой
	err = r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"hearts":               p.Hearts,
			"xp":                   p.XP,
			"gems":                 p.Gems,
			"last_heart_refill_at": p.LastHeartRefillAt,
		}).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *EconomyRepository) GetJar(ctx context.Context, id uuid.UUID) (*domain.JarProgress, error) {
	var j domain.JarProgress
	err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&j).Error
	// Банки еще нет? Значит пыльцы ноль
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *EconomyRepository) GetUnclaimedGift(ctx context.Context, id uuid.UUID) (*domain.MysteryGift, error) {
	var g domain.MysteryGift
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_claimed = ?", id, false).
		Order("created_at desc").
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *EconomyRepository) GetBadge(ctx context.Context, id uuid.UUID) (*domain.FlamingBadge, error) {
	var b domain.FlamingBadge
	err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *EconomyRepository) TopByXP(ctx context.Context, limit int) ([]domain.Profile, error) {
	var profiles []domain.Profile
	err := r.db.WithContext(ctx).
		Order("xp desc").
		Order("created_at asc"). // при равном XP выше тот, кто раньше начал
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

func (r *EconomyRepository) WithinTx(ctx context.Context, fn func(tx usecase.EconomyTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) forUpdate(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func (t *gormTx) LockProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	err := t.forUpdate(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *gormTx) SaveProfile(ctx context.Context, p *domain.Profile) error {
	return t.db.WithContext(ctx).Save(p).Error
}

// LockJar inserts an empty row first so that two first-time writers serialise
// on the same lock.
func (t *gormTx) LockJar(ctx context.Context, id uuid.UUID) (*domain.JarProgress, error) {
	empty := domain.JarProgress{UserID: id}
	if err := t.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&empty).Error; err != nil {
		return nil, err
	}
	var j domain.JarProgress
	if err := t.forUpdate(ctx).Where("user_id = ?", id).First(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (t *gormTx) SaveJar(ctx context.Context, j *domain.JarProgress) error {
	return t.db.WithContext(ctx).Save(j).Error
}

func (t *gormTx) GiftForCycle(ctx context.Context, id uuid.UUID, cycle int) (*domain.MysteryGift, error) {
	var g domain.MysteryGift
	err := t.db.WithContext(ctx).Where("user_id = ? AND cycle = ?", id, cycle).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (t *gormTx) CreateGift(ctx context.Context, g *domain.MysteryGift) error {
	return t.db.WithContext(ctx).Create(g).Error
}

func (t *gormTx) LockGift(ctx context.Context, giftID uuid.UUID) (*domain.MysteryGift, error) {
	var g domain.MysteryGift
	err := t.forUpdate(ctx).Where("id = ?", giftID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrGiftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (t *gormTx) SaveGift(ctx context.Context, g *domain.MysteryGift) error {
	return t.db.WithContext(ctx).Save(g).Error
}

func (t *gormTx) SaveBadge(ctx context.Context, b *domain.FlamingBadge) error {
	return t.db.WithContext(ctx).Save(b).Error
}

func (t *gormTx) AddTransaction(ctx context.Context, rt *domain.RewardTransaction) error {
	return t.db.WithContext(ctx).Create(rt).Error
}
