package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/waste3d/honeyhive/services/economy-service/internal/application/usecase"
	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"
)

var _ usecase.EconomyRepository = (*MemoryRepository)(nil)

// MemoryRepository keeps the economy in process. One transaction runs at a
// time and its writes become visible only when fn returns nil.
type MemoryRepository struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]domain.Profile
	jars     map[uuid.UUID]domain.JarProgress
	gifts    map[uuid.UUID]domain.MysteryGift
	badges   map[uuid.UUID]domain.FlamingBadge
	txs      []domain.RewardTransaction
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		profiles: make(map[uuid.UUID]domain.Profile),
		jars:     make(map[uuid.UUID]domain.JarProgress),
		gifts:    make(map[uuid.UUID]domain.MysteryGift),
		badges:   make(map[uuid.UUID]domain.FlamingBadge),
	}
}

func (r *MemoryRepository) CreateProfile(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[p.ID]; ok {
		return &existing, nil
	}
	r.profiles[p.ID] = *p
	out := *p
	return &out, nil
}

func (r *MemoryRepository) GetProfile(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) GetProfiles(_ context.Context, ids []uuid.UUID) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Profile
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryRepository) UpdateBalances(_ context.Context, id uuid.UUID, u domain.BalanceUpdate) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	u.Apply(&p)
	r.profiles[id] = p
	return &p, nil
}

func (r *MemoryRepository) GetJar(_ context.Context, id uuid.UUID) (*domain.JarProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jars[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (r *MemoryRepository) GetUnclaimedGift(_ context.Context, id uuid.UUID) (*domain.MysteryGift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.MysteryGift
	for _, g := range r.gifts {
		if g.UserID != id || g.IsClaimed {
			continue
		}
		if latest == nil || g.CreatedAt.After(latest.CreatedAt) {
			g := g
			latest = &g
		}
	}
	return latest, nil
}

func (r *MemoryRepository) GetBadge(_ context.Context, id uuid.UUID) (*domain.FlamingBadge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.badges[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *MemoryRepository) TopByXP(_ context.Context, limit int) ([]domain.Profile, error) {
	r.mu.Lock()
	all := make([]domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		all = append(all, p)
	}
	r.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].XP != all[j].XP {
			return all[i].XP > all[j].XP
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Transactions returns the ledger rows of one user in insertion order.
func (r *MemoryRepository) Transactions(id uuid.UUID) []domain.RewardTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RewardTransaction
	for _, t := range r.txs {
		if t.UserID == id {
			out = append(out, t)
		}
	}
	return out
}

func (r *MemoryRepository) WithinTx(ctx context.Context, fn func(tx usecase.EconomyTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memoryTx{
		r:        r,
		profiles: make(map[uuid.UUID]domain.Profile),
		jars:     make(map[uuid.UUID]domain.JarProgress),
		gifts:    make(map[uuid.UUID]domain.MysteryGift),
		badges:   make(map[uuid.UUID]domain.FlamingBadge),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for id, p := range tx.profiles {
		r.profiles[id] = p
	}
	for id, j := range tx.jars {
		r.jars[id] = j
	}
	for id, g := range tx.gifts {
		r.gifts[id] = g
	}
	for id, b := range tx.badges {
		r.badges[id] = b
	}
	r.txs = append(r.txs, tx.txs...)
	return nil
}

// memoryTx stages writes over the committed maps.
type memoryTx struct {
	r        *MemoryRepository
	profiles map[uuid.UUID]domain.Profile
	jars     map[uuid.UUID]domain.JarProgress
	gifts    map[uuid.UUID]domain.MysteryGift
	badges   map[uuid.UUID]domain.FlamingBadge
	txs      []domain.RewardTransaction
}

func (t *memoryTx) LockProfile(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	if p, ok := t.profiles[id]; ok {
		return &p, nil
	}
	p, ok := t.r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (t *memoryTx) SaveProfile(_ context.Context, p *domain.Profile) error {
	t.profiles[p.ID] = *p
	return nil
}

func (t *memoryTx) LockJar(_ context.Context, id uuid.UUID) (*domain.JarProgress, error) {
	if j, ok := t.jars[id]; ok {
		return &j, nil
	}
	if j, ok := t.r.jars[id]; ok {
		return &j, nil
	}
	return &domain.JarProgress{UserID: id}, nil
}

func (t *memoryTx) SaveJar(_ context.Context, j *domain.JarProgress) error {
	t.jars[j.UserID] = *j
	return nil
}

func (t *memoryTx) GiftForCycle(_ context.Context, id uuid.UUID, cycle int) (*domain.MysteryGift, error) {
	for _, src := range []map[uuid.UUID]domain.MysteryGift{t.gifts, t.r.gifts} {
		for _, g := range src {
			if g.UserID == id && g.Cycle == cycle {
				g := g
				return &g, nil
			}
		}
	}
	return nil, nil
}

func (t *memoryTx) CreateGift(ctx context.Context, g *domain.MysteryGift) error {
	return t.SaveGift(ctx, g)
}

func (t *memoryTx) LockGift(_ context.Context, giftID uuid.UUID) (*domain.MysteryGift, error) {
	if g, ok := t.gifts[giftID]; ok {
		return &g, nil
	}
	g, ok := t.r.gifts[giftID]
	if !ok {
		return nil, domain.ErrGiftNotFound
	}
	return &g, nil
}

func (t *memoryTx) SaveGift(_ context.Context, g *domain.MysteryGift) error {
	t.gifts[g.ID] = *g
	return nil
}

func (t *memoryTx) SaveBadge(_ context.Context, b *domain.FlamingBadge) error {
	t.badges[b.UserID] = *b
	return nil
}

func (t *memoryTx) AddTransaction(_ context.Context, rt *domain.RewardTransaction) error {
	t.txs = append(t.txs, *rt)
	return nil
}
