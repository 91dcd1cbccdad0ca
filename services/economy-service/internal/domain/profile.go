package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultMaxHearts    = 5
	HeartRefillInterval = 2 * time.Hour
)

type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string

	Hearts            int `gorm:"default:5"`
	MaxHearts         int `gorm:"default:5"`
	XP                int `gorm:"default:0;index"`
	Gems              int `gorm:"default:0"`
	LastHeartRefillAt time.Time
	IsPremium         bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProfile(id uuid.UUID, username string, now time.Time) *Profile {
	return &Profile{
		ID:                id,
		Username:          username,
		Hearts:            DefaultMaxHearts,
		MaxHearts:         DefaultMaxHearts,
		LastHeartRefillAt: now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// RefillResult is what a refill check reports back to the caller.
type RefillResult struct {
	Hearts          int
	MaxHearts       int
	LastRefillAt    time.Time
	TimeUntilRefill time.Duration
	Refilled        bool
}

// RefillIfDue tops hearts up to MaxHearts when they are below max and at least
// HeartRefillInterval has passed since the last refill. It never lowers hearts.
func (p *Profile) RefillIfDue(now time.Time) RefillResult {
	refilled := false
	if p.Hearts < p.MaxHearts && now.Sub(p.LastHeartRefillAt) >= HeartRefillInterval {
		p.Hearts = p.MaxHearts
		p.LastHeartRefillAt = now
		refilled = true
	}
	return RefillResult{
		Hearts:          p.Hearts,
		MaxHearts:       p.MaxHearts,
		LastRefillAt:    p.LastHeartRefillAt,
		TimeUntilRefill: p.TimeUntilRefill(now),
		Refilled:        refilled,
	}
}

// TimeUntilRefill is zero once hearts are at max or the interval has run out.
func (p *Profile) TimeUntilRefill(now time.Time) time.Duration {
	if p.Hearts >= p.MaxHearts {
		return 0
	}
	left := p.LastHeartRefillAt.Add(HeartRefillInterval).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// DeductHearts floors at zero. Reaching zero restarts the refill clock.
func (p *Profile) DeductHearts(amount int, now time.Time) int {
	p.Hearts = ClampHearts(p.Hearts-amount, p.MaxHearts)
	if p.Hearts == 0 {
		p.LastHeartRefillAt = now
	}
	return p.Hearts
}

func (p *Profile) AwardHearts(amount int) int {
	p.Hearts = ClampHearts(p.Hearts+amount, p.MaxHearts)
	return p.Hearts
}

func ClampHearts(hearts, maxHearts int) int {
	if hearts < 0 {
		return 0
	}
	if hearts > maxHearts {
		return maxHearts
	}
	return hearts
}
