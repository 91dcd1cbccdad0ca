package domain

import (
	"time"

	"github.com/google/uuid"
)

const FlamingBadgeDuration = 24 * time.Hour

// FlamingBadge is one row per user; a new grant overwrites the expiry.
type FlamingBadge struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	GrantedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

func NewFlamingBadge(userID uuid.UUID, now time.Time) *FlamingBadge {
	return &FlamingBadge{UserID: userID, GrantedAt: now, ExpiresAt: now.Add(FlamingBadgeDuration)}
}

func (b *FlamingBadge) ActiveAt(now time.Time) bool {
	return b != nil && now.Before(b.ExpiresAt)
}
