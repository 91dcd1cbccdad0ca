package domain

import (
	"time"

	"github.com/google/uuid"
)

type GiftType string

const (
	GiftPollen       GiftType = "pollen"
	GiftHoneyDrops   GiftType = "honey_drops"
	GiftFlamingBadge GiftType = "flaming_badge"
)

// MysteryGift is created once per jar fill cycle; the (user_id, cycle) pair is unique.
type MysteryGift struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_gift_user_cycle;index"`
	Cycle      int       `gorm:"uniqueIndex:idx_gift_user_cycle"`
	GiftType   GiftType  `gorm:"type:varchar(32)"`
	GiftAmount int
	IsClaimed  bool `gorm:"default:false;index"`
	ClaimedAt  *time.Time
	CreatedAt  time.Time
}

// Dice returns a uniform int in [0, n).
type Dice func(n int) int

// RollGift picks a gift: pollen 50% (10-50 gems), honey drops 35% (1-3 hearts),
// flaming badge 15%. Badge amount is always zero.
func RollGift(dice Dice) (GiftType, int) {
	switch r := dice(100); {
	case r < 50:
		return GiftPollen, 10 + dice(41)
	case r < 85:
		return GiftHoneyDrops, 1 + dice(3)
	default:
		return GiftFlamingBadge, 0
	}
}
