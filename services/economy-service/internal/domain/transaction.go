package domain

import (
	"time"

	"github.com/google/uuid"
)

type Currency string

const (
	CurrencyXP     Currency = "xp"
	CurrencyGems   Currency = "gems"
	CurrencyHearts Currency = "hearts"
)

// Sources used by the service itself. Callers may pass any other string.
const (
	SourceMysteryGift    = "mystery_gift"
	SourceGemConversion  = "gem_conversion"
	SourceWrongAnswer    = "wrong_answer"
	SourceManualFallback = "fallback"
)

// GemsPerHeart is the fixed shop conversion rate.
const GemsPerHeart = 10

// RewardTransaction is the ledger row written by every atomic award or deduction.
type RewardTransaction struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;index"`
	Currency     Currency  `gorm:"type:varchar(16);index"`
	Amount       int
	BalanceAfter int
	Source       string
	ChapterID    *string
	CourseID     *string
	Metadata     map[string]any `gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time
}

// Grant describes the optional context of an award.
type Grant struct {
	Amount    int
	Source    string
	ChapterID *string
	CourseID  *string
	Metadata  map[string]any
}

func NewTransaction(userID uuid.UUID, currency Currency, g Grant, balanceAfter int, now time.Time) *RewardTransaction {
	return &RewardTransaction{
		ID:           uuid.New(),
		UserID:       userID,
		Currency:     currency,
		Amount:       g.Amount,
		BalanceAfter: balanceAfter,
		Source:       g.Source,
		ChapterID:    g.ChapterID,
		CourseID:     g.CourseID,
		Metadata:     g.Metadata,
		CreatedAt:    now,
	}
}
