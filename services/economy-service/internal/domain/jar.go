package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	PollenPerPercent = 3
	JarCapacity      = 100
)

// JarProgress tracks the honey jar for one user. Cycle counts completed fills
// and advances on every gift claim.
type JarProgress struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FillPercent   int       `gorm:"default:0"`
	PollenInCycle int       `gorm:"default:0"`
	IsFull        bool      `gorm:"default:false"`
	Cycle         int       `gorm:"default:0"`
	UpdatedAt     time.Time
}

func (JarProgress) TableName() string {
	return "honey_jar_progress"
}

type PollenResult struct {
	FillPercent   int
	IsFull        bool
	BecameFull    bool
	PollenInCycle int
}

func FillPercentFor(pollen int) int {
	pct := pollen / PollenPerPercent
	if pct > JarCapacity {
		return JarCapacity
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// AddPollen keeps counting pollen past a full jar but fill stays at 100.
func (j *JarProgress) AddPollen(pollen int, now time.Time) PollenResult {
	wasFull := j.IsFull
	j.PollenInCycle += pollen
	j.FillPercent = FillPercentFor(j.PollenInCycle)
	j.IsFull = j.FillPercent >= JarCapacity
	j.UpdatedAt = now
	return PollenResult{
		FillPercent:   j.FillPercent,
		IsFull:        j.IsFull,
		BecameFull:    j.IsFull && !wasFull,
		PollenInCycle: j.PollenInCycle,
	}
}

func (j *JarProgress) Reset(now time.Time) {
	j.FillPercent = 0
	j.PollenInCycle = 0
	j.IsFull = false
	j.Cycle++
	j.UpdatedAt = now
}
