package domain

import "time"

// BalanceUpdate is a raw, non-atomic overwrite of profile fields. Nil fields are left alone.
type BalanceUpdate struct {
	Hearts            *int
	XP                *int
	Gems              *int
	LastHeartRefillAt *time.Time
}

// Apply writes the update onto p, keeping hearts within [0, MaxHearts].
func (u BalanceUpdate) Apply(p *Profile) {
	if u.Hearts != nil {
		p.Hearts = ClampHearts(*u.Hearts, p.MaxHearts)
	}
	if u.XP != nil {
		p.XP = *u.XP
	}
	if u.Gems != nil {
		p.Gems = *u.Gems
	}
	if u.LastHeartRefillAt != nil {
		p.LastHeartRefillAt = *u.LastHeartRefillAt
	}
}
