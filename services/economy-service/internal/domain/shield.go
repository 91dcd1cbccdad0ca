package domain

type ShieldTier string

const (
	ShieldSilver   ShieldTier = "Silver"
	ShieldGold     ShieldTier = "Gold"
	ShieldPlatinum ShieldTier = "Platinum"
	ShieldDiamond  ShieldTier = "Diamond"
)

// ShieldFor derives the cosmetic rank from XP alone.
func ShieldFor(xp int) ShieldTier {
	switch {
	case xp >= 15000:
		return ShieldDiamond
	case xp >= 5000:
		return ShieldPlatinum
	case xp >= 1000:
		return ShieldGold
	default:
		return ShieldSilver
	}
}

// LeaderboardEntry is a ranked row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank     int
	UserID   string
	Username string
	XP       int
	Shield   ShieldTier
}
