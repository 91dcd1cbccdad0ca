package economypb

import "time"

type Profile struct {
	UserId            string    `json:"user_id"`
	Username          string    `json:"username"`
	Hearts            int32     `json:"hearts"`
	MaxHearts         int32     `json:"max_hearts"`
	Xp                int32     `json:"xp"`
	Gems              int32     `json:"gems"`
	LastHeartRefillAt time.Time `json:"last_heart_refill_at"`
	IsPremium         bool      `json:"is_premium"`
}

type UserRequest struct {
	UserId string `json:"user_id"`
}

type CreateProfileRequest struct {
	UserId   string `json:"user_id"`
	Username string `json:"username"`
}

type ProfileResponse struct {
	Profile *Profile `json:"profile"`
}

func (r *ProfileResponse) GetProfile() *Profile {
	if r == nil {
		return nil
	}
	return r.Profile
}

type RefillResponse struct {
	Hearts                int32     `json:"hearts"`
	MaxHearts             int32     `json:"max_hearts"`
	LastRefillAt          time.Time `json:"last_refill_at"`
	TimeUntilNextRefillMs int64     `json:"time_until_next_refill_ms"`
	Refilled              bool      `json:"refilled"`
}

type DeductHeartsRequest struct {
	UserId string `json:"user_id"`
	Amount int32  `json:"amount"`
}

type HeartsResponse struct {
	Hearts int32 `json:"hearts"`
}

// AwardRequest carries AwardHearts, AwardXP and AwardGems.
type AwardRequest struct {
	UserId    string         `json:"user_id"`
	Amount    int32          `json:"amount"`
	Source    string         `json:"source,omitempty"`
	ChapterId string         `json:"chapter_id,omitempty"`
	CourseId  string         `json:"course_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type AwardResponse struct {
	NewBalance    int32  `json:"new_balance"`
	TransactionId string `json:"transaction_id"`
}

type UpdateBalancesRequest struct {
	UserId            string     `json:"user_id"`
	Hearts            *int32     `json:"hearts,omitempty"`
	Xp                *int32     `json:"xp,omitempty"`
	Gems              *int32     `json:"gems,omitempty"`
	LastHeartRefillAt *time.Time `json:"last_heart_refill_at,omitempty"`
}

type ConvertGemsRequest struct {
	UserId       string `json:"user_id"`
	HeartsAmount int32  `json:"hearts_amount"`
	GemCost      int32  `json:"gem_cost"`
}

type ConvertGemsResponse struct {
	NewGems   int32 `json:"new_gems"`
	NewHearts int32 `json:"new_hearts"`
}

type JarProgress struct {
	UserId        string    `json:"user_id"`
	FillPercent   int32     `json:"fill_percent"`
	PollenInCycle int32     `json:"pollen_in_cycle"`
	IsFull        bool      `json:"is_full"`
	Cycle         int32     `json:"cycle"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type JarResponse struct {
	Jar *JarProgress `json:"jar"`
}

func (r *JarResponse) GetJar() *JarProgress {
	if r == nil {
		return nil
	}
	return r.Jar
}

type AddPollenRequest struct {
	UserId       string `json:"user_id"`
	PollenEarned int32  `json:"pollen_earned"`
}

type AddPollenResponse struct {
	FillPercent   int32 `json:"fill_percent"`
	IsFull        bool  `json:"is_full"`
	BecameFull    bool  `json:"became_full"`
	PollenInCycle int32 `json:"pollen_in_cycle"`
}

type MysteryGift struct {
	Id             string     `json:"id"`
	UserId         string     `json:"user_id"`
	GiftType       string     `json:"gift_type"`
	GiftAmount     int32      `json:"gift_amount"`
	IsClaimed      bool       `json:"is_claimed"`
	CreatedAt      time.Time  `json:"created_at"`
	ClaimedAt      *time.Time `json:"claimed_at,omitempty"`
	BadgeExpiresAt *time.Time `json:"badge_expires_at,omitempty"`
}

// GiftResponse holds no gift when the user has none pending.
type GiftResponse struct {
	Gift *MysteryGift `json:"gift,omitempty"`
}

func (r *GiftResponse) GetGift() *MysteryGift {
	if r == nil {
		return nil
	}
	return r.Gift
}

type ClaimGiftRequest struct {
	UserId string `json:"user_id"`
	GiftId string `json:"gift_id"`
}

type ClaimGiftResponse struct {
	GiftType       string     `json:"gift_type"`
	GiftAmount     int32      `json:"gift_amount"`
	Hearts         int32      `json:"hearts"`
	Gems           int32      `json:"gems"`
	BadgeExpiresAt *time.Time `json:"badge_expires_at,omitempty"`
}

type FlamingBadge struct {
	UserId    string    `json:"user_id"`
	GrantedAt time.Time `json:"granted_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type BadgeResponse struct {
	Badge *FlamingBadge `json:"badge,omitempty"`
}

func (r *BadgeResponse) GetBadge() *FlamingBadge {
	if r == nil {
		return nil
	}
	return r.Badge
}

type LeaderboardRequest struct {
	Limit int32 `json:"limit"`
}

type LeaderboardEntry struct {
	Rank     int32  `json:"rank"`
	UserId   string `json:"user_id"`
	Username string `json:"username"`
	Xp       int32  `json:"xp"`
	Shield   string `json:"shield"`
}

type LeaderboardResponse struct {
	Entries []*LeaderboardEntry `json:"entries"`
}

// WatchRequest subscribes to a user's events. Empty Kinds means all kinds.
type WatchRequest struct {
	UserId string   `json:"user_id"`
	Kinds  []string `json:"kinds,omitempty"`
}

const (
	KindJarProgressChanged = "jar_progress_changed"
	KindGiftCreated        = "gift_created"
	KindGiftClaimed        = "gift_claimed"
)

type Event struct {
	Kind   string       `json:"kind"`
	UserId string       `json:"user_id"`
	Jar    *JarProgress `json:"jar,omitempty"`
	Gift   *MysteryGift `json:"gift,omitempty"`
	At     time.Time    `json:"at"`
}
