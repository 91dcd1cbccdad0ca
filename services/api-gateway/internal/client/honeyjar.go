package client

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
	"golang.org/x/sync/singleflight"
)

var ErrClaimInProgress = errors.New("a gift claim is already in progress")

type JarState int

const (
	JarFilling JarState = iota
	JarFull
	JarGiftPending
)

func (s JarState) String() string {
	switch s {
	case JarFull:
		return "FULL"
	case JarGiftPending:
		return "GIFT_PENDING"
	default:
		return "FILLING"
	}
}

type JarProgress struct {
	FillPercent   int
	PollenInCycle int
	IsFull        bool
}

type PollenResult struct {
	JarProgress
	BecameFull bool
}

type Gift struct {
	ID             string
	Type           string
	Amount         int
	BadgeExpiresAt *time.Time
}

type Badge struct {
	GrantedAt time.Time
	ExpiresAt time.Time
}

type ClaimResult struct {
	GiftType       string
	GiftAmount     int
	Hearts         int
	Gems           int
	BadgeExpiresAt *time.Time
}

func jarFromPB(j *economypb.JarProgress) JarProgress {
	if j == nil {
		return JarProgress{}
	}
	return JarProgress{FillPercent: int(j.FillPercent), PollenInCycle: int(j.PollenInCycle), IsFull: j.IsFull}
}

func giftFromPB(g *economypb.MysteryGift) *Gift {
	if g == nil {
		return nil
	}
	return &Gift{ID: g.Id, Type: g.GiftType, Amount: int(g.GiftAmount), BadgeExpiresAt: g.BadgeExpiresAt}
}

type jarView struct {
	jar      JarProgress
	gift     *Gift
	claiming bool
	seen     time.Time
}

// JarTracker follows the honey jar of any number of users. Reads never fail:
// when the economy cannot be reached they report an empty jar, no gift and no
// badge. A full jar gets exactly one GenerateMysteryGift call per user at a
// time; the economy itself keeps one gift per fill cycle, so the locally
// cached gift is only ever shown, never trusted to still be unclaimed.
type JarTracker struct {
	api economypb.EconomyServiceClient
	settings

	mu        sync.Mutex
	views     map[string]*jarView
	lastSweep time.Time
	gen       singleflight.Group
}

func NewJarTracker(api economypb.EconomyServiceClient, opts ...Option) *JarTracker {
	return &JarTracker{api: api, settings: newSettings(opts), views: make(map[string]*jarView)}
}

// view must be called with mu held. Views untouched for longer than the view
// TTL are dropped on the way.
func (t *JarTracker) view(userID string) *jarView {
	now := t.now()
	if now.Sub(t.lastSweep) >= t.viewTTL {
		t.lastSweep = now
		for id, v := range t.views {
			if !v.claiming && now.Sub(v.seen) >= t.viewTTL {
				delete(t.views, id)
			}
		}
	}

	v, ok := t.views[userID]
	if !ok {
		v = &jarView{}
		t.views[userID] = v
	}
	v.seen = now
	return v
}

// State is the last known position of the user's jar in the
// FILLING -> FULL -> GIFT_PENDING cycle.
func (t *JarTracker) State(userID string) JarState {
	t.mu.Lock()
	defer t.mu.Unlock()
	v := t.view(userID)
	switch {
	case v.gift != nil:
		return JarGiftPending
	case v.jar.IsFull:
		return JarFull
	default:
		return JarFilling
	}
}

// Pending returns the locally known unclaimed gift.
func (t *JarTracker) Pending(userID string) *Gift {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view(userID).gift
}

func (t *JarTracker) GetJarProgress(ctx context.Context, userID string) JarProgress {
	callCtx, cancel := t.call(ctx)
	defer cancel()
	res, err := t.api.GetJarProgress(callCtx, &economypb.UserRequest{UserId: userID})
	if err != nil {
		log.Printf("jar progress for %s unavailable: %v", userID, err)
		return JarProgress{}
	}
	jar := jarFromPB(res.GetJar())
	t.mu.Lock()
	t.view(userID).jar = jar
	t.mu.Unlock()
	return jar
}

func (t *JarTracker) GetUnclaimedGift(ctx context.Context, userID string) *Gift {
	callCtx, cancel := t.call(ctx)
	defer cancel()
	res, err := t.api.GetUnclaimedGift(callCtx, &economypb.UserRequest{UserId: userID})
	if err != nil {
		log.Printf("pending gift for %s unavailable: %v", userID, err)
		return nil
	}
	gift := giftFromPB(res.GetGift())
	t.mu.Lock()
	t.view(userID).gift = gift
	t.mu.Unlock()
	return gift
}

// GetActiveFlamingBadge returns the badge only while it has not expired.
func (t *JarTracker) GetActiveFlamingBadge(ctx context.Context, userID string) *Badge {
	callCtx, cancel := t.call(ctx)
	defer cancel()
	res, err := t.api.GetActiveFlamingBadge(callCtx, &economypb.UserRequest{UserId: userID})
	if err != nil {
		log.Printf("flaming badge for %s unavailable: %v", userID, err)
		return nil
	}
	b := res.GetBadge()
	if b == nil || !b.ExpiresAt.After(t.now()) {
		return nil
	}
	return &Badge{GrantedAt: b.GrantedAt, ExpiresAt: b.ExpiresAt}
}

// AddPollen feeds the jar and, once it is full, makes sure a gift exists.
func (t *JarTracker) AddPollen(ctx context.Context, userID string, pollen int) (PollenResult, error) {
	callCtx, cancel := t.call(ctx)
	res, err := t.api.AddPollenToJar(callCtx, &economypb.AddPollenRequest{UserId: userID, PollenEarned: int32(pollen)})
	cancel()
	if err != nil {
		return PollenResult{}, err
	}
	out := PollenResult{
		JarProgress: JarProgress{FillPercent: int(res.FillPercent), PollenInCycle: int(res.PollenInCycle), IsFull: res.IsFull},
		BecameFull:  res.BecameFull,
	}
	t.Observe(ctx, userID, out.JarProgress)
	return out, nil
}

// Observe records a jar snapshot from any source. A full jar makes sure the
// gift of the current cycle exists; any other jar has no unclaimed gift.
func (t *JarTracker) Observe(ctx context.Context, userID string, jar JarProgress) {
	t.mu.Lock()
	v := t.view(userID)
	v.jar = jar
	if !jar.IsFull {
		v.gift = nil
	}
	t.mu.Unlock()

	if jar.IsFull {
		if _, err := t.EnsureGift(ctx, userID); err != nil {
			log.Printf("generate gift for %s: %v", userID, err)
		}
	}
}

// EnsureGift asks the economy for the gift of the current cycle, generating
// it if needed. Concurrent callers for the same user share one call.
func (t *JarTracker) EnsureGift(ctx context.Context, userID string) (*Gift, error) {
	v, err, _ := t.gen.Do(userID, func() (any, error) {
		callCtx, cancel := t.call(ctx)
		defer cancel()
		res, err := t.api.GenerateMysteryGift(callCtx, &economypb.UserRequest{UserId: userID})
		if err != nil {
			return nil, err
		}
		gift := giftFromPB(res.GetGift())
		t.mu.Lock()
		t.view(userID).gift = gift
		t.mu.Unlock()
		return gift, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Gift), nil
}

// ClaimMysteryGift redeems a gift. While one claim for a user is in flight a
// second one fails with ErrClaimInProgress.
func (t *JarTracker) ClaimMysteryGift(ctx context.Context, userID, giftID string) (ClaimResult, error) {
	t.mu.Lock()
	v := t.view(userID)
	if v.claiming {
		t.mu.Unlock()
		return ClaimResult{}, ErrClaimInProgress
	}
	v.claiming = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.view(userID).claiming = false
		t.mu.Unlock()
	}()

	callCtx, cancel := t.call(ctx)
	defer cancel()
	res, err := t.api.ClaimMysteryGift(callCtx, &economypb.ClaimGiftRequest{UserId: userID, GiftId: giftID})
	if err != nil {
		switch economypb.Reason(err) {
		case economypb.ReasonGiftNotFound, economypb.ReasonGiftAlreadyClaimed:
			t.mu.Lock()
			if v := t.view(userID); v.gift != nil && v.gift.ID == giftID {
				v.gift = nil
			}
			t.mu.Unlock()
		}
		return ClaimResult{}, err
	}

	t.mu.Lock()
	v = t.view(userID)
	v.jar = JarProgress{}
	if v.gift != nil && v.gift.ID == giftID {
		v.gift = nil
	}
	t.mu.Unlock()

	return ClaimResult{
		GiftType:       res.GiftType,
		GiftAmount:     int(res.GiftAmount),
		Hearts:         int(res.Hearts),
		Gems:           int(res.Gems),
		BadgeExpiresAt: res.BadgeExpiresAt,
	}, nil
}
