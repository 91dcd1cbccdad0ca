package client

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
)

const DefaultMaxHearts = 5

type HeartState struct {
	Hearts          int
	MaxHearts       int
	LastRefillAt    time.Time
	TimeUntilRefill time.Duration
	// Counting is set while a refill countdown is running.
	Counting bool
}

func (s HeartState) CanAnswer() bool {
	return s.Hearts > 0
}

func (s HeartState) NeedsRefill() bool {
	return s.Hearts == 0
}

// RefillTimeDisplay formats the countdown as H:MM:SS, or "" when hearts are
// full or no countdown is running.
func (s HeartState) RefillTimeDisplay() string {
	if s.Hearts >= s.MaxHearts || !s.Counting {
		return ""
	}
	d := s.TimeUntilRefill.Truncate(time.Second)
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	sec := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
}

func (s *HeartState) startCountdownIfEmpty(now time.Time) {
	if s.Hearts == 0 {
		s.LastRefillAt = now
		s.TimeUntilRefill = HeartRefillInterval
		s.Counting = true
	}
}

func (s *HeartState) stopCountdownIfFull() {
	if s.Hearts >= s.MaxHearts {
		s.TimeUntilRefill = 0
		s.Counting = false
	}
}

// HeartTracker is a read-through cache of one user's hearts. The economy
// service stays authoritative: local state is corrected on every check, and
// refills are never applied locally.
type HeartTracker struct {
	api    economypb.EconomyServiceClient
	userID string
	settings

	mu        sync.Mutex
	state     HeartState
	listeners map[int]func(HeartState)
	nextID    int
}

func NewHeartTracker(api economypb.EconomyServiceClient, userID string, opts ...Option) *HeartTracker {
	return &HeartTracker{
		api:       api,
		userID:    userID,
		settings:  newSettings(opts),
		state:     HeartState{Hearts: DefaultMaxHearts, MaxHearts: DefaultMaxHearts},
		listeners: make(map[int]func(HeartState)),
	}
}

func (t *HeartTracker) State() HeartState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *HeartTracker) CanAnswer() bool {
	return t.State().CanAnswer()
}

func (t *HeartTracker) NeedsRefill() bool {
	return t.State().NeedsRefill()
}

func (t *HeartTracker) RefillTimeDisplay() string {
	return t.State().RefillTimeDisplay()
}

// OnChange registers fn to be called after every state change. The returned
// func removes it.
func (t *HeartTracker) OnChange(fn func(HeartState)) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

func (t *HeartTracker) update(fn func(*HeartState)) HeartState {
	t.mu.Lock()
	fn(&t.state)
	s := t.state
	listeners := make([]func(HeartState), 0, len(t.listeners))
	for _, l := range t.listeners {
		listeners = append(listeners, l)
	}
	t.mu.Unlock()

	for _, l := range listeners {
		l(s)
	}
	return s
}

// CheckAndRefillHearts asks the economy to refill hearts if the interval has
// passed. When the economy is unreachable it adopts the stored profile values
// as they are.
func (t *HeartTracker) CheckAndRefillHearts(ctx context.Context) (HeartState, error) {
	callCtx, cancel := t.call(ctx)
	res, err := t.api.CheckAndRefillHearts(callCtx, &economypb.UserRequest{UserId: t.userID})
	cancel()
	if err == nil {
		return t.update(func(s *HeartState) {
			s.Hearts = int(res.Hearts)
			s.MaxHearts = int(res.MaxHearts)
			s.LastRefillAt = res.LastRefillAt
			s.TimeUntilRefill = time.Duration(res.TimeUntilNextRefillMs) * time.Millisecond
			s.Counting = s.Hearts < s.MaxHearts && s.TimeUntilRefill > 0
		}), nil
	}
	if !isRemoteFailure(err) {
		return t.State(), err
	}
	log.Printf("refill check for %s failed, reading profile: %v", t.userID, err)

	callCtx, cancel = t.call(ctx)
	defer cancel()
	p, err := t.storedProfile(callCtx)
	if err != nil {
		log.Printf("profile read for %s failed, keeping cached hearts: %v", t.userID, err)
		return t.State(), fmt.Errorf("refill check fallback: %w", err)
	}
	now := t.now()
	return t.update(func(s *HeartState) {
		s.Hearts = int(p.Hearts)
		s.MaxHearts = int(p.MaxHearts)
		s.LastRefillAt = p.LastHeartRefillAt
		s.TimeUntilRefill = 0
		if s.Hearts < s.MaxHearts {
			if left := p.LastHeartRefillAt.Add(HeartRefillInterval).Sub(now); left > 0 {
				s.TimeUntilRefill = left
			}
		}
		s.Counting = s.TimeUntilRefill > 0
	}), nil
}

// DeductHeart spends hearts for a wrong answer. amount below 1 spends one.
func (t *HeartTracker) DeductHeart(ctx context.Context, amount int) (HeartState, error) {
	if amount < 1 {
		amount = 1
	}

	callCtx, cancel := t.call(ctx)
	res, err := t.api.DeductHearts(callCtx, &economypb.DeductHeartsRequest{UserId: t.userID, Amount: int32(amount)})
	cancel()
	if err == nil {
		now := t.now()
		return t.update(func(s *HeartState) {
			s.Hearts = int(res.Hearts)
			s.startCountdownIfEmpty(now)
		}), nil
	}
	if !isRemoteFailure(err) {
		return t.State(), err
	}
	log.Printf("deduct hearts for %s failed, writing directly: %v", t.userID, err)

	p, err := t.readStored(ctx)
	if err != nil {
		return t.State(), fmt.Errorf("deduct hearts fallback read: %w", err)
	}
	now := t.now()
	next := t.update(func(s *HeartState) {
		if p.MaxHearts > 0 {
			s.MaxHearts = int(p.MaxHearts)
		}
		s.Hearts = max(0, int(p.Hearts)-amount)
		s.startCountdownIfEmpty(now)
	})
	req := &economypb.UpdateBalancesRequest{UserId: t.userID, Hearts: int32Ptr(next.Hearts)}
	if next.Hearts == 0 {
		req.LastHeartRefillAt = &now
	}
	return next, t.writeBalances(ctx, req)
}

// AwardHearts grants hearts, never beyond the maximum.
func (t *HeartTracker) AwardHearts(ctx context.Context, amount int, source string, metadata map[string]any) (HeartState, error) {
	callCtx, cancel := t.call(ctx)
	res, err := t.api.AwardHearts(callCtx, &economypb.AwardRequest{
		UserId:   t.userID,
		Amount:   int32(amount),
		Source:   source,
		Metadata: metadata,
	})
	cancel()
	if err == nil {
		return t.update(func(s *HeartState) {
			s.Hearts = int(res.Hearts)
			s.stopCountdownIfFull()
		}), nil
	}
	if !isRemoteFailure(err) {
		return t.State(), err
	}
	log.Printf("award hearts for %s failed, writing directly: %v", t.userID, err)

	p, err := t.readStored(ctx)
	if err != nil {
		return t.State(), fmt.Errorf("award hearts fallback read: %w", err)
	}
	next := t.update(func(s *HeartState) {
		if p.MaxHearts > 0 {
			s.MaxHearts = int(p.MaxHearts)
		}
		s.Hearts = min(s.MaxHearts, int(p.Hearts)+amount)
		s.stopCountdownIfFull()
	})
	return next, t.writeBalances(ctx, &economypb.UpdateBalancesRequest{UserId: t.userID, Hearts: int32Ptr(next.Hearts)})
}

type ConvertResult struct {
	NewGems   int
	NewHearts int
}

// ConvertGemsToHearts buys hearts with gems. A gemCost of 0 lets the economy
// apply its own rate. Purchases have no direct-write fallback.
func (t *HeartTracker) ConvertGemsToHearts(ctx context.Context, hearts, gemCost int) (ConvertResult, error) {
	callCtx, cancel := t.call(ctx)
	defer cancel()
	res, err := t.api.ConvertGemsToHearts(callCtx, &economypb.ConvertGemsRequest{
		UserId:       t.userID,
		HeartsAmount: int32(hearts),
		GemCost:      int32(gemCost),
	})
	if err != nil {
		return ConvertResult{}, err
	}
	t.update(func(s *HeartState) {
		s.Hearts = int(res.NewHearts)
		s.stopCountdownIfFull()
	})
	return ConvertResult{NewGems: int(res.NewGems), NewHearts: int(res.NewHearts)}, nil
}

// storedProfile reads the profile the fallbacks compute from. The cached
// state may be stale or never synced.
func (t *HeartTracker) storedProfile(ctx context.Context) (*economypb.Profile, error) {
	res, err := t.api.GetProfile(ctx, &economypb.UserRequest{UserId: t.userID})
	if err != nil {
		return nil, err
	}
	if res.GetProfile() == nil {
		return nil, ErrEmptyProfile
	}
	return res.GetProfile(), nil
}

func (t *HeartTracker) readStored(ctx context.Context) (*economypb.Profile, error) {
	callCtx, cancel := t.call(ctx)
	defer cancel()
	return t.storedProfile(callCtx)
}

func (t *HeartTracker) writeBalances(ctx context.Context, req *economypb.UpdateBalancesRequest) error {
	callCtx, cancel := t.call(ctx)
	defer cancel()
	if _, err := t.api.UpdateProfileBalances(callCtx, req); err != nil {
		log.Printf("direct balance write for %s failed: %v", t.userID, err)
		return fmt.Errorf("direct balance write: %w", err)
	}
	return nil
}

// tick advances the countdown by one tick and reports whether it just ran out.
func (t *HeartTracker) tick() bool {
	if !t.State().Counting {
		return false
	}
	due := false
	t.update(func(s *HeartState) {
		if !s.Counting {
			return
		}
		s.TimeUntilRefill -= t.tickInterval
		if s.TimeUntilRefill <= 0 {
			s.TimeUntilRefill = 0
			s.Counting = false
			due = true
		}
	})
	return due
}

// Run keeps the tracker in sync until ctx is done: a full check every poll
// interval, and a countdown that asks the server again when it reaches zero.
func (t *HeartTracker) Run(ctx context.Context) {
	t.CheckAndRefillHearts(ctx)

	poll := time.NewTicker(t.pollInterval)
	defer poll.Stop()
	countdown := time.NewTicker(t.tickInterval)
	defer countdown.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poll.C:
			t.CheckAndRefillHearts(ctx)
		case <-countdown.C:
			if t.tick() {
				t.CheckAndRefillHearts(ctx)
			}
		}
	}
}

func int32Ptr(v int) *int32 {
	i := int32(v)
	return &i
}
