package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var epoch = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return epoch }

func TestHeartStateRefillTimeDisplay(t *testing.T) {
	tests := []struct {
		name  string
		state HeartState
		want  string
	}{
		{"full", HeartState{Hearts: 5, MaxHearts: 5, Counting: true, TimeUntilRefill: time.Hour}, ""},
		{"no countdown", HeartState{Hearts: 2, MaxHearts: 5}, ""},
		{"two hours", HeartState{Hearts: 0, MaxHearts: 5, Counting: true, TimeUntilRefill: 2 * time.Hour}, "2:00:00"},
		{"minutes and seconds", HeartState{Hearts: 1, MaxHearts: 5, Counting: true, TimeUntilRefill: 5*time.Minute + 7*time.Second + 300*time.Millisecond}, "0:05:07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.RefillTimeDisplay(); got != tt.want {
				t.Errorf("RefillTimeDisplay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeartTrackerWrongAnswers(t *testing.T) {
	api := newFakeEconomy()
	tr := NewHeartTracker(api, "u1", WithClock(fixedNow))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tr.DeductHeart(ctx, 1)
	}
	if s := tr.State(); s.Hearts != 2 || s.Counting {
		t.Fatalf("after three wrong answers: %+v", s)
	}

	tr.DeductHeart(ctx, 1)
	s, err := tr.DeductHeart(ctx, 0)
	if err != nil {
		t.Fatalf("DeductHeart: %v", err)
	}
	if s.Hearts != 0 || !s.LastRefillAt.Equal(epoch) {
		t.Errorf("unexpected state %+v", s)
	}
	if tr.CanAnswer() || !tr.NeedsRefill() {
		t.Error("answers should be blocked at zero hearts")
	}
	if got := tr.RefillTimeDisplay(); got != "2:00:00" {
		t.Errorf("RefillTimeDisplay = %q", got)
	}

	api.refill = &economypb.RefillResponse{Hearts: 5, MaxHearts: 5, LastRefillAt: epoch.Add(2 * time.Hour), Refilled: true}
	s, _ = tr.CheckAndRefillHearts(ctx)
	if s.Hearts != 5 || s.Counting || tr.RefillTimeDisplay() != "" {
		t.Errorf("after refill: %+v", s)
	}
}

func TestHeartTrackerDeductFallback(t *testing.T) {
	api := newFakeEconomy()
	api.fail["DeductHearts"] = errUnavailable
	api.profile.Hearts = 2
	tr := NewHeartTracker(api, "u1", WithClock(fixedNow))
	ctx := context.Background()
	tr.CheckAndRefillHearts(ctx)

	s, err := tr.DeductHeart(ctx, 3)
	if err != nil {
		t.Fatalf("DeductHeart: %v", err)
	}
	if s.Hearts != 0 || !s.Counting {
		t.Errorf("unexpected state %+v", s)
	}
	p := api.snapshot()
	if p.Hearts != 0 || !p.LastHeartRefillAt.Equal(epoch) {
		t.Errorf("direct write not applied: %+v", p)
	}
}

func TestHeartTrackerAwardFallbackClamps(t *testing.T) {
	api := newFakeEconomy()
	api.profile.Hearts = 3
	tr := NewHeartTracker(api, "u1")
	ctx := context.Background()
	tr.CheckAndRefillHearts(ctx)

	api.fail["AwardHearts"] = errUnavailable
	s, err := tr.AwardHearts(ctx, 4, "chapter_bonus", nil)
	if err != nil {
		t.Fatalf("AwardHearts: %v", err)
	}
	if s.Hearts != 5 || api.snapshot().Hearts != 5 {
		t.Errorf("hearts = %d local, %d stored", s.Hearts, api.snapshot().Hearts)
	}
}

func TestHeartTrackerRefillFallbackNeverRefills(t *testing.T) {
	api := newFakeEconomy()
	api.fail["CheckAndRefillHearts"] = errUnavailable
	api.profile.Hearts = 0
	api.profile.LastHeartRefillAt = epoch.Add(-30 * time.Minute)
	tr := NewHeartTracker(api, "u1", WithClock(fixedNow))

	s, err := tr.CheckAndRefillHearts(context.Background())
	if err != nil {
		t.Fatalf("CheckAndRefillHearts: %v", err)
	}
	if s.Hearts != 0 || s.RefillTimeDisplay() != "1:30:00" {
		t.Errorf("unexpected state %+v", s)
	}

	api.profile.LastHeartRefillAt = epoch.Add(-3 * time.Hour)
	s, _ = tr.CheckAndRefillHearts(context.Background())
	if s.Hearts != 0 || s.Counting {
		t.Errorf("fallback must not refill locally: %+v", s)
	}
}

func TestHeartTrackerConvertRejected(t *testing.T) {
	api := newFakeEconomy()
	api.profile.Gems = 15
	tr := NewHeartTracker(api, "u1")

	_, err := tr.ConvertGemsToHearts(context.Background(), 2, 20)
	if status.Code(err) != codes.FailedPrecondition || economypb.Reason(err) != economypb.ReasonInsufficientGems {
		t.Errorf("err = %v", err)
	}
	if api.count("UpdateProfileBalances") != 0 {
		t.Error("rejected purchase must not write balances")
	}
}

func TestHeartTrackerOnChange(t *testing.T) {
	api := newFakeEconomy()
	tr := NewHeartTracker(api, "u1")

	var (
		mu   sync.Mutex
		seen []int
	)
	remove := tr.OnChange(func(s HeartState) {
		mu.Lock()
		seen = append(seen, s.Hearts)
		mu.Unlock()
	})
	tr.DeductHeart(context.Background(), 1)
	remove()
	tr.DeductHeart(context.Background(), 1)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != 4 {
		t.Errorf("listener saw %v", seen)
	}
}

func TestHeartTrackerCountdownTriggersCheck(t *testing.T) {
	api := newFakeEconomy()
	api.profile.Hearts = 0
	api.refill = &economypb.RefillResponse{Hearts: 0, MaxHearts: 5, TimeUntilNextRefillMs: 20}
	tr := NewHeartTracker(api, "u1", WithTickInterval(5*time.Millisecond), WithPollInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tr.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for api.count("CheckAndRefillHearts") < 2 {
		select {
		case <-deadline:
			t.Fatal("countdown never asked the server again")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}

func TestHeartTrackerTick(t *testing.T) {
	tr := NewHeartTracker(newFakeEconomy(), "u1", WithTickInterval(time.Second))
	tr.update(func(s *HeartState) {
		s.Hearts = 0
		s.Counting = true
		s.TimeUntilRefill = 2 * time.Second
	})

	if tr.tick() {
		t.Fatal("countdown finished early")
	}
	if got := tr.RefillTimeDisplay(); got != "0:00:01" {
		t.Errorf("RefillTimeDisplay = %q", got)
	}
	if !tr.tick() {
		t.Fatal("countdown should finish on the second tick")
	}
	if tr.tick() {
		t.Error("finished countdown fired twice")
	}
}

func TestHeartTrackerFallbacksReadStoredHearts(t *testing.T) {
	tests := []struct {
		name   string
		stored int32
		method string
		apply  func(*HeartTracker) (HeartState, error)
		want   int
	}{
		{"deduct from one heart", 1, "DeductHearts", func(tr *HeartTracker) (HeartState, error) {
			return tr.DeductHeart(context.Background(), 1)
		}, 0},
		{"deduct more than stored", 2, "DeductHearts", func(tr *HeartTracker) (HeartState, error) {
			return tr.DeductHeart(context.Background(), 4)
		}, 0},
		{"award on top of stored", 1, "AwardHearts", func(tr *HeartTracker) (HeartState, error) {
			return tr.AwardHearts(context.Background(), 2, "chapter_bonus", nil)
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeEconomy()
			api.profile.Hearts = tt.stored
			api.fail[tt.method] = status.Error(codes.Internal, "boom")
			// Never synced: the cached state still holds the default five hearts.
			tr := NewHeartTracker(api, "u1", WithClock(fixedNow))

			s, err := tt.apply(tr)
			if err != nil {
				t.Fatalf("%s: %v", tt.method, err)
			}
			if s.Hearts != tt.want || int(api.snapshot().Hearts) != tt.want {
				t.Errorf("hearts = %d local, %d stored, want %d", s.Hearts, api.snapshot().Hearts, tt.want)
			}
		})
	}
}

func TestHeartTrackerFallbackWithoutProfile(t *testing.T) {
	api := newFakeEconomy()
	api.fail["DeductHearts"] = errUnavailable
	api.fail["CheckAndRefillHearts"] = errUnavailable
	api.emptyProfile = true
	tr := NewHeartTracker(api, "u1")

	if _, err := tr.DeductHeart(context.Background(), 1); !errors.Is(err, ErrEmptyProfile) {
		t.Errorf("DeductHeart err = %v", err)
	}
	_, err := tr.CheckAndRefillHearts(context.Background())
	if !errors.Is(err, ErrEmptyProfile) || strings.Contains(err.Error(), "%!w") {
		t.Errorf("CheckAndRefillHearts err = %v", err)
	}
	if api.count("UpdateProfileBalances") != 0 {
		t.Error("nothing may be written without a stored profile")
	}
}
