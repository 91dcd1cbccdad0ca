package client

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// fakeEconomy is a single-user economy service. Methods listed in fail return
// that error; methods listed in block wait for their context to end.
type fakeEconomy struct {
	mu      sync.Mutex
	profile economypb.Profile
	jar     economypb.JarProgress
	gift    *economypb.MysteryGift
	badge   *economypb.FlamingBadge
	refill  *economypb.RefillResponse
	fail    map[string]error
	block   map[string]bool
	calls   map[string]int
	nextID  int

	emptyProfile  bool
	generateDelay time.Duration
	generating    int
	maxGenerating int
	claimGate     chan struct{}
	events        chan *economypb.Event
}

func newFakeEconomy() *fakeEconomy {
	return &fakeEconomy{
		profile: economypb.Profile{UserId: "u1", Username: "bee", Hearts: 5, MaxHearts: 5},
		fail:    map[string]error{},
		block:   map[string]bool{},
		calls:   map[string]int{},
		events:  make(chan *economypb.Event, 8),
	}
}

var errUnavailable = status.Error(codes.Unavailable, "economy down")

func (f *fakeEconomy) hit(ctx context.Context, method string) error {
	f.mu.Lock()
	f.calls[method]++
	err, blocked := f.fail[method], f.block[method]
	f.mu.Unlock()
	if blocked {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (f *fakeEconomy) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeEconomy) snapshot() economypb.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile
}

func (f *fakeEconomy) CreateProfile(ctx context.Context, in *economypb.CreateProfileRequest, _ ...grpc.CallOption) (*economypb.ProfileResponse, error) {
	if err := f.hit(ctx, "CreateProfile"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile.UserId, f.profile.Username = in.UserId, in.Username
	p := f.profile
	return &economypb.ProfileResponse{Profile: &p}, nil
}

func (f *fakeEconomy) GetProfile(ctx context.Context, _ *economypb.UserRequest, _ ...grpc.CallOption) (*economypb.ProfileResponse, error) {
	if err := f.hit(ctx, "GetProfile"); err != nil {
		return nil, err
	}
	if f.emptyProfile {
		return &economypb.ProfileResponse{}, nil
	}
	p := f.snapshot()
	return &economypb.ProfileResponse{Profile: &p}, nil
}

func (f *fakeEconomy) UpdateProfileBalances(ctx context.Context, in *economypb.UpdateBalancesRequest, _ ...grpc.CallOption) (*economypb.ProfileResponse, error) {
	if err := f.hit(ctx, "UpdateProfileBalances"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Hearts != nil {
		f.profile.Hearts = *in.Hearts
	}
	if in.Xp != nil {
		f.profile.Xp = *in.Xp
	}
	if in.Gems != nil {
		f.profile.Gems = *in.Gems
	}
	if in.LastHeartRefillAt != nil {
		f.profile.LastHeartRefillAt = *in.LastHeartRefillAt
	}
	p := f.profile
	return &economypb.ProfileResponse{Profile: &p}, nil
}

func (f *fakeEconomy) CheckAndRefillHearts(ctx context.Context, _ *economypb.UserRequest, _ ...grpc.CallOption) (*economypb.RefillResponse, error) {
	if err := f.hit(ctx, "CheckAndRefillHearts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refill != nil {
		r := *f.refill
		return &r, nil
	}
	return &economypb.RefillResponse{Hearts: f.profile.Hearts, MaxHearts: f.profile.MaxHearts, LastRefillAt: f.profile.LastHeartRefillAt}, nil
}

func (f *fakeEconomy) DeductHearts(ctx context.Context, in *economypb.DeductHeartsRequest, _ ...grpc.CallOption) (*economypb.HeartsResponse, error) {
	if err := f.hit(ctx, "DeductHearts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile.Hearts = max(0, f.profile.Hearts-in.Amount)
	return &economypb.HeartsResponse{Hearts: f.profile.Hearts}, nil
}

func (f *fakeEconomy) AwardHearts(ctx context.Context, in *economypb.AwardRequest, _ ...grpc.CallOption) (*economypb.HeartsResponse, error) {
	if err := f.hit(ctx, "AwardHearts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile.Hearts = min(f.profile.MaxHearts, f.profile.Hearts+in.Amount)
	return &economypb.HeartsResponse{Hearts: f.profile.Hearts}, nil
}

func (f *fakeEconomy) AwardXP(ctx context.Context, in *economypb.AwardRequest, _ ...grpc.CallOption) (*economypb.AwardResponse, error) {
	if err := f.hit(ctx, "AwardXP"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile.Xp += in.Amount
	f.nextID++
	return &economypb.AwardResponse{NewBalance: f.profile.Xp, TransactionId: fmt.Sprintf("tx-%d", f.nextID)}, nil
}

func (f *fakeEconomy) AwardGems(ctx context.Context, in *economypb.AwardRequest, _ ...grpc.CallOption) (*economypb.AwardResponse, error) {
	if err := f.hit(ctx, "AwardGems"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile.Gems += in.Amount
	f.nextID++
	return &economypb.AwardResponse{NewBalance: f.profile.Gems, TransactionId: fmt.Sprintf("tx-%d", f.nextID)}, nil
}

func (f *fakeEconomy) ConvertGemsToHearts(ctx context.Context, in *economypb.ConvertGemsRequest, _ ...grpc.CallOption) (*economypb.ConvertGemsResponse, error) {
	if err := f.hit(ctx, "ConvertGemsToHearts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cost := in.HeartsAmount * 10
	if f.profile.Gems < cost {
		return nil, economypb.Error(codes.FailedPrecondition, economypb.ReasonInsufficientGems, "not enough gems")
	}
	f.profile.Gems -= cost
	f.profile.Hearts = min(f.profile.MaxHearts, f.profile.Hearts+in.HeartsAmount)
	return &economypb.ConvertGemsResponse{NewGems: f.profile.Gems, NewHearts: f.profile.Hearts}, nil
}

func (f *fakeEconomy) AddPollenToJar(ctx context.Context, in *economypb.AddPollenRequest, _ ...grpc.CallOption) (*economypb.AddPollenResponse, error) {
	if err := f.hit(ctx, "AddPollenToJar"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	wasFull := f.jar.IsFull
	f.jar.PollenInCycle += in.PollenEarned
	f.jar.FillPercent = min(100, f.jar.PollenInCycle/3)
	f.jar.IsFull = f.jar.FillPercent >= 100
	return &economypb.AddPollenResponse{
		FillPercent:   f.jar.FillPercent,
		IsFull:        f.jar.IsFull,
		BecameFull:    f.jar.IsFull && !wasFull,
		PollenInCycle: f.jar.PollenInCycle,
	}, nil
}

func (f *fakeEconomy) GetJarProgress(ctx context.Context, _ *economypb.UserRequest, _ ...grpc.CallOption) (*economypb.JarResponse, error) {
	if err := f.hit(ctx, "GetJarProgress"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	j := f.jar
	return &economypb.JarResponse{Jar: &j}, nil
}

func (f *fakeEconomy) GenerateMysteryGift(ctx context.Context, _ *economypb.UserRequest, _ ...grpc.CallOption) (*economypb.GiftResponse, error) {
	if err := f.hit(ctx, "GenerateMysteryGift"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.generating++
	f.maxGenerating = max(f.maxGenerating, f.generating)
	f.mu.Unlock()
	time.Sleep(f.generateDelay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generating--
	if !f.jar.IsFull {
		return nil, economypb.Error(codes.FailedPrecondition, economypb.ReasonJarNotFull, "honey jar is not full")
	}
	if f.gift == nil {
		f.nextID++
		f.gift = &economypb.MysteryGift{Id: fmt.Sprintf("gift-%d", f.nextID), UserId: "u1", GiftType: "pollen", GiftAmount: 20}
	}
	g := *f.gift
	return &economypb.GiftResponse{Gift: &g}, nil
}

func (f *fakeEconomy) GetUnclaimedGift(ctx context.Context, _ *economypb.UserRequest, _ ...grpc.CallOption) (*economypb.GiftResponse, error) {
	if err := f.hit(ctx, "GetUnclaimedGift"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gift == nil {
		return &economypb.GiftResponse{}, nil
	}
	g := *f.gift
	return &economypb.GiftResponse{Gift: &g}, nil
}

func (f *fakeEconomy) ClaimMysteryGift(ctx context.Context, in *economypb.ClaimGiftRequest, _ ...grpc.CallOption) (*economypb.ClaimGiftResponse, error) {
	if err := f.hit(ctx, "ClaimMysteryGift"); err != nil {
		return nil, err
	}
	if f.claimGate != nil {
		<-f.claimGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gift == nil || f.gift.Id != in.GiftId {
		return nil, economypb.Error(codes.NotFound, economypb.ReasonGiftNotFound, "mystery gift not found")
	}
	res := &economypb.ClaimGiftResponse{GiftType: f.gift.GiftType, GiftAmount: f.gift.GiftAmount}
	f.profile.Gems += f.gift.GiftAmount
	res.Gems, res.Hearts = f.profile.Gems, f.profile.Hearts
	f.gift = nil
	f.jar = economypb.JarProgress{}
	return res, nil
}

func (f *fakeEconomy) GetActiveFlamingBadge(ctx context.Context, _ *economypb.UserRequest, _ ...grpc.CallOption) (*economypb.BadgeResponse, error) {
	if err := f.hit(ctx, "GetActiveFlamingBadge"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &economypb.BadgeResponse{Badge: f.badge}, nil
}

func (f *fakeEconomy) GetLeaderboard(ctx context.Context, _ *economypb.LeaderboardRequest, _ ...grpc.CallOption) (*economypb.LeaderboardResponse, error) {
	if err := f.hit(ctx, "GetLeaderboard"); err != nil {
		return nil, err
	}
	p := f.snapshot()
	return &economypb.LeaderboardResponse{Entries: []*economypb.LeaderboardEntry{
		{Rank: 1, UserId: p.UserId, Username: p.Username, Xp: p.Xp, Shield: "Silver"},
	}}, nil
}

func (f *fakeEconomy) Watch(ctx context.Context, _ *economypb.WatchRequest, _ ...grpc.CallOption) (grpc.ServerStreamingClient[economypb.Event], error) {
	if err := f.hit(ctx, "Watch"); err != nil {
		return nil, err
	}
	return &fakeStream{ctx: ctx, events: f.events}, nil
}

type fakeStream struct {
	grpc.ClientStream
	ctx    context.Context
	events <-chan *economypb.Event
}

func (s *fakeStream) Recv() (*economypb.Event, error) {
	select {
	case <-s.ctx.Done():
		return nil, status.FromContextError(s.ctx.Err()).Err()
	case ev, ok := <-s.events:
		if !ok {
			return nil, io.EOF
		}
		return ev, nil
	}
}

func (s *fakeStream) Context() context.Context {
	return s.ctx
}

var _ economypb.EconomyServiceClient = (*fakeEconomy)(nil)
