package study

import (
	"context"
	"sync"
	"time"

	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
	"google.golang.org/grpc"
)

// fakeEconomy keeps one user's balances and jar in memory.
type fakeEconomy struct {
	economypb.EconomyServiceClient

	mu      sync.Mutex
	hearts  int32
	xp      int32
	gems    int32
	pollen  int32
	gift    *economypb.MysteryGift
	deducts int
}

func newFakeEconomy(hearts int32) *fakeEconomy {
	return &fakeEconomy{hearts: hearts, gems: 50}
}

func (f *fakeEconomy) jar() *economypb.JarProgress {
	pct := min(f.pollen/3, 100)
	return &economypb.JarProgress{FillPercent: pct, PollenInCycle: f.pollen, IsFull: pct == 100}
}

func (f *fakeEconomy) CheckAndRefillHearts(context.Context, *economypb.UserRequest, ...grpc.CallOption) (*economypb.RefillResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := &economypb.RefillResponse{Hearts: f.hearts, MaxHearts: 5}
	if f.hearts < 5 {
		res.TimeUntilNextRefillMs = time.Hour.Milliseconds()
	}
	return res, nil
}

func (f *fakeEconomy) DeductHearts(_ context.Context, in *economypb.DeductHeartsRequest, _ ...grpc.CallOption) (*economypb.HeartsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deducts++
	f.hearts = max(0, f.hearts-in.Amount)
	return &economypb.HeartsResponse{Hearts: f.hearts}, nil
}

func (f *fakeEconomy) AwardXP(_ context.Context, in *economypb.AwardRequest, _ ...grpc.CallOption) (*economypb.AwardResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.xp += in.Amount
	return &economypb.AwardResponse{NewBalance: f.xp, TransactionId: "tx-xp"}, nil
}

func (f *fakeEconomy) AwardGems(_ context.Context, in *economypb.AwardRequest, _ ...grpc.CallOption) (*economypb.AwardResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gems += in.Amount
	return &economypb.AwardResponse{NewBalance: f.gems, TransactionId: "tx-gems"}, nil
}

func (f *fakeEconomy) ConvertGemsToHearts(_ context.Context, in *economypb.ConvertGemsRequest, _ ...grpc.CallOption) (*economypb.ConvertGemsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gems -= in.HeartsAmount * 10
	f.hearts = min(5, f.hearts+in.HeartsAmount)
	return &economypb.ConvertGemsResponse{NewGems: f.gems, NewHearts: f.hearts}, nil
}

func (f *fakeEconomy) AddPollenToJar(_ context.Context, in *economypb.AddPollenRequest, _ ...grpc.CallOption) (*economypb.AddPollenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wasFull := f.jar().IsFull
	f.pollen += in.PollenEarned
	j := f.jar()
	return &economypb.AddPollenResponse{FillPercent: j.FillPercent, IsFull: j.IsFull, BecameFull: j.IsFull && !wasFull, PollenInCycle: j.PollenInCycle}, nil
}

func (f *fakeEconomy) GetJarProgress(context.Context, *economypb.UserRequest, ...grpc.CallOption) (*economypb.JarResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &economypb.JarResponse{Jar: f.jar()}, nil
}

func (f *fakeEconomy) GenerateMysteryGift(_ context.Context, in *economypb.UserRequest, _ ...grpc.CallOption) (*economypb.GiftResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gift == nil {
		f.gift = &economypb.MysteryGift{Id: "gift-1", UserId: in.UserId, GiftType: "pollen", GiftAmount: 20}
	}
	return &economypb.GiftResponse{Gift: f.gift}, nil
}

func (f *fakeEconomy) GetUnclaimedGift(context.Context, *economypb.UserRequest, ...grpc.CallOption) (*economypb.GiftResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &economypb.GiftResponse{Gift: f.gift}, nil
}

func (f *fakeEconomy) ClaimMysteryGift(_ context.Context, in *economypb.ClaimGiftRequest, _ ...grpc.CallOption) (*economypb.ClaimGiftResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := f.gift
	f.gift, f.pollen = nil, 0
	f.gems += g.GiftAmount
	return &economypb.ClaimGiftResponse{GiftType: g.GiftType, GiftAmount: g.GiftAmount, Gems: f.gems, Hearts: f.hearts}, nil
}

func (f *fakeEconomy) GetActiveFlamingBadge(context.Context, *economypb.UserRequest, ...grpc.CallOption) (*economypb.BadgeResponse, error) {
	return &economypb.BadgeResponse{}, nil
}

func (f *fakeEconomy) Watch(ctx context.Context, _ *economypb.WatchRequest, _ ...grpc.CallOption) (grpc.ServerStreamingClient[economypb.Event], error) {
	return &idleStream{ctx: ctx}, nil
}

type idleStream struct {
	grpc.ClientStream
	ctx context.Context
}

func (s *idleStream) Recv() (*economypb.Event, error) {
	<-s.ctx.Done()
	return nil, s.ctx.Err()
}
