package handlers

import (
	"context"
	"sync"

	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
	"google.golang.org/grpc"
)

// fakeEconomy answers the calls the handlers make. Unset funcs panic through
// the nil embedded interface, which keeps each test explicit about what it
// expects to be called.
type fakeEconomy struct {
	economypb.EconomyServiceClient

	mu    sync.Mutex
	calls map[string]int

	getProfile   func(*economypb.UserRequest) (*economypb.ProfileResponse, error)
	updateProf   func(*economypb.UpdateBalancesRequest) (*economypb.ProfileResponse, error)
	refill       func(*economypb.UserRequest) (*economypb.RefillResponse, error)
	deduct       func(*economypb.DeductHeartsRequest) (*economypb.HeartsResponse, error)
	awardHearts  func(*economypb.AwardRequest) (*economypb.HeartsResponse, error)
	awardGems    func(*economypb.AwardRequest) (*economypb.AwardResponse, error)
	convert      func(*economypb.ConvertGemsRequest) (*economypb.ConvertGemsResponse, error)
	getJar       func(*economypb.UserRequest) (*economypb.JarResponse, error)
	claim        func(*economypb.ClaimGiftRequest) (*economypb.ClaimGiftResponse, error)
	leaderboard  func(*economypb.LeaderboardRequest) (*economypb.LeaderboardResponse, error)
	streamEvents map[string]chan *economypb.Event
}

func newFakeEconomy() *fakeEconomy {
	return &fakeEconomy{
		calls: map[string]int{},
		streamEvents: map[string]chan *economypb.Event{
			economypb.KindJarProgressChanged: make(chan *economypb.Event, 4),
			economypb.KindGiftCreated:        make(chan *economypb.Event, 4),
		},
	}
}

func (f *fakeEconomy) hit(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *fakeEconomy) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeEconomy) GetProfile(_ context.Context, in *economypb.UserRequest, _ ...grpc.CallOption) (*economypb.ProfileResponse, error) {
	f.hit("GetProfile")
	return f.getProfile(in)
}

func (f *fakeEconomy) UpdateProfileBalances(_ context.Context, in *economypb.UpdateBalancesRequest, _ ...grpc.CallOption) (*economypb.ProfileResponse, error) {
	f.hit("UpdateProfileBalances")
	return f.updateProf(in)
}

func (f *fakeEconomy) CheckAndRefillHearts(_ context.Context, in *economypb.UserRequest, _ ...grpc.CallOption) (*economypb.RefillResponse, error) {
	f.hit("CheckAndRefillHearts")
	return f.refill(in)
}

func (f *fakeEconomy) DeductHearts(_ context.Context, in *economypb.DeductHeartsRequest, _ ...grpc.CallOption) (*economypb.HeartsResponse, error) {
	f.hit("DeductHearts")
	return f.deduct(in)
}

func (f *fakeEconomy) AwardHearts(_ context.Context, in *economypb.AwardRequest, _ ...grpc.CallOption) (*economypb.HeartsResponse, error) {
	f.hit("AwardHearts")
	return f.awardHearts(in)
}

func (f *fakeEconomy) AwardGems(_ context.Context, in *economypb.AwardRequest, _ ...grpc.CallOption) (*economypb.AwardResponse, error) {
	f.hit("AwardGems")
	return f.awardGems(in)
}

func (f *fakeEconomy) ConvertGemsToHearts(_ context.Context, in *economypb.ConvertGemsRequest, _ ...grpc.CallOption) (*economypb.ConvertGemsResponse, error) {
	f.hit("ConvertGemsToHearts")
	return f.convert(in)
}

func (f *fakeEconomy) GetJarProgress(_ context.Context, in *economypb.UserRequest, _ ...grpc.CallOption) (*economypb.JarResponse, error) {
	f.hit("GetJarProgress")
	return f.getJar(in)
}

func (f *fakeEconomy) ClaimMysteryGift(_ context.Context, in *economypb.ClaimGiftRequest, _ ...grpc.CallOption) (*economypb.ClaimGiftResponse, error) {
	f.hit("ClaimMysteryGift")
	return f.claim(in)
}

func (f *fakeEconomy) GetLeaderboard(_ context.Context, in *economypb.LeaderboardRequest, _ ...grpc.CallOption) (*economypb.LeaderboardResponse, error) {
	f.hit("GetLeaderboard")
	return f.leaderboard(in)
}

func (f *fakeEconomy) Watch(ctx context.Context, in *economypb.WatchRequest, _ ...grpc.CallOption) (grpc.ServerStreamingClient[economypb.Event], error) {
	f.hit("Watch")
	return &fakeStream{ctx: ctx, events: f.streamEvents[in.Kinds[0]]}, nil
}

type fakeStream struct {
	grpc.ClientStream
	ctx    context.Context
	events chan *economypb.Event
}

func (s *fakeStream) Recv() (*economypb.Event, error) {
	select {
	case ev := <-s.events:
		return ev, nil
	case <-s.ctx.Done():
		return nil, s.ctx.Err()
	}
}
