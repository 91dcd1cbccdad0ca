package client

import (
	"context"
	"fmt"
	"log"

	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"

	"google.golang.org/grpc"
)

// Award describes one scoring event.
type Award struct {
	Amount    int
	Source    string
	ChapterID string
	CourseID  string
	Metadata  map[string]any
}

func (a Award) request(userID string) *economypb.AwardRequest {
	return &economypb.AwardRequest{
		UserId:    userID,
		Amount:    int32(a.Amount),
		Source:    a.Source,
		ChapterId: a.ChapterID,
		CourseId:  a.CourseID,
		Metadata:  a.Metadata,
	}
}

type AwardResult struct {
	NewBalance    int
	TransactionID string
	// Fallback is set when the balance was written directly, without a
	// ledger row.
	Fallback bool
}

// Rewards applies XP and gem awards through the atomic economy calls and falls
// back to a direct read-modify-write when the economy is unreachable. The
// fallback can lose concurrent updates.
type Rewards struct {
	api economypb.EconomyServiceClient
	settings
}

func NewRewards(api economypb.EconomyServiceClient, opts ...Option) *Rewards {
	return &Rewards{api: api, settings: newSettings(opts)}
}

func (r *Rewards) AwardXP(ctx context.Context, userID string, a Award) (AwardResult, error) {
	return r.award(ctx, userID, a, "xp", r.api.AwardXP,
		func(p *economypb.Profile) int32 { return p.Xp },
		func(req *economypb.UpdateBalancesRequest, v int32) { req.Xp = &v })
}

func (r *Rewards) AwardGems(ctx context.Context, userID string, a Award) (AwardResult, error) {
	return r.award(ctx, userID, a, "gems", r.api.AwardGems,
		func(p *economypb.Profile) int32 { return p.Gems },
		func(req *economypb.UpdateBalancesRequest, v int32) { req.Gems = &v })
}

type awardCall func(context.Context, *economypb.AwardRequest, ...grpc.CallOption) (*economypb.AwardResponse, error)

func (r *Rewards) award(
	ctx context.Context,
	userID string,
	a Award,
	currency string,
	remote awardCall,
	get func(*economypb.Profile) int32,
	set func(*economypb.UpdateBalancesRequest, int32),
) (AwardResult, error) {
	callCtx, cancel := r.call(ctx)
	res, err := remote(callCtx, a.request(userID))
	cancel()
	if err == nil {
		return AwardResult{NewBalance: int(res.NewBalance), TransactionID: res.TransactionId}, nil
	}
	if !isRemoteFailure(err) {
		return AwardResult{}, err
	}
	log.Printf("award %s for %s failed, writing balance directly: %v", currency, userID, err)

	callCtx, cancel = r.call(ctx)
	defer cancel()
	prof, err := r.api.GetProfile(callCtx, &economypb.UserRequest{UserId: userID})
	if err == nil && prof.GetProfile() == nil {
		err = ErrEmptyProfile
	}
	if err != nil {
		return AwardResult{}, fmt.Errorf("award %s fallback read: %w", currency, err)
	}
	balance := get(prof.GetProfile()) + int32(a.Amount)
	req := &economypb.UpdateBalancesRequest{UserId: userID}
	set(req, balance)
	if _, err := r.api.UpdateProfileBalances(callCtx, req); err != nil {
		return AwardResult{}, fmt.Errorf("award %s fallback write: %w", currency, err)
	}
	return AwardResult{NewBalance: int(balance), Fallback: true}, nil
}
