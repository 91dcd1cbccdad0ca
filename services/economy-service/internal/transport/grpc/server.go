package grpc_server

import (
	"context"
	"errors"
	"log"

	"github.com/waste3d/honeyhive/services/economy-service/internal/application/usecase"
	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"
	"github.com/waste3d/honeyhive/services/economy-service/internal/infrastructure/events"
	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Subscriber interface {
	Subscribe(ctx context.Context, userID string) (events.Subscription, error)
}

type EconomyServer struct {
	economypb.UnimplementedEconomyServiceServer
	uc  *usecase.EconomyUseCase
	sub Subscriber
}

func NewEconomyServer(uc *usecase.EconomyUseCase, sub Subscriber) *EconomyServer {
	return &EconomyServer{uc: uc, sub: sub}
}

func parseUserID(raw string) (uuid.UUID, error) {
	uid, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, economypb.Error(codes.InvalidArgument, economypb.ReasonInvalidID, "invalid user id")
	}
	return uid, nil
}

// toStatus maps domain failures onto gRPC codes; anything unexpected is logged
// and hidden behind Internal.
func toStatus(op string, err error) error {
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return economypb.Error(m.code, m.reason, err.Error())
		}
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	log.Printf("%s failed: %v", op, err)
	return status.Errorf(codes.Internal, "failed to %s", op)
}

var domainErrors = []struct {
	err    error
	code   codes.Code
	reason string
}{
	{domain.ErrInvalidAmount, codes.InvalidArgument, economypb.ReasonInvalidAmount},
	{domain.ErrGemCostMismatch, codes.InvalidArgument, economypb.ReasonGemCostMismatch},
	{domain.ErrInsufficientGems, codes.FailedPrecondition, economypb.ReasonInsufficientGems},
	{domain.ErrJarNotFull, codes.FailedPrecondition, economypb.ReasonJarNotFull},
	{domain.ErrGiftAlreadyClaimed, codes.FailedPrecondition, economypb.ReasonGiftAlreadyClaimed},
	{domain.ErrProfileNotFound, codes.NotFound, economypb.ReasonProfileNotFound},
	{domain.ErrGiftNotFound, codes.NotFound, economypb.ReasonGiftNotFound},
}

func (s *EconomyServer) CreateProfile(ctx context.Context, req *economypb.CreateProfileRequest) (*economypb.ProfileResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	if req.Username == "" {
		return nil, status.Error(codes.InvalidArgument, "username cannot be empty")
	}
	p, err := s.uc.CreateProfile(ctx, uid, req.Username)
	if err != nil {
		return nil, toStatus("create profile", err)
	}
	return &economypb.ProfileResponse{Profile: toProfile(p)}, nil
}

func (s *EconomyServer) GetProfile(ctx context.Context, req *economypb.UserRequest) (*economypb.ProfileResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	p, err := s.uc.GetProfile(ctx, uid)
	if err != nil {
		return nil, toStatus("get profile", err)
	}
	return &economypb.ProfileResponse{Profile: toProfile(p)}, nil
}

func (s *EconomyServer) UpdateProfileBalances(ctx context.Context, req *economypb.UpdateBalancesRequest) (*economypb.ProfileResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	p, err := s.uc.UpdateBalances(ctx, uid, toBalanceUpdate(req))
	if err != nil {
		return nil, toStatus("update balances", err)
	}
	return &economypb.ProfileResponse{Profile: toProfile(p)}, nil
}

func (s *EconomyServer) CheckAndRefillHearts(ctx context.Context, req *economypb.UserRequest) (*economypb.RefillResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	res, err := s.uc.CheckAndRefillHearts(ctx, uid)
	if err != nil {
		return nil, toStatus("check hearts", err)
	}
	return &economypb.RefillResponse{
		Hearts:                int32(res.Hearts),
		MaxHearts:             int32(res.MaxHearts),
		LastRefillAt:          res.LastRefillAt,
		TimeUntilNextRefillMs: res.TimeUntilRefill.Milliseconds(),
		Refilled:              res.Refilled,
	}, nil
}

func (s *EconomyServer) DeductHearts(ctx context.Context, req *economypb.DeductHeartsRequest) (*economypb.HeartsResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	hearts, err := s.uc.DeductHearts(ctx, uid, int(req.Amount))
	if err != nil {
		return nil, toStatus("deduct hearts", err)
	}
	return &economypb.HeartsResponse{Hearts: int32(hearts)}, nil
}

func (s *EconomyServer) AwardHearts(ctx context.Context, req *economypb.AwardRequest) (*economypb.HeartsResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	hearts, err := s.uc.AwardHearts(ctx, uid, toGrant(req))
	if err != nil {
		return nil, toStatus("award hearts", err)
	}
	return &economypb.HeartsResponse{Hearts: int32(hearts)}, nil
}

func (s *EconomyServer) AwardXP(ctx context.Context, req *economypb.AwardRequest) (*economypb.AwardResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	res, err := s.uc.AwardXP(ctx, uid, toGrant(req))
	if err != nil {
		return nil, toStatus("award xp", err)
	}
	return &economypb.AwardResponse{NewBalance: int32(res.NewBalance), TransactionId: res.TransactionID.String()}, nil
}

func (s *EconomyServer) AwardGems(ctx context.Context, req *economypb.AwardRequest) (*economypb.AwardResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	res, err := s.uc.AwardGems(ctx, uid, toGrant(req))
	if err != nil {
		return nil, toStatus("award gems", err)
	}
	return &economypb.AwardResponse{NewBalance: int32(res.NewBalance), TransactionId: res.TransactionID.String()}, nil
}

func (s *EconomyServer) ConvertGemsToHearts(ctx context.Context, req *economypb.ConvertGemsRequest) (*economypb.ConvertGemsResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	res, err := s.uc.ConvertGemsToHearts(ctx, uid, int(req.HeartsAmount), int(req.GemCost))
	if err != nil {
		return nil, toStatus("convert gems", err)
	}
	return &economypb.ConvertGemsResponse{NewGems: int32(res.NewGems), NewHearts: int32(res.NewHearts)}, nil
}

func (s *EconomyServer) AddPollenToJar(ctx context.Context, req *economypb.AddPollenRequest) (*economypb.AddPollenResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	res, err := s.uc.AddPollenToJar(ctx, uid, int(req.PollenEarned))
	if err != nil {
		return nil, toStatus("add pollen", err)
	}
	return &economypb.AddPollenResponse{
		FillPercent:   int32(res.FillPercent),
		IsFull:        res.IsFull,
		BecameFull:    res.BecameFull,
		PollenInCycle: int32(res.PollenInCycle),
	}, nil
}

func (s *EconomyServer) GetJarProgress(ctx context.Context, req *economypb.UserRequest) (*economypb.JarResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	j, err := s.uc.GetJarProgress(ctx, uid)
	if err != nil {
		return nil, toStatus("get jar", err)
	}
	return &economypb.JarResponse{Jar: toJar(j)}, nil
}

func (s *EconomyServer) GenerateMysteryGift(ctx context.Context, req *economypb.UserRequest) (*economypb.GiftResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	g, err := s.uc.GenerateMysteryGift(ctx, uid)
	if err != nil {
		return nil, toStatus("generate gift", err)
	}
	return &economypb.GiftResponse{Gift: toGift(g)}, nil
}

func (s *EconomyServer) GetUnclaimedGift(ctx context.Context, req *economypb.UserRequest) (*economypb.GiftResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	g, err := s.uc.GetUnclaimedGift(ctx, uid)
	if err != nil {
		return nil, toStatus("get gift", err)
	}
	return &economypb.GiftResponse{Gift: toGift(g)}, nil
}

func (s *EconomyServer) ClaimMysteryGift(ctx context.Context, req *economypb.ClaimGiftRequest) (*economypb.ClaimGiftResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	giftID, err := uuid.Parse(req.GiftId)
	if err != nil {
		return nil, economypb.Error(codes.InvalidArgument, economypb.ReasonInvalidID, "invalid gift id")
	}
	res, err := s.uc.ClaimMysteryGift(ctx, uid, giftID)
	if err != nil {
		return nil, toStatus("claim gift", err)
	}
	return &economypb.ClaimGiftResponse{
		GiftType:       string(res.GiftType),
		GiftAmount:     int32(res.GiftAmount),
		Hearts:         int32(res.Hearts),
		Gems:           int32(res.Gems),
		BadgeExpiresAt: res.BadgeExpiresAt,
	}, nil
}

func (s *EconomyServer) GetActiveFlamingBadge(ctx context.Context, req *economypb.UserRequest) (*economypb.BadgeResponse, error) {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}
	b, err := s.uc.GetActiveFlamingBadge(ctx, uid)
	if err != nil {
		return nil, toStatus("get badge", err)
	}
	return &economypb.BadgeResponse{Badge: toBadge(b)}, nil
}

func (s *EconomyServer) GetLeaderboard(ctx context.Context, req *economypb.LeaderboardRequest) (*economypb.LeaderboardResponse, error) {
	entries, err := s.uc.Leaderboard(ctx, int(req.Limit))
	if err != nil {
		return nil, toStatus("get leaderboard", err)
	}
	out := make([]*economypb.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, &economypb.LeaderboardEntry{
			Rank:     int32(e.Rank),
			UserId:   e.UserID,
			Username: e.Username,
			Xp:       int32(e.XP),
			Shield:   string(e.Shield),
		})
	}
	return &economypb.LeaderboardResponse{Entries: out}, nil
}

// Watch streams the user's events until the client goes away.
func (s *EconomyServer) Watch(req *economypb.WatchRequest, stream grpc.ServerStreamingServer[economypb.Event]) error {
	uid, err := parseUserID(req.UserId)
	if err != nil {
		return err
	}
	if s.sub == nil {
		return status.Error(codes.Unavailable, "event stream is not configured")
	}

	ctx := stream.Context()
	sub, err := s.sub.Subscribe(ctx, uid.String())
	if err != nil {
		log.Printf("subscribe %s: %v", uid, err)
		return status.Error(codes.Unavailable, "failed to subscribe")
	}
	defer sub.Close()

	wanted := make(map[string]bool, len(req.Kinds))
	for _, k := range req.Kinds {
		wanted[k] = true
	}

	for ev := range sub.Events() {
		if len(wanted) > 0 && !wanted[string(ev.Kind)] {
			continue
		}
		if err := stream.Send(toEvent(ev)); err != nil {
			return err
		}
	}
	return ctx.Err()
}
