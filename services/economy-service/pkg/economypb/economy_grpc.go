package economypb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const EconomyService_ServiceName = "economy.EconomyService"

const (
	EconomyService_CreateProfile_FullMethodName         = "/economy.EconomyService/CreateProfile"
	EconomyService_GetProfile_FullMethodName            = "/economy.EconomyService/GetProfile"
	EconomyService_UpdateProfileBalances_FullMethodName = "/economy.EconomyService/UpdateProfileBalances"
	EconomyService_CheckAndRefillHearts_FullMethodName  = "/economy.EconomyService/CheckAndRefillHearts"
	EconomyService_DeductHearts_FullMethodName          = "/economy.EconomyService/DeductHearts"
	EconomyService_AwardHearts_FullMethodName           = "/economy.EconomyService/AwardHearts"
	EconomyService_AwardXP_FullMethodName               = "/economy.EconomyService/AwardXP"
	EconomyService_AwardGems_FullMethodName             = "/economy.EconomyService/AwardGems"
	EconomyService_ConvertGemsToHearts_FullMethodName   = "/economy.EconomyService/ConvertGemsToHearts"
	EconomyService_AddPollenToJar_FullMethodName        = "/economy.EconomyService/AddPollenToJar"
	EconomyService_GetJarProgress_FullMethodName        = "/economy.EconomyService/GetJarProgress"
	EconomyService_GenerateMysteryGift_FullMethodName   = "/economy.EconomyService/GenerateMysteryGift"
	EconomyService_GetUnclaimedGift_FullMethodName      = "/economy.EconomyService/GetUnclaimedGift"
	EconomyService_ClaimMysteryGift_FullMethodName      = "/economy.EconomyService/ClaimMysteryGift"
	EconomyService_GetActiveFlamingBadge_FullMethodName = "/economy.EconomyService/GetActiveFlamingBadge"
	EconomyService_GetLeaderboard_FullMethodName        = "/economy.EconomyService/GetLeaderboard"
	EconomyService_Watch_FullMethodName                 = "/economy.EconomyService/Watch"
)

type EconomyServiceClient interface {
	CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	GetProfile(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	UpdateProfileBalances(ctx context.Context, in *UpdateBalancesRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	CheckAndRefillHearts(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*RefillResponse, error)
	DeductHearts(ctx context.Context, in *DeductHeartsRequest, opts ...grpc.CallOption) (*HeartsResponse, error)
	AwardHearts(ctx context.Context, in *AwardRequest, opts ...grpc.CallOption) (*HeartsResponse, error)
	AwardXP(ctx context.Context, in *AwardRequest, opts ...grpc.CallOption) (*AwardResponse, error)
	AwardGems(ctx context.Context, in *AwardRequest, opts ...grpc.CallOption) (*AwardResponse, error)
	ConvertGemsToHearts(ctx context.Context, in *ConvertGemsRequest, opts ...grpc.CallOption) (*ConvertGemsResponse, error)
	AddPollenToJar(ctx context.Context, in *AddPollenRequest, opts ...grpc.CallOption) (*AddPollenResponse, error)
	GetJarProgress(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*JarResponse, error)
	GenerateMysteryGift(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*GiftResponse, error)
	GetUnclaimedGift(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*GiftResponse, error)
	ClaimMysteryGift(ctx context.Context, in *ClaimGiftRequest, opts ...grpc.CallOption) (*ClaimGiftResponse, error)
	GetActiveFlamingBadge(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*BadgeResponse, error)
	GetLeaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error)
	Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error)
}

type economyServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEconomyServiceClient(cc grpc.ClientConnInterface) EconomyServiceClient {
	return &economyServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *economyServiceClient) CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, EconomyService_CreateProfile_FullMethodName, in, opts)
}

func (c *economyServiceClient) GetProfile(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, EconomyService_GetProfile_FullMethodName, in, opts)
}

func (c *economyServiceClient) UpdateProfileBalances(ctx context.Context, in *UpdateBalancesRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, EconomyService_UpdateProfileBalances_FullMethodName, in, opts)
}

func (c *economyServiceClient) CheckAndRefillHearts(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*RefillResponse, error) {
	return invoke[RefillResponse](ctx, c.cc, EconomyService_CheckAndRefillHearts_FullMethodName, in, opts)
}

func (c *economyServiceClient) DeductHearts(ctx context.Context, in *DeductHeartsRequest, opts ...grpc.CallOption) (*HeartsResponse, error) {
	return invoke[HeartsResponse](ctx, c.cc, EconomyService_DeductHearts_FullMethodName, in, opts)
}

func (c *economyServiceClient) AwardHearts(ctx context.Context, in *AwardRequest, opts ...grpc.CallOption) (*HeartsResponse, error) {
	return invoke[HeartsResponse](ctx, c.cc, EconomyService_AwardHearts_FullMethodName, in, opts)
}

func (c *economyServiceClient) AwardXP(ctx context.Context, in *AwardRequest, opts ...grpc.CallOption) (*AwardResponse, error) {
	return invoke[AwardResponse](ctx, c.cc, EconomyService_AwardXP_FullMethodName, in, opts)
}

func (c *economyServiceClient) AwardGems(ctx context.Context, in *AwardRequest, opts ...grpc.CallOption) (*AwardResponse, error) {
	return invoke[AwardResponse](ctx, c.cc, EconomyService_AwardGems_FullMethodName, in, opts)
}

func (c *economyServiceClient) ConvertGemsToHearts(ctx context.Context, in *ConvertGemsRequest, opts ...grpc.CallOption) (*ConvertGemsResponse, error) {
	return invoke[ConvertGemsResponse](ctx, c.cc, EconomyService_ConvertGemsToHearts_FullMethodName, in, opts)
}

func (c *economyServiceClient) AddPollenToJar(ctx context.Context, in *AddPollenRequest, opts ...grpc.CallOption) (*AddPollenResponse, error) {
	return invoke[AddPollenResponse](ctx, c.cc, EconomyService_AddPollenToJar_FullMethodName, in, opts)
}

func (c *economyServiceClient) GetJarProgress(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*JarResponse, error) {
	return invoke[JarResponse](ctx, c.cc, EconomyService_GetJarProgress_FullMethodName, in, opts)
}

func (c *economyServiceClient) GenerateMysteryGift(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*GiftResponse, error) {
	return invoke[GiftResponse](ctx, c.cc, EconomyService_GenerateMysteryGift_FullMethodName, in, opts)
}

func (c *economyServiceClient) GetUnclaimedGift(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*GiftResponse, error) {
	return invoke[GiftResponse](ctx, c.cc, EconomyService_GetUnclaimedGift_FullMethodName, in, opts)
}

func (c *economyServiceClient) ClaimMysteryGift(ctx context.Context, in *ClaimGiftRequest, opts ...grpc.CallOption) (*ClaimGiftResponse, error) {
	return invoke[ClaimGiftResponse](ctx, c.cc, EconomyService_ClaimMysteryGift_FullMethodName, in, opts)
}

func (c *economyServiceClient) GetActiveFlamingBadge(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*BadgeResponse, error) {
	return invoke[BadgeResponse](ctx, c.cc, EconomyService_GetActiveFlamingBadge_FullMethodName, in, opts)
}

func (c *economyServiceClient) GetLeaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error) {
	return invoke[LeaderboardResponse](ctx, c.cc, EconomyService_GetLeaderboard_FullMethodName, in, opts)
}

func (c *economyServiceClient) Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	stream, err := c.cc.NewStream(ctx, &EconomyService_ServiceDesc.Streams[0], EconomyService_Watch_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchRequest, Event]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type EconomyServiceServer interface {
	CreateProfile(context.Context, *CreateProfileRequest) (*ProfileResponse, error)
	GetProfile(context.Context, *UserRequest) (*ProfileResponse, error)
	UpdateProfileBalances(context.Context, *UpdateBalancesRequest) (*ProfileResponse, error)
	CheckAndRefillHearts(context.Context, *UserRequest) (*RefillResponse, error)
	DeductHearts(context.Context, *DeductHeartsRequest) (*HeartsResponse, error)
	AwardHearts(context.Context, *AwardRequest) (*HeartsResponse, error)
	AwardXP(context.Context, *AwardRequest) (*AwardResponse, error)
	AwardGems(context.Context, *AwardRequest) (*AwardResponse, error)
	ConvertGemsToHearts(context.Context, *ConvertGemsRequest) (*ConvertGemsResponse, error)
	AddPollenToJar(context.Context, *AddPollenRequest) (*AddPollenResponse, error)
	GetJarProgress(context.Context, *UserRequest) (*JarResponse, error)
	GenerateMysteryGift(context.Context, *UserRequest) (*GiftResponse, error)
	GetUnclaimedGift(context.Context, *UserRequest) (*GiftResponse, error)
	ClaimMysteryGift(context.Context, *ClaimGiftRequest) (*ClaimGiftResponse, error)
	GetActiveFlamingBadge(context.Context, *UserRequest) (*BadgeResponse, error)
	GetLeaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error)
	Watch(*WatchRequest, grpc.ServerStreamingServer[Event]) error
	mustEmbedUnimplementedEconomyServiceServer()
}

// UnimplementedEconomyServiceServer must be embedded by every server
// implementation.
type UnimplementedEconomyServiceServer struct{}

func (UnimplementedEconomyServiceServer) CreateProfile(context.Context, *CreateProfileRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProfile not implemented")
}
func (UnimplementedEconomyServiceServer) GetProfile(context.Context, *UserRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedEconomyServiceServer) UpdateProfileBalances(context.Context, *UpdateBalancesRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProfileBalances not implemented")
}
func (UnimplementedEconomyServiceServer) CheckAndRefillHearts(context.Context, *UserRequest) (*RefillResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckAndRefillHearts not implemented")
}
func (UnimplementedEconomyServiceServer) DeductHearts(context.Context, *DeductHeartsRequest) (*HeartsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeductHearts not implemented")
}
func (UnimplementedEconomyServiceServer) AwardHearts(context.Context, *AwardRequest) (*HeartsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AwardHearts not implemented")
}
func (UnimplementedEconomyServiceServer) AwardXP(context.Context, *AwardRequest) (*AwardResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AwardXP not implemented")
}
func (UnimplementedEconomyServiceServer) AwardGems(context.Context, *AwardRequest) (*AwardResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AwardGems not implemented")
}
func (UnimplementedEconomyServiceServer) ConvertGemsToHearts(context.Context, *ConvertGemsRequest) (*ConvertGemsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConvertGemsToHearts not implemented")
}
func (UnimplementedEconomyServiceServer) AddPollenToJar(context.Context, *AddPollenRequest) (*AddPollenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddPollenToJar not implemented")
}
func (UnimplementedEconomyServiceServer) GetJarProgress(context.Context, *UserRequest) (*JarResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetJarProgress not implemented")
}
func (UnimplementedEconomyServiceServer) GenerateMysteryGift(context.Context, *UserRequest) (*GiftResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateMysteryGift not implemented")
}
func (UnimplementedEconomyServiceServer) GetUnclaimedGift(context.Context, *UserRequest) (*GiftResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUnclaimedGift not implemented")
}
func (UnimplementedEconomyServiceServer) ClaimMysteryGift(context.Context, *ClaimGiftRequest) (*ClaimGiftResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ClaimMysteryGift not implemented")
}
func (UnimplementedEconomyServiceServer) GetActiveFlamingBadge(context.Context, *UserRequest) (*BadgeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetActiveFlamingBadge not implemented")
}
func (UnimplementedEconomyServiceServer) GetLeaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLeaderboard not implemented")
}
func (UnimplementedEconomyServiceServer) Watch(*WatchRequest, grpc.ServerStreamingServer[Event]) error {
	return status.Error(codes.Unimplemented, "method Watch not implemented")
}
func (UnimplementedEconomyServiceServer) mustEmbedUnimplementedEconomyServiceServer() {}

func RegisterEconomyServiceServer(s grpc.ServiceRegistrar, srv EconomyServiceServer) {
	s.RegisterService(&EconomyService_ServiceDesc, srv)
}

// unary builds the method handler for one request/response RPC.
func unary[Req any, Resp any](name string, call func(EconomyServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + EconomyService_ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(EconomyServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(EconomyServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func _EconomyService_Watch_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(EconomyServiceServer).Watch(m, &grpc.GenericServerStream[WatchRequest, Event]{ServerStream: stream})
}

var EconomyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: EconomyService_ServiceName,
	HandlerType: (*EconomyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateProfile", EconomyServiceServer.CreateProfile),
		unary("GetProfile", EconomyServiceServer.GetProfile),
		unary("UpdateProfileBalances", EconomyServiceServer.UpdateProfileBalances),
		unary("CheckAndRefillHearts", EconomyServiceServer.CheckAndRefillHearts),
		unary("DeductHearts", EconomyServiceServer.DeductHearts),
		unary("AwardHearts", EconomyServiceServer.AwardHearts),
		unary("AwardXP", EconomyServiceServer.AwardXP),
		unary("AwardGems", EconomyServiceServer.AwardGems),
		unary("ConvertGemsToHearts", EconomyServiceServer.ConvertGemsToHearts),
		unary("AddPollenToJar", EconomyServiceServer.AddPollenToJar),
		unary("GetJarProgress", EconomyServiceServer.GetJarProgress),
		unary("GenerateMysteryGift", EconomyServiceServer.GenerateMysteryGift),
		unary("GetUnclaimedGift", EconomyServiceServer.GetUnclaimedGift),
		unary("ClaimMysteryGift", EconomyServiceServer.ClaimMysteryGift),
		unary("GetActiveFlamingBadge", EconomyServiceServer.GetActiveFlamingBadge),
		unary("GetLeaderboard", EconomyServiceServer.GetLeaderboard),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       _EconomyService_Watch_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "economy.proto",
}
