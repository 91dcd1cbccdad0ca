package grpc_server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/waste3d/honeyhive/services/economy-service/internal/application/usecase"
	"github.com/waste3d/honeyhive/services/economy-service/internal/infrastructure/events"
	"github.com/waste3d/honeyhive/services/economy-service/internal/infrastructure/repository"
	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type testEnv struct {
	client economypb.EconomyServiceClient
	bus    *events.MemoryBus
	user   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	bus := events.NewMemoryBus()
	uc := usecase.NewEconomyUseCase(repository.NewMemoryRepository(), bus, nil)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	economypb.RegisterEconomyServiceServer(srv, NewEconomyServer(uc, bus))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	env := &testEnv{client: economypb.NewEconomyServiceClient(conn), bus: bus, user: uuid.NewString()}
	if _, err := env.client.CreateProfile(context.Background(), &economypb.CreateProfileRequest{UserId: env.user, Username: "bee"}); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	return env
}

func TestEconomyServerRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hearts, err := env.client.DeductHearts(ctx, &economypb.DeductHeartsRequest{UserId: env.user, Amount: 5})
	if err != nil || hearts.Hearts != 0 {
		t.Fatalf("DeductHearts = %+v, %v", hearts, err)
	}

	refill, err := env.client.CheckAndRefillHearts(ctx, &economypb.UserRequest{UserId: env.user})
	if err != nil {
		t.Fatalf("CheckAndRefillHearts: %v", err)
	}
	if refill.Refilled || refill.TimeUntilNextRefillMs <= 0 || refill.MaxHearts != 5 {
		t.Errorf("unexpected refill %+v", refill)
	}

	xp, err := env.client.AwardXP(ctx, &economypb.AwardRequest{UserId: env.user, Amount: 30, Source: "quiz", ChapterId: "ch-2"})
	if err != nil || xp.NewBalance != 30 || xp.TransactionId == "" {
		t.Errorf("AwardXP = %+v, %v", xp, err)
	}

	board, err := env.client.GetLeaderboard(ctx, &economypb.LeaderboardRequest{Limit: 5})
	if err != nil || len(board.Entries) != 1 || board.Entries[0].Shield != "Silver" {
		t.Errorf("GetLeaderboard = %+v, %v", board, err)
	}

	gift, err := env.client.GetUnclaimedGift(ctx, &economypb.UserRequest{UserId: env.user})
	if err != nil || gift.GetGift() != nil {
		t.Errorf("GetUnclaimedGift = %+v, %v", gift, err)
	}
}

func TestEconomyServerErrorCodes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		want   codes.Code
		reason string
	}{
		{"bad user id", func() error {
			_, err := env.client.GetProfile(ctx, &economypb.UserRequest{UserId: "nope"})
			return err
		}, codes.InvalidArgument, economypb.ReasonInvalidID},
		{"unknown profile", func() error {
			_, err := env.client.GetProfile(ctx, &economypb.UserRequest{UserId: uuid.NewString()})
			return err
		}, codes.NotFound, economypb.ReasonProfileNotFound},
		{"non-positive award", func() error {
			_, err := env.client.AwardGems(ctx, &economypb.AwardRequest{UserId: env.user})
			return err
		}, codes.InvalidArgument, economypb.ReasonInvalidAmount},
		{"jar not full", func() error {
			_, err := env.client.GenerateMysteryGift(ctx, &economypb.UserRequest{UserId: env.user})
			return err
		}, codes.FailedPrecondition, economypb.ReasonJarNotFull},
		{"insufficient gems", func() error {
			_, err := env.client.ConvertGemsToHearts(ctx, &economypb.ConvertGemsRequest{UserId: env.user, HeartsAmount: 1, GemCost: 10})
			return err
		}, codes.FailedPrecondition, economypb.ReasonInsufficientGems},
		{"unknown gift", func() error {
			_, err := env.client.ClaimMysteryGift(ctx, &economypb.ClaimGiftRequest{UserId: env.user, GiftId: uuid.NewString()})
			return err
		}, codes.NotFound, economypb.ReasonGiftNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if got := status.Code(err); got != tt.want {
				t.Errorf("code = %v, want %v", got, tt.want)
			}
			if got := economypb.Reason(err); got != tt.reason {
				t.Errorf("reason = %q, want %q", got, tt.reason)
			}
		})
	}
}

func TestEconomyServerWatch(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := env.client.Watch(ctx, &economypb.WatchRequest{UserId: env.user, Kinds: []string{economypb.KindGiftCreated}})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	for env.bus.Subscribers(env.user) == 0 {
		select {
		case <-ctx.Done():
			t.Fatal("watch never subscribed")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if _, err := env.client.AddPollenToJar(ctx, &economypb.AddPollenRequest{UserId: env.user, PollenEarned: 300}); err != nil {
		t.Fatalf("AddPollenToJar: %v", err)
	}
	gen, err := env.client.GenerateMysteryGift(ctx, &economypb.UserRequest{UserId: env.user})
	if err != nil {
		t.Fatalf("GenerateMysteryGift: %v", err)
	}

	ev, err := stream.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if ev.Kind != economypb.KindGiftCreated || ev.Gift == nil || ev.Gift.Id != gen.Gift.Id {
		t.Errorf("unexpected event %+v", ev)
	}
}
