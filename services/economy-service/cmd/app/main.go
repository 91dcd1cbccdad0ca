package main

import (
	"context"
	"log"
	"net"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/waste3d/honeyhive/services/economy-service/config"
	"github.com/waste3d/honeyhive/services/economy-service/internal/application/usecase"
	"github.com/waste3d/honeyhive/services/economy-service/internal/infrastructure/cache"
	"github.com/waste3d/honeyhive/services/economy-service/internal/infrastructure/events"
	"github.com/waste3d/honeyhive/services/economy-service/internal/infrastructure/repository"
	grpc_server "github.com/waste3d/honeyhive/services/economy-service/internal/transport/grpc"
	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// 1. Загрузка конфига
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Хранилище (Postgres или память)
	var repo usecase.EconomyRepository
	if cfg.StoreDriver == "memory" {
		log.Println("Using in-memory store, balances will not survive a restart")
		repo = repository.NewMemoryRepository()
	} else {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		// Миграции (profiles, jars, gifts, badges, transactions)
		log.Println("Running migrations...")
		if err := db.AutoMigrate(repository.Models()...); err != nil {
			log.Fatalf("Failed to migrate DB: %v", err)
		}
		repo = repository.NewEconomyRepository(db)
	}

	// 3. События и лидерборд через Redis
	var (
		bus    events.Bus
		ranker usecase.XPRanker
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis at", cfg.RedisAddr)
		bus = events.NewRedisBus(rdb)
		ranker = cache.NewLeaderboardCache(rdb)
	} else {
		log.Println("REDIS_ADDR not set, events stay in-process and the leaderboard reads the database")
		bus = events.NewMemoryBus()
	}

	// 4. Инициализация слоев
	economyUC := usecase.NewEconomyUseCase(repo, bus, ranker)
	economyServer := grpc_server.NewEconomyServer(economyUC, bus)

	// 5. Запуск gRPC сервера
	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GRPCPort, err)
	}

	grpcServer := grpc.NewServer()
	economypb.RegisterEconomyServiceServer(grpcServer, economyServer)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(economypb.EconomyService_ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down economy service...")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	}()

	log.Printf("Economy Service running on %s", cfg.GRPCPort)
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
