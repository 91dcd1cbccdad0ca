package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/client"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/config"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/i18n"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/middleware"
	handlers "github.com/waste3d/honeyhive/services/api-gateway/internal/transport/http"
)

func main() {
	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AccessSecret == "" {
		log.Fatal("ACCESS_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Переводы ошибок (en, ru)
	tr, err := i18n.Load(cfg.DefaultLang)
	if err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	deps := handlers.Deps{
		Tokens:     middleware.NewTokenValidator(cfg.AccessSecret),
		Translator: tr,
		Origins:    cfg.Origins(),
	}

	// 3. Redis: лимиты и ключи идемпотентности. Без него просто выключены
	if cfg.REDIS_ADDR != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.REDIS_ADDR,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		log.Println("Connected to Redis at", cfg.REDIS_ADDR)

		deps.Limiter = middleware.NewRateLimiter(rdb, tr)
		deps.Idempotency = middleware.NewIdempotency(rdb, tr, middleware.DefaultIdempotencyTTL)
	} else {
		log.Println("REDIS_ADDR not set, rate limits and idempotency keys are off")
	}

	// 4. gRPC Клиент для Economy
	economyClient, err := client.NewEconomyClient(cfg.EconomySvcUrl)
	if err != nil {
		log.Fatalf("Failed to connect to Economy Service: %v", err)
	}
	defer economyClient.Close()
	log.Println("Economy Service at", cfg.EconomySvcUrl)

	deps.Economy = handlers.NewEconomyHandler(economyClient.Client, tr, client.WithCallTimeout(cfg.RPCTimeout))

	// 5. Роутер и запуск HTTP сервера
	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: handlers.NewRouter(deps),
	}

	go func() {
		log.Printf("API Gateway running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down API Gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
