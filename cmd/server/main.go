package main

import (
	"context"
	"net/http"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"farmgrocery/internal/app/di"
	"farmgrocery/internal/app/router"
	authadapters "farmgrocery/internal/feature/auth/adapters"
	authhandler "farmgrocery/internal/feature/auth/transport/handler"
	authusecase "farmgrocery/internal/feature/auth/usecase"
	farmadapters "farmgrocery/internal/feature/farms/adapters"
	farmhandler "farmgrocery/internal/feature/farms/transport/handler"
	farmusecase "farmgrocery/internal/feature/farms/usecase"
	producthandler "farmgrocery/internal/feature/products/transport/handler"
	productusecase "farmgrocery/internal/feature/products/usecase"
	"farmgrocery/internal/platform/config"
	infradb "farmgrocery/internal/platform/db"
	"farmgrocery/internal/platform/logger"
	"farmgrocery/internal/platform/metrics"
	infraredis "farmgrocery/internal/platform/redis"
	"farmgrocery/internal/platform/session"
	"farmgrocery/internal/platform/token"
	"farmgrocery/internal/platform/view"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.Server.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	if cfg.Session.Secret == "dev-only-secret" && cfg.Server.Env == "production" {
		log.Fatal("SESSION_SECRET must be set in production")
	}

	// db
	gdb := infradb.OpenDB(cfg.DB)

	// Redis; the app degrades gracefully without it (db-backed sessions,
	// uncached product lists).
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.Redis); err != nil {
		log.Warn("redis unavailable, falling back to database sessions")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("failed to close redis client", zap.Error(err))
			}
		}()
	}

	// Repositories
	userRepo := authadapters.NewUserGorm(gdb)
	farmRepo := farmadapters.NewFarmGorm(gdb)
	productRepo := di.NewProductRepository(rdb, gdb, 0)
	sessionRepo := di.NewSessionRepository(rdb, gdb)

	// Redis expires its own sessions; the db fallback needs a periodic sweep.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := sessionRepo.DeleteExpired(ctx); err != nil {
				log.Warn("session sweep failed", zap.Error(err))
			} else if n > 0 {
				log.Info("swept expired sessions", zap.Int64("count", n))
			}
			cancel()
		}
	}()

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo)
	farmUC := farmusecase.NewFarmUsecase(farmRepo, userRepo, productRepo)
	productUC := productusecase.NewProductUsecase(productRepo, farmRepo)

	// Session manager
	codec := token.NewCodec(cfg.Session.Secret, cfg.Session.TTL)
	sessions := session.NewManager(sessionRepo, userRepo, codec, cfg.Session, cfg.Server.Env == "production")

	// Handlers
	deps := router.Deps{
		Sessions:    sessions,
		Metrics:     metrics.NewHTTPMetrics(),
		Auth:        authhandler.NewAuthHandler(authUC),
		Farms:       farmhandler.NewFarmHandler(farmUC),
		Products:    producthandler.NewProductHandler(productUC),
		FarmLoad:    farmUC,
		ProductLoad: productUC,
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		// HTML forms cannot issue PUT/DELETE; the override wrapper
		// rewrites the method before the mux matches.
		Handler:      view.MethodOverride(router.NewRouter(deps)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Info("listening", zap.String("addr", cfg.Server.Addr))
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
