package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KothuriSowmya/blood-donation-backend/internal/application/auth"
	"github.com/KothuriSowmya/blood-donation-backend/internal/application/ports"
	"github.com/KothuriSowmya/blood-donation-backend/internal/config"
	infraauth "github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/auth"
	httprouter "github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/http"
	"github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/http/handlers"
	"github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/http/middleware"
	"github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/lockout"
	"github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/persistence/postgres"
	"github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	if err := userRepo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	issuer, err := infraauth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("create token issuer")
	}

	var lockoutStore ports.LoginLockoutStore
	if redisClient != nil {
		lockoutStore = lockout.NewRedisStore(redisClient, cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds)
	} else {
		lockoutStore = lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds)
	}

	registerUC := auth.NewRegister(userRepo, hasher)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, lockoutStore)
	updateProfileUC := auth.NewUpdateProfile(userRepo)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, updateProfileUC, userRepo, log)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)
	requireJWT := middleware.NewAuthValidator(issuer).Handler

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		HealthHandler: healthHandler,
		RequireJWT:    requireJWT,
		Log:           log,
		CORS:          corsMiddleware,
		Secure:        secureMiddleware,
		IPRateLimit:   ipLimit,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
