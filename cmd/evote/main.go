package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpadapter "github.com/bogi99/evote/internal/adapter/http"
	"github.com/bogi99/evote/internal/adapter/persistence"
	"github.com/bogi99/evote/internal/config"
	"github.com/bogi99/evote/internal/logger"
	"github.com/bogi99/evote/internal/service/auth"
	"github.com/bogi99/evote/internal/service/ratelimit"
	"github.com/bogi99/evote/internal/usecase"
)

const version = "1.0.0"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	runMigrate := flag.Bool("migrate", false, "apply database schema and exit")
	runSeed := flag.Bool("seed", false, "seed reference data and exit")
	createAdmin := flag.String("create-admin", "", "create an admin user (username), reads ADMIN_PASSWORD, and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("evote " + version)
		return
	}

	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging)

	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.GetDatabaseURL())
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxConnections)
	db.SetConnMaxIdleTime(cfg.Database.MaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.WithError(err).Fatal("failed to ping database")
	}
	log.WithField("host", cfg.Database.Host).Info("database connection established")

	if *runMigrate {
		if err := persistence.Migrate(db); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
		log.Info("schema applied")
		return
	}
	if *runSeed {
		if err := persistence.Seed(db); err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
		log.Info("reference data seeded")
		return
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if cfg.Security.RateLimitEnabled {
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unavailable, rate limiting will fail open")
		}
	}

	// Repositories
	voterRepo := persistence.NewPostgresVoterRepository(db)
	precinctRepo := persistence.NewPostgresPrecinctRepository(db)
	electionRepo := persistence.NewPostgresElectionRepository(db)
	ballotRepo := persistence.NewPostgresBallotRepository(db)
	voteRepo := persistence.NewPostgresVoteRepository(db)
	auditRepo := persistence.NewPostgresAuditRepository(db)
	resultsRepo := persistence.NewPostgresResultsCacheRepository(db)
	adminRepo := persistence.NewPostgresAdminRepository(db)

	// Services
	tokenService := auth.NewJWTService(cfg.Security.JWTSecret, cfg.Security.JWTExpiration)
	passwordService := auth.NewBcryptPasswordService(cfg.Security.BcryptCost)
	rateLimitService := ratelimit.NewRedisRateLimitService(redisClient)

	// Use cases
	registrationUseCase := usecase.NewRegistrationUseCase(voterRepo, precinctRepo, auditRepo, log)
	configuratorUseCase := usecase.NewConfiguratorUseCase(electionRepo, ballotRepo, precinctRepo, voterRepo, voteRepo, auditRepo, log)
	boothUseCase := usecase.NewBoothUseCase(voterRepo, electionRepo, ballotRepo, voteRepo, auditRepo, log)
	tabulatorUseCase := usecase.NewTabulatorUseCase(electionRepo, ballotRepo, voterRepo, voteRepo, resultsRepo, auditRepo, log)
	authUseCase := usecase.NewAuthUseCase(adminRepo, passwordService, tokenService, log)

	if *createAdmin != "" {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			log.Fatal("ADMIN_PASSWORD must be set to create an admin user")
		}
		admin, err := authUseCase.CreateAdmin(ctx, *createAdmin, password)
		if err != nil {
			log.WithError(err).Fatal("failed to create admin user")
		}
		log.WithField("username", admin.Username).Info("admin user created")
		return
	}

	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Port:             cfg.Server.Port,
			ReadTimeout:      cfg.Server.ReadTimeout,
			WriteTimeout:     cfg.Server.WriteTimeout,
			IdleTimeout:      cfg.Server.IdleTimeout,
			RateLimitEnabled: cfg.Security.RateLimitEnabled,
			CastVoteLimit:    cfg.Security.CastVoteLimit,
			CastVoteWindow:   cfg.Security.CastVoteWindow,
		},
		registrationUseCase,
		configuratorUseCase,
		boothUseCase,
		tabulatorUseCase,
		authUseCase,
		tokenService,
		rateLimitService,
		log,
	)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("server exited")
}
