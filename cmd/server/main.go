package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/k0lab/analysis-gate/internal/api"
	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
	"github.com/k0lab/analysis-gate/internal/core/service"
	"github.com/k0lab/analysis-gate/internal/infrastructure/audit"
	"github.com/k0lab/analysis-gate/internal/infrastructure/config"
	mongodb "github.com/k0lab/analysis-gate/internal/infrastructure/db/mongo"
	redisdb "github.com/k0lab/analysis-gate/internal/infrastructure/db/redis"
	"github.com/k0lab/analysis-gate/internal/infrastructure/store"
	"github.com/k0lab/analysis-gate/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Backends ---
	var (
		mongoDB     *gomongo.Database
		mongoClient *gomongo.Client
		redisClient *goredis.Client
	)

	needsMongo := cfg.Accounts.Backend == "mongo" || cfg.Audit.Sink == "mongo"
	if needsMongo {
		var err error
		mongoClient, mongoDB, err = mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	}

	if cfg.Sessions.Backend == "redis" {
		var err error
		redisClient, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = redisClient.Close() }()
	}

	// --- Account registry ---
	var (
		accounts ports.CredentialStore
		lister   ports.AccountLister
	)
	switch cfg.Accounts.Backend {
	case "mongo":
		repo := mongodb.NewAccountRepository(mongoDB)
		accounts, lister = repo, repo
	case "file":
		fs, err := store.NewFileCredentialStore(cfg.Accounts.File)
		if err != nil {
			log.Fatal().Err(err).Msg("account registry failed to load")
		}
		accounts, lister = fs, fs
	default:
		log.Fatal().Str("backend", cfg.Accounts.Backend).Msg("unknown accounts backend")
	}

	// --- Session store ---
	var sessions ports.SessionStore
	if cfg.Sessions.Backend == "redis" {
		sessions = redisdb.NewSessionStore(redisClient)
	} else {
		sessions = store.NewMemorySessionStore()
	}

	// --- Audit sink ---
	var (
		sink      ports.AccessRecorder
		accessLog ports.AccessLog
	)
	if cfg.Audit.Sink == "mongo" {
		repo := mongodb.NewAccessRepository(mongoDB)
		sink, accessLog = repo, repo
	} else {
		sink = audit.NewConsoleRecorder(log)
	}
	recorder := audit.NewAsyncRecorder(cfg.Audit.Workers, sink, log)
	recorder.Start(ctx)

	// --- Core ---
	hasher, err := service.NewHasher(cfg.HashScheme)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid hash scheme")
	}

	guestToken := domain.GuestToken{
		Value:      cfg.Guest.Token,
		ValidUntil: cfg.Guest.ValidUntil,
	}

	sessionService := service.NewSessionService(
		accounts, sessions, hasher, recorder, guestToken, cfg.TicketSecret, log,
	)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Sessions:     sessionService,
		Accounts:     lister,
		AccessLog:    accessLog,
		GuestToken:   guestToken,
		TicketSecret: cfg.TicketSecret,
		Mongo:        mongoDB,
		Redis:        redisClient,
		Log:          log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("analysis gate listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("shutdown complete")
}
