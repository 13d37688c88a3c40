// @title           Care Platform API
// @version         1.0
// @description     Authorization backend for a multi-tenant staff/patient platform.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/carebridge/care-platform/internal/api"
	"github.com/carebridge/care-platform/internal/api/middleware"
	"github.com/carebridge/care-platform/internal/core/ports"
	"github.com/carebridge/care-platform/internal/core/service"
	"github.com/carebridge/care-platform/internal/infrastructure/db/mongo"
	"github.com/carebridge/care-platform/internal/infrastructure/db/redis"
	"github.com/carebridge/care-platform/internal/infrastructure/identity"
	"github.com/carebridge/care-platform/internal/infrastructure/queue"
	"github.com/carebridge/care-platform/internal/pkg/config"
	"github.com/carebridge/care-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	profileRepo := mongo.NewProfileRepository(db)
	departmentRepo := mongo.NewDepartmentRepository(db)
	memberRepo := mongo.NewMemberRepository(db)
	invitationRepo := mongo.NewInvitationRepository(db)
	counterRepo := mongo.NewCounterRepository(db)
	allowlistRepo := mongo.NewAllowlistRepository(db)
	patientRepo := mongo.NewPatientRepository(db)
	auditRepo := mongo.NewAuditRepository(db)

	if err := mongo.EnsureIndexes(ctx,
		profileRepo, departmentRepo, memberRepo, invitationRepo, allowlistRepo, patientRepo, auditRepo,
	); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Identity provider ---
	provider, err := identity.NewFirebaseProvider(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("identity provider init failed")
	}
	tokens := identity.NewRESTTokenGateway(cfg.Firebase.APIKey)

	var verifier ports.TokenVerifier = provider
	if cfg.DevAuth.Enabled && cfg.Env != "production" {
		log.Warn().Msg("dev token verifier enabled, do not use in production")
		verifier = identity.NewDevVerifier(cfg.DevAuth.Secret)
	}

	// --- Services ---
	profileService := service.NewProfileService(provider, tokens, profileRepo, cfg.FounderEmail, log)
	invitationService := service.NewInvitationService(invitationRepo, allowlistRepo, profileRepo, provider, cfg.FounderEmail, cfg.Invite.DefaultTTL, log)
	departmentService := service.NewDepartmentService(departmentRepo, memberRepo, counterRepo, cfg.Case.Prefix, cfg.Case.Width, log)
	patientService := service.NewPatientService(patientRepo, provider, log)
	allowlistService := service.NewAllowlistService(allowlistRepo, log)

	// --- Async audit trail ---
	recorder := queue.NewRecorder(cfg.Audit.Workers, auditRepo, log)
	recorder.Start(ctx)

	limiter := redis.NewRateLimiter(rdb, cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow)

	e := api.NewRouter(api.Deps{
		Verifier:    verifier,
		Identity:    provider,
		Tokens:      tokens,
		Profiles:    profileService,
		Invitations: invitationService,
		Departments: departmentService,
		Patients:    patientService,
		Allowlist:   allowlistService,
		Limiter:     limiter,
		Audit:       recorder,
		Mongo:       db,
		Redis:       rdb,
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// Compile-time interface checks for the middleware seams.
var (
	_ middleware.Allower   = (*redis.RateLimiter)(nil)
	_ middleware.AuditSink = (*queue.Recorder)(nil)
)
