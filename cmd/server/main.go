package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xaramillo/crossfit/internal/api"
	"github.com/xaramillo/crossfit/internal/config"
	"github.com/xaramillo/crossfit/internal/repository/mongo"
	"github.com/xaramillo/crossfit/internal/service"
	"github.com/xaramillo/crossfit/internal/storage"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	log.Info().Msg("Starting CrossFit PR Tracker server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load config")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to MongoDB")
	}
	defer func() {
		log.Info().Msg("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info().Str("database", cfg.Database.Name).Msg("Database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureWeightliftIndexes(ctx, appDB.Collection("weightlift_prs"))
		mongo.EnsureBenchmarkIndexes(ctx, appDB.Collection("benchmark_prs"))
	}()

	// --- Archive Storage (optional, for the legacy bulk import) ---
	var archiveStore storage.ArchiveStore
	if cfg.S3.BucketName != "" {
		archiveStore, err = storage.NewS3Archive(cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize archive storage")
		}
	} else {
		log.Info().Msg("No archive bucket configured; bulk import accepts inline payloads only")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	weightliftRepo := mongo.NewMongoWeightliftRepository(appDB)
	benchmarkRepo := mongo.NewMongoBenchmarkRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	recordService := service.NewRecordService(weightliftRepo, benchmarkRepo)
	prService := service.NewPRService(weightliftRepo, benchmarkRepo)
	userService := service.NewUserService(userRepo, weightliftRepo, benchmarkRepo)

	// --- Bootstrap Default Admin ---
	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := authService.EnsureDefaultAdmin(bootstrapCtx)
	bootstrapCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure default admin account")
	}
	if created {
		log.Warn().
			Str("username", service.DefaultAdminUsername).
			Msg("SECURITY: created default admin account with the well-known default password; change it immediately")
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, authService, recordService, prService, userService, archiveStore)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
