package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-nest-backend/config"
	_ "go-nest-backend/docs" // Important for Swagger
	v1 "go-nest-backend/internal/delivery/http/v1"
	"go-nest-backend/internal/domain"
	"go-nest-backend/internal/matching"
	"go-nest-backend/internal/repository/memory"
	"go-nest-backend/internal/repository/postgres"
	"go-nest-backend/internal/usecase"
	"go-nest-backend/pkg/database"
	"go-nest-backend/pkg/logger"
	"go-nest-backend/pkg/redis"
	"go-nest-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           NEST Resource Matching API
// @version         1.0
// @description     Matches aid-seeking profiles to shelters and job openings.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting nest backend", "port", cfg.Port)

	// 3. Setup Repositories (postgres when configured, in-memory otherwise)
	var (
		profileRepo    domain.ProfileRepository
		shelterRepo    domain.ShelterRepository
		jobRepo        domain.JobRepository
		assignmentRepo domain.AssignmentRepository
		eventRepo      domain.RecommendationEventRepository
	)

	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		profileRepo = postgres.NewProfileRepository(dbPool)
		shelterRepo = postgres.NewShelterRepository(dbPool)
		jobRepo = postgres.NewJobRepository(dbPool)
		assignmentRepo = postgres.NewAssignmentRepository(dbPool)
		eventRepo = postgres.NewRecommendationEventRepository(dbPool)
	} else {
		logger.Log.Warn("Running with the in-memory store; data is lost on restart")
		profileRepo = memory.NewProfileRepository()
		shelterRepo = memory.NewShelterRepository()
		jobRepo = memory.NewJobRepository()
		assignmentRepo = memory.NewAssignmentRepository()
		eventRepo = memory.NewRecommendationEventRepository()
	}

	// 4. Setup Redis (rate limiting; in-memory fallback when absent)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		}
	}
	defer redis.Close()

	// 5. Setup Matching Engine
	policy, err := matching.NewPolicy(cfg.MatchReferenceDistanceKm)
	if err != nil {
		logger.Log.Error("Invalid scoring policy", "error", err)
		os.Exit(1)
	}
	engine := matching.NewEngine(policy)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	profileUC := usecase.NewProfileUsecase(profileRepo, validate)
	resourceUC := usecase.NewResourceUsecase(shelterRepo, jobRepo, validate)
	recommendationUC := usecase.NewRecommendationUsecase(profileRepo, shelterRepo, jobRepo, eventRepo, engine, cfg.MatchDefaultTopK)
	assignmentUC := usecase.NewAssignmentUsecase(assignmentRepo, profileRepo, shelterRepo, jobRepo)
	statsUC := usecase.NewStatsUsecase(profileRepo, shelterRepo, jobRepo, assignmentRepo, eventRepo, cfg.MatchReferenceDistanceKm)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC:        profileUC,
		ResourceUC:       resourceUC,
		RecommendationUC: recommendationUC,
		AssignmentUC:     assignmentUC,
		StatsUC:          statsUC,
		Config:           cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
