package v1

import (
	"net/http"
	"time"

	"go-nest-backend/config"
	"go-nest-backend/internal/delivery/http/middleware"
	"go-nest-backend/internal/delivery/http/response"
	"go-nest-backend/internal/domain"
	"go-nest-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ProfileUC        domain.ProfileUsecase
	ResourceUC       domain.ResourceUsecase
	RecommendationUC domain.RecommendationUsecase
	AssignmentUC     domain.AssignmentUsecase
	StatsUC          usecase.StatsUsecase
	Config           *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public reads
	NewRecommendationHandler(v1, deps.RecommendationUC)
	NewStatsHandler(v1, deps.StatsUC)

	// Protected writes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	protected.Use(middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig(deps.Config.RateLimitWriteThreshold, window)))
	{
		NewIntakeHandler(v1, protected, deps.ProfileUC, deps.ResourceUC)
		NewAssignmentHandler(protected, deps.AssignmentUC)
	}

	return r
}
