package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ivo225/fplhelper-sub000/internal/api/handlers"
	"github.com/ivo225/fplhelper-sub000/internal/services"
	"github.com/ivo225/fplhelper-sub000/pkg/config"
)

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(group *gin.RouterGroup, recommendationService *services.RecommendationService, fplClient services.FPLDataSource, cfg *config.Config) {
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	playerHandler := handlers.NewPlayerHandler(fplClient, logrus.StandardLogger())

	// Recommendation endpoints
	group.GET("/recommendations/transfers", recommendationHandler.GetTransfers)
	group.GET("/recommendations/captain", recommendationHandler.GetCaptains)
	group.GET("/recommendations/differentials", recommendationHandler.GetDifferentials)
	group.POST("/recommendations/refresh", recommendationHandler.Refresh)

	// Candidate pool passthrough
	group.GET("/players", playerHandler.GetPlayers)
}
