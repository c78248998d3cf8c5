package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ivo225/fplhelper-sub000/internal/engine"
	"github.com/ivo225/fplhelper-sub000/internal/services"
	"github.com/ivo225/fplhelper-sub000/pkg/utils"
)

// RecommendationHandler exposes the transfer/captain/differential routes.
// Each route is a thin adapter around RecommendationService.
type RecommendationHandler struct {
	recommendations *services.RecommendationService
}

func NewRecommendationHandler(recommendations *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
	}
}

// GetTransfers handles GET /recommendations/transfers?gameweek=&manager_id=
func (h *RecommendationHandler) GetTransfers(c *gin.Context) {
	gameweek, ok := queryInt(c, "gameweek", 0)
	if !ok {
		utils.SendValidationError(c, "Invalid gameweek", "gameweek must be a positive integer")
		return
	}
	managerID, ok := queryInt(c, "manager_id", 0)
	if !ok {
		utils.SendValidationError(c, "Invalid manager_id", "manager_id must be a positive integer")
		return
	}

	resp, err := h.recommendations.GetTransferRecommendations(c.Request.Context(), gameweek, managerID)
	if err != nil {
		utils.SendUpstreamError(c, "Failed to build transfer recommendations: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCaptains handles GET /recommendations/captain?gameweek=
func (h *RecommendationHandler) GetCaptains(c *gin.Context) {
	h.rankedList(c, engine.KindCaptain)
}

// GetDifferentials handles GET /recommendations/differentials?gameweek=
func (h *RecommendationHandler) GetDifferentials(c *gin.Context) {
	h.rankedList(c, engine.KindDifferential)
}

func (h *RecommendationHandler) rankedList(c *gin.Context, kind string) {
	gameweek, ok := queryInt(c, "gameweek", 0)
	if !ok {
		utils.SendValidationError(c, "Invalid gameweek", "gameweek must be a positive integer")
		return
	}

	resp, err := h.recommendations.GetRankedList(c.Request.Context(), kind, gameweek)
	if err != nil {
		utils.SendUpstreamError(c, "Failed to fetch "+kind+" recommendations: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /recommendations/refresh
func (h *RecommendationHandler) Refresh(c *gin.Context) {
	gameweek, ok := queryInt(c, "gameweek", 0)
	if !ok {
		utils.SendValidationError(c, "Invalid gameweek", "gameweek must be a positive integer")
		return
	}

	count, err := h.recommendations.GenerateForGameweek(c.Request.Context(), gameweek)
	if err != nil {
		utils.SendUpstreamError(c, "Failed to regenerate recommendations: "+err.Error())
		return
	}

	utils.SendSuccess(c, gin.H{
		"generated": count,
		"message":   "Recommendations regenerated",
	})
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
