package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ivo225/fplhelper-sub000/internal/engine"
	"github.com/ivo225/fplhelper-sub000/internal/fpl"
	"github.com/ivo225/fplhelper-sub000/internal/services"
	"github.com/ivo225/fplhelper-sub000/pkg/utils"
)

// PlayerHandler serves the candidate pool straight from bootstrap data.
type PlayerHandler struct {
	fplClient services.FPLDataSource
	logger    *logrus.Logger
}

func NewPlayerHandler(fplClient services.FPLDataSource, logger *logrus.Logger) *PlayerHandler {
	return &PlayerHandler{
		fplClient: fplClient,
		logger:    logger,
	}
}

// GetPlayers handles GET /players?position=&limit=
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		utils.SendValidationError(c, "Invalid limit", "limit must be a positive integer")
		return
	}
	if limit > 200 {
		limit = 200
	}

	bootstrap, err := h.fplClient.GetBootstrap(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Bootstrap fetch failed: %v", err)
		utils.SendUpstreamError(c, "Failed to fetch players: "+err.Error())
		return
	}

	position := c.Query("position")
	players := make([]fpl.Element, 0, len(bootstrap.Elements))
	for _, e := range bootstrap.Elements {
		if position != "" && engine.PositionOf(e.ElementType).String() != position {
			continue
		}
		players = append(players, e)
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].TotalPoints > players[j].TotalPoints
	})
	if len(players) > limit {
		players = players[:limit]
	}

	utils.SendSuccess(c, players)
}
