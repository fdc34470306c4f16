package handlers

import (
	"net/http"

	"destined_affinity/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	*BaseHandler
	statsService services.StatsService
}

func NewStatsHandler(base *BaseHandler, statsService services.StatsService) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  base,
		statsService: statsService,
	}
}

func (h *StatsHandler) RegisterRoutes(public, private *gin.RouterGroup) {
	public.GET("/stats", h.Public)
	private.GET("/admin/stats", h.Admin)
}

func (h *StatsHandler) Public(c *gin.Context) {
	stats, err := h.statsService.Public(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) Admin(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	stats, err := h.statsService.Admin(h.GetDB(c), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
