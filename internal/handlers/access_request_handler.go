package handlers

import (
	"net/http"

	"destined_affinity/internal/dto"
	"destined_affinity/internal/models"
	"destined_affinity/internal/services"

	"github.com/gin-gonic/gin"
)

type AccessRequestHandler struct {
	*BaseHandler
	accessService services.AccessRequestService
}

func NewAccessRequestHandler(base *BaseHandler, accessService services.AccessRequestService) *AccessRequestHandler {
	return &AccessRequestHandler{
		BaseHandler:   base,
		accessService: accessService,
	}
}

func (h *AccessRequestHandler) RegisterRoutes(_, private *gin.RouterGroup) {
	requests := private.Group("/requested-access")
	{
		requests.POST("", h.Create)
		requests.GET("/me", h.ListMine)
		requests.DELETE("/:id", h.Delete)
	}

	admin := private.Group("/admin/access-requests")
	{
		admin.GET("", h.ListByStatus)
		admin.PATCH("/:id", h.Decide)
	}
}

func (h *AccessRequestHandler) Create(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAccessRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.accessService.Create(h.GetDB(c), identity, req.BiodataID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *AccessRequestHandler) ListMine(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	requests, err := h.accessService.ListMine(h.GetDB(c), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *AccessRequestHandler) Delete(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	if err := h.accessService.Delete(h.GetDB(c), identity, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Admin ---

func (h *AccessRequestHandler) ListByStatus(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var query dto.AccessRequestListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	requests, err := h.accessService.ListByStatus(h.GetDB(c), identity, models.AccessStatus(query.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *AccessRequestHandler) Decide(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.DecideAccessRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.accessService.Decide(h.GetDB(c), identity, c.Param("id"), models.AccessStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
