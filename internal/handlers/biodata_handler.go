package handlers

import (
	"net/http"

	"destined_affinity/internal/dto"
	"destined_affinity/internal/services"

	"github.com/gin-gonic/gin"
)

type BiodataHandler struct {
	*BaseHandler
	biodataService services.BiodataService
}

func NewBiodataHandler(base *BaseHandler, biodataService services.BiodataService) *BiodataHandler {
	return &BiodataHandler{
		BaseHandler:    base,
		biodataService: biodataService,
	}
}

func (h *BiodataHandler) RegisterRoutes(public, private *gin.RouterGroup) {
	public.GET("/biodatas", h.List)
	public.GET("/biodatas/premium", h.ListPremium)

	biodatas := private.Group("/biodatas")
	{
		biodatas.GET("/me", h.GetMine)
		biodatas.PUT("/me", h.Upsert)
		biodatas.GET("/:biodataId", h.GetByID)
		biodatas.GET("/:biodataId/similar", h.Similar)
	}
}

// List - каталог с фильтрами; гостю и участнику отдается только карточка
func (h *BiodataHandler) List(c *gin.Context) {
	var query dto.BiodataListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	views, total, err := h.biodataService.List(h.GetDB(c), h.OptionalIdentity(c), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"biodatas":    views,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": pageCount(total, pageSize),
	})
}

func (h *BiodataHandler) ListPremium(c *gin.Context) {
	var query dto.PremiumListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	views, err := h.biodataService.ListPremium(h.GetDB(c), h.OptionalIdentity(c), query.Sort)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"biodatas": views})
}

func (h *BiodataHandler) Upsert(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.BiodataUpsertRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	view, created, err := h.biodataService.Upsert(h.GetDB(c), identity, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, view)
}

func (h *BiodataHandler) GetMine(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	view, err := h.biodataService.GetMine(h.GetDB(c), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BiodataHandler) GetByID(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	biodataID, err := ParseParamInt(c, "biodataId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	view, err := h.biodataService.GetByID(h.GetDB(c), identity, biodataID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BiodataHandler) Similar(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	biodataID, err := ParseParamInt(c, "biodataId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	views, err := h.biodataService.Similar(h.GetDB(c), identity, biodataID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"biodatas": views})
}
