package handlers

import (
	"net/http"

	"destined_affinity/internal/dto"
	"destined_affinity/internal/services"

	"github.com/gin-gonic/gin"
)

type MarriageHandler struct {
	*BaseHandler
	marriageService services.MarriageService
}

func NewMarriageHandler(base *BaseHandler, marriageService services.MarriageService) *MarriageHandler {
	return &MarriageHandler{
		BaseHandler:     base,
		marriageService: marriageService,
	}
}

func (h *MarriageHandler) RegisterRoutes(public, private *gin.RouterGroup) {
	public.GET("/success-stories", h.ListPublic)
	public.GET("/marriages/:biodataId", h.IsMarried)

	private.PUT("/success-stories/me", h.Upsert)
}

func (h *MarriageHandler) ListPublic(c *gin.Context) {
	stories, err := h.marriageService.ListPublic(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stories": stories})
}

func (h *MarriageHandler) IsMarried(c *gin.Context) {
	biodataID, err := ParseParamInt(c, "biodataId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status, err := h.marriageService.IsMarried(h.GetDB(c), biodataID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *MarriageHandler) Upsert(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.MarriageUpsertRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	story, created, err := h.marriageService.Upsert(h.GetDB(c), identity, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, story)
}
