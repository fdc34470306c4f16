package handlers

import (
	"net/http"

	"destined_affinity/internal/dto"
	"destined_affinity/internal/services"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(_, private *gin.RouterGroup) {
	private.POST("/uploads/presign", h.Presign)
}

// Presign - URL для прямой загрузки фото в хранилище, минуя сервер
func (h *UploadHandler) Presign(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.PresignUploadRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	upload, err := h.uploadService.Presign(c.Request.Context(), identity, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}
