package handlers

import (
	"net/http"

	"destined_affinity/internal/dto"
	"destined_affinity/internal/services"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	*BaseHandler
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(base *BaseHandler, favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		BaseHandler:     base,
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) RegisterRoutes(_, private *gin.RouterGroup) {
	favorites := private.Group("/favorites")
	{
		favorites.POST("", h.Add)
		favorites.GET("/me", h.ListMine)
		favorites.DELETE("/:id", h.Remove)
	}
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.AddFavoriteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	favorite, err := h.favoriteService.Add(h.GetDB(c), identity, req.BiodataID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

func (h *FavoriteHandler) ListMine(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	favorites, err := h.favoriteService.ListMine(h.GetDB(c), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(h.GetDB(c), identity, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
