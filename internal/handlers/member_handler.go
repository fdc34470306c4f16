package handlers

import (
	"net/http"

	"destined_affinity/internal/dto"
	"destined_affinity/internal/models"
	"destined_affinity/internal/services"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	*BaseHandler
	memberService services.MemberService
}

func NewMemberHandler(base *BaseHandler, memberService services.MemberService) *MemberHandler {
	return &MemberHandler{
		BaseHandler:   base,
		memberService: memberService,
	}
}

func (h *MemberHandler) RegisterRoutes(_, private *gin.RouterGroup) {
	members := private.Group("/members")
	{
		members.GET("/me", h.GetMe)
		members.POST("/me/premium-request", h.RequestPremium)
		members.GET("/:email", h.GetByEmail)
	}

	admin := private.Group("/admin")
	{
		admin.GET("/members", h.ListMembers)
		admin.PATCH("/members/:id/role", h.SetRole)
		admin.GET("/premium-requests", h.ListPremiumRequests)
		admin.PATCH("/premium-requests/:email", h.DecidePremium)
	}
}

func (h *MemberHandler) GetMe(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	member, err := h.memberService.GetMe(h.GetDB(c), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) GetByEmail(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	member, err := h.memberService.GetByEmail(h.GetDB(c), identity, c.Param("email"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) RequestPremium(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	member, err := h.memberService.RequestPremium(h.GetDB(c), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// --- Admin ---

func (h *MemberHandler) ListMembers(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var query dto.MemberSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	members, total, err := h.memberService.ListMembers(h.GetDB(c), identity, &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members":     members,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": pageCount(total, pageSize),
	})
}

func (h *MemberHandler) SetRole(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.memberService.SetRole(h.GetDB(c), identity, c.Param("id"), models.MemberRole(req.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) ListPremiumRequests(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	members, err := h.memberService.ListPremiumRequests(h.GetDB(c), identity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *MemberHandler) DecidePremium(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.DecidePremiumRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.memberService.DecidePremium(h.GetDB(c), identity, c.Param("email"), models.PremiumStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}
