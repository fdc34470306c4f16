package handlers

import (
	"net/http"
	"time"

	"destined_affinity/internal/auth"
	"destined_affinity/internal/dto"
	"destined_affinity/internal/logger"
	"destined_affinity/internal/services"

	"github.com/gin-gonic/gin"
)

// CookieOptions - параметры cookie с токеном
type CookieOptions struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	*BaseHandler
	memberService services.MemberService
	tokens        *auth.TokenService
	cookie        CookieOptions
}

func NewAuthHandler(base *BaseHandler, memberService services.MemberService, tokens *auth.TokenService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   base,
		memberService: memberService,
		tokens:        tokens,
		cookie:        cookie,
	}
}

func (h *AuthHandler) RegisterRoutes(public, _ *gin.RouterGroup) {
	public.POST("/jwt", h.IssueToken)
	public.POST("/logout", h.Logout)
}

// IssueToken - вход: upsert участника по email, выпуск токена и cookie
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.memberService.UpsertOnLogin(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(member.Email, member.Role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setCookie(c, token, int(time.Until(expiresAt).Seconds()))
	logger.CtxInfo(c.Request.Context(), "Token issued", "email", member.Email)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      token,
		"expires_at": expiresAt,
		"member":     member,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	// cross-site фронтенд требует SameSite=None, а он допустим только с Secure
	if h.cookie.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
