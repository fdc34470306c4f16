package dto

import "strings"

// TokenRequest - вход после проверки личности у внешнего провайдера
type TokenRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	DisplayName string `json:"displayName" validate:"max=255"`
	PhotoURL    string `json:"photoURL" validate:"omitempty,url,max=2048"`
}

// Normalize - email сравнивается без учета регистра и пробелов
func (r *TokenRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	r.PhotoURL = strings.TrimSpace(r.PhotoURL)
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,is-member-role"`
}

// DecidePremiumRequest - админ одобряет (premium) или отклоняет (none) заявку
type DecidePremiumRequest struct {
	Status string `json:"status" validate:"required,is-premium-status,oneof=premium none"`
}

type MemberSearchQuery struct {
	Search string `form:"search" json:"search" validate:"max=255"`
	Role   string `form:"role" json:"role" validate:"omitempty,is-member-role"`
}
