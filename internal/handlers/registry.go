package handlers

import "github.com/gin-gonic/gin"

// RouteRegistrar - хэндлер, регистрирующий публичные (гость допустим) и
// закрытые (токен обязателен) маршруты
type RouteRegistrar interface {
	RegisterRoutes(public, private *gin.RouterGroup)
}

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler          *AuthHandler
	MemberHandler        *MemberHandler
	BiodataHandler       *BiodataHandler
	AccessRequestHandler *AccessRequestHandler
	FavoriteHandler      *FavoriteHandler
	MarriageHandler      *MarriageHandler
	PaymentHandler       *PaymentHandler
	StatsHandler         *StatsHandler
	UploadHandler        *UploadHandler
	HealthHandler        *HealthHandler
}

// Registrars - порядок регистрации маршрутов
func (a *AppHandlers) Registrars() []RouteRegistrar {
	return []RouteRegistrar{
		a.AuthHandler,
		a.MemberHandler,
		a.BiodataHandler,
		a.AccessRequestHandler,
		a.FavoriteHandler,
		a.MarriageHandler,
		a.PaymentHandler,
		a.StatsHandler,
		a.UploadHandler,
	}
}
