package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	MemberService        MemberService
	BiodataService       BiodataService
	AccessRequestService AccessRequestService
	FavoriteService      FavoriteService
	MarriageService      MarriageService
	PaymentService       PaymentService
	StatsService         StatsService
	UploadService        UploadService
}
