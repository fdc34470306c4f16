package services

import (
	"destined_affinity/internal/auth"
	"destined_affinity/internal/dto"
	"destined_affinity/internal/models"
	"destined_affinity/internal/repositories"
	"destined_affinity/pkg/apperrors"

	"gorm.io/gorm"
)

type StatsService interface {
	Public(db *gorm.DB) (*dto.PublicStats, error)
	Admin(db *gorm.DB, identity *auth.Identity) (*dto.AdminStats, error)
}

type StatsServiceImpl struct {
	biodataRepo  repositories.BiodataRepository
	marriageRepo repositories.MarriageRepository
	memberRepo   repositories.MemberRepository
	accessRepo   repositories.AccessRequestRepository
	paymentRepo  repositories.PaymentRepository
	guard        *auth.Guard
}

func NewStatsService(
	biodataRepo repositories.BiodataRepository,
	marriageRepo repositories.MarriageRepository,
	memberRepo repositories.MemberRepository,
	accessRepo repositories.AccessRequestRepository,
	paymentRepo repositories.PaymentRepository,
	guard *auth.Guard,
) StatsService {
	return &StatsServiceImpl{
		biodataRepo:  biodataRepo,
		marriageRepo: marriageRepo,
		memberRepo:   memberRepo,
		accessRepo:   accessRepo,
		paymentRepo:  paymentRepo,
		guard:        guard,
	}
}

func (s *StatsServiceImpl) Public(db *gorm.DB) (*dto.PublicStats, error) {
	var stats dto.PublicStats
	var err error

	if stats.TotalBiodatas, err = s.biodataRepo.CountBySex(db, ""); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.MaleBiodatas, err = s.biodataRepo.CountBySex(db, models.SexMale); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.FemaleBiodatas, err = s.biodataRepo.CountBySex(db, models.SexFemale); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Marriages, err = s.marriageRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &stats, nil
}

func (s *StatsServiceImpl) Admin(db *gorm.DB, identity *auth.Identity) (*dto.AdminStats, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	if _, err := s.guard.RequireAdmin(db, identity.Email); err != nil {
		return nil, err
	}

	public, err := s.Public(db)
	if err != nil {
		return nil, err
	}
	stats := dto.AdminStats{PublicStats: *public}

	if stats.Members, err = s.memberRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.PremiumMembers, err = s.memberRepo.CountByPremiumStatus(db, models.PremiumStatusPremium); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.PendingPremium, err = s.memberRepo.CountByPremiumStatus(db, models.PremiumStatusPending); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.PendingAccessRequests, err = s.accessRepo.CountByStatus(db, models.AccessStatusPending); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ApprovedAccessRequests, err = s.accessRepo.CountByStatus(db, models.AccessStatusApproved); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.RevenueCents, err = s.paymentRepo.SumAmount(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &stats, nil
}
