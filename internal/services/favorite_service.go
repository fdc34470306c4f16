package services

import (
	"errors"

	"destined_affinity/internal/auth"
	"destined_affinity/internal/models"
	"destined_affinity/internal/repositories"
	"destined_affinity/pkg/apperrors"

	"gorm.io/gorm"
)

type FavoriteService interface {
	Add(db *gorm.DB, identity *auth.Identity, biodataID int) (*models.Favorite, error)
	ListMine(db *gorm.DB, identity *auth.Identity) ([]repositories.FavoriteEntry, error)
	Remove(db *gorm.DB, identity *auth.Identity, favoriteID string) error
}

type FavoriteServiceImpl struct {
	favoriteRepo repositories.FavoriteRepository
	biodataRepo  repositories.BiodataRepository
	guard        *auth.Guard
}

func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, biodataRepo repositories.BiodataRepository, guard *auth.Guard) FavoriteService {
	return &FavoriteServiceImpl{
		favoriteRepo: favoriteRepo,
		biodataRepo:  biodataRepo,
		guard:        guard,
	}
}

func (s *FavoriteServiceImpl) Add(db *gorm.DB, identity *auth.Identity, biodataID int) (*models.Favorite, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	if _, err := s.biodataRepo.FindByBiodataID(db, biodataID); err != nil {
		return nil, handleBiodataError(err)
	}

	favorite := &models.Favorite{
		BiodataID:       biodataID,
		FavoriteByEmail: identity.Email,
	}
	if err := s.favoriteRepo.Create(db, favorite); err != nil {
		return nil, handleFavoriteError(err)
	}
	return favorite, nil
}

func (s *FavoriteServiceImpl) ListMine(db *gorm.DB, identity *auth.Identity) ([]repositories.FavoriteEntry, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}
	entries, err := s.favoriteRepo.FindByEmail(db, identity.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return entries, nil
}

func (s *FavoriteServiceImpl) Remove(db *gorm.DB, identity *auth.Identity, favoriteID string) error {
	if err := auth.RequireIdentity(identity); err != nil {
		return err
	}
	favorite, err := s.favoriteRepo.FindByID(db, favoriteID)
	if err != nil {
		return handleFavoriteError(err)
	}
	if err := s.guard.RequireOwnerOrAdmin(db, identity, favorite.FavoriteByEmail); err != nil {
		return err
	}
	if err := s.favoriteRepo.Delete(db, favoriteID); err != nil {
		return handleFavoriteError(err)
	}
	return nil
}

func handleFavoriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrFavoriteNotFound):
		return apperrors.ErrFavoriteNotFound.WithError(err)
	case errors.Is(err, repositories.ErrFavoriteExists):
		return apperrors.ErrFavoriteExists.WithError(err)
	}
	return apperrors.InternalError(err)
}
