package repositories

import (
	"errors"
	"time"

	"destined_affinity/internal/models"

	"gorm.io/gorm"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("biodata already in favorites")
)

type FavoriteRepository interface {
	Create(db *gorm.DB, favorite *models.Favorite) error
	FindByID(db *gorm.DB, id string) (*models.Favorite, error)
	FindByEmail(db *gorm.DB, email string) ([]FavoriteEntry, error)
	Delete(db *gorm.DB, id string) error
}

// FavoriteEntry - избранное вместе с публичными полями анкеты
type FavoriteEntry struct {
	ID                string          `json:"id"`
	BiodataID         int             `json:"biodataId"`
	Name              string          `json:"name"`
	PermanentDivision models.Division `json:"permanentDivision"`
	Occupation        string          `json:"occupation"`
	CreatedAt         time.Time       `json:"createdAt"`
}

type FavoriteRepositoryImpl struct{}

func NewFavoriteRepository() FavoriteRepository {
	return &FavoriteRepositoryImpl{}
}

func (r *FavoriteRepositoryImpl) Create(db *gorm.DB, favorite *models.Favorite) error {
	var count int64
	if err := db.Model(&models.Favorite{}).
		Where("biodata_id = ? AND favorite_by_email = ?", favorite.BiodataID, favorite.FavoriteByEmail).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrFavoriteExists
	}

	if err := db.Create(favorite).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrFavoriteExists
		}
		return err
	}
	return nil
}

func (r *FavoriteRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := db.Where("id = ?", id).Take(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepositoryImpl) FindByEmail(db *gorm.DB, email string) ([]FavoriteEntry, error) {
	var entries []FavoriteEntry
	err := db.Table("favorites").
		Select("favorites.id, favorites.biodata_id, favorites.created_at, biodatas.name, biodatas.permanent_division, biodatas.occupation").
		Joins("LEFT JOIN biodatas ON biodatas.biodata_id = favorites.biodata_id").
		Where("favorites.favorite_by_email = ?", email).
		Order("favorites.created_at DESC").
		Scan(&entries).Error
	return entries, err
}

func (r *FavoriteRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
