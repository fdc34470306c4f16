package repositories

import (
	"errors"

	"destined_affinity/internal/models"

	"gorm.io/gorm"
)

var ErrMarriageNotFound = errors.New("marriage record not found")

type MarriageRepository interface {
	FindByOwner(db *gorm.DB, email string) (*models.MarriageRecord, error)
	Upsert(db *gorm.DB, record *models.MarriageRecord) (created bool, err error)
	IsMarried(db *gorm.DB, biodataID int) (bool, error)
	ListPublic(db *gorm.DB, limit int) ([]models.MarriageRecord, error)
	CountAll(db *gorm.DB) (int64, error)
}

type MarriageRepositoryImpl struct{}

func NewMarriageRepository() MarriageRepository {
	return &MarriageRepositoryImpl{}
}

func (r *MarriageRepositoryImpl) FindByOwner(db *gorm.DB, email string) (*models.MarriageRecord, error) {
	var record models.MarriageRecord
	if err := db.Where("owner_email = ?", email).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarriageNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Upsert - одна запись на email владельца; повтор обновляет ее
func (r *MarriageRepositoryImpl) Upsert(db *gorm.DB, record *models.MarriageRecord) (bool, error) {
	existing, err := r.FindByOwner(db, record.OwnerEmail)
	switch {
	case err == nil:
		return false, r.update(db, existing, record)
	case !errors.Is(err, ErrMarriageNotFound):
		return false, err
	}

	if err := db.Create(record).Error; err != nil {
		if !isDuplicateKey(err) {
			return false, err
		}
		// Параллельная вставка того же владельца
		existing, err = r.FindByOwner(db, record.OwnerEmail)
		if err != nil {
			return false, err
		}
		return false, r.update(db, existing, record)
	}
	return true, nil
}

func (r *MarriageRepositoryImpl) update(db *gorm.DB, existing, record *models.MarriageRecord) error {
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	return db.Model(existing).
		Select("FemaleBiodataID", "MaleBiodataID", "Rating", "MarriageDate", "Story", "ImageRef").
		Updates(record).Error
}

func (r *MarriageRepositoryImpl) IsMarried(db *gorm.DB, biodataID int) (bool, error) {
	var count int64
	err := db.Model(&models.MarriageRecord{}).
		Where("female_biodata_id = ? OR male_biodata_id = ?", biodataID, biodataID).
		Count(&count).Error
	return count > 0, err
}

func (r *MarriageRepositoryImpl) ListPublic(db *gorm.DB, limit int) ([]models.MarriageRecord, error) {
	var records []models.MarriageRecord
	err := db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

func (r *MarriageRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.MarriageRecord{}).Count(&count).Error
	return count, err
}
