package repositories

import (
	"errors"
	"time"

	"destined_affinity/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAccessRequestNotFound = errors.New("access request not found")
	ErrAccessRequestExists   = errors.New("access request already exists for this biodata")
	ErrAccessRequestDecided  = errors.New("access request is not pending")
)

type AccessRequestRepository interface {
	Create(db *gorm.DB, request *models.AccessRequest) error
	FindByID(db *gorm.DB, id string) (*models.AccessRequest, error)
	FindByPair(db *gorm.DB, biodataID int, requesterEmail string) (*models.AccessRequest, error)
	HasApproved(db *gorm.DB, biodataID int, requesterEmail string) (bool, error)
	FindByRequester(db *gorm.DB, requesterEmail string) ([]models.AccessRequest, error)
	FindByStatus(db *gorm.DB, status models.AccessStatus) ([]models.AccessRequest, error)
	Decide(db *gorm.DB, id string, status models.AccessStatus, decidedBy string, decidedAt time.Time) (*models.AccessRequest, error)
	Delete(db *gorm.DB, id string) error
	CountByStatus(db *gorm.DB, status models.AccessStatus) (int64, error)
}

type AccessRequestRepositoryImpl struct{}

func NewAccessRequestRepository() AccessRequestRepository {
	return &AccessRequestRepositoryImpl{}
}

// Create отклоняет повтор для пары (biodataId, email) в любом статусе.
// Предварительная проверка дает понятную ошибку, гарантию дает уникальный индекс.
func (r *AccessRequestRepositoryImpl) Create(db *gorm.DB, request *models.AccessRequest) error {
	if _, err := r.FindByPair(db, request.BiodataID, request.RequesterEmail); err == nil {
		return ErrAccessRequestExists
	} else if !errors.Is(err, ErrAccessRequestNotFound) {
		return err
	}

	if request.Status == "" {
		request.Status = models.AccessStatusPending
	}

	if err := db.Create(request).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrAccessRequestExists
		}
		return err
	}
	return nil
}

func (r *AccessRequestRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.AccessRequest, error) {
	var request models.AccessRequest
	if err := db.Where("id = ?", id).Take(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *AccessRequestRepositoryImpl) FindByPair(db *gorm.DB, biodataID int, requesterEmail string) (*models.AccessRequest, error) {
	var request models.AccessRequest
	err := db.Where("biodata_id = ? AND requester_email = ?", biodataID, requesterEmail).Take(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *AccessRequestRepositoryImpl) HasApproved(db *gorm.DB, biodataID int, requesterEmail string) (bool, error) {
	var count int64
	err := db.Model(&models.AccessRequest{}).
		Where("biodata_id = ? AND requester_email = ? AND status = ?", biodataID, requesterEmail, models.AccessStatusApproved).
		Count(&count).Error
	return count > 0, err
}

func (r *AccessRequestRepositoryImpl) FindByRequester(db *gorm.DB, requesterEmail string) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	err := db.Where("requester_email = ?", requesterEmail).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *AccessRequestRepositoryImpl) FindByStatus(db *gorm.DB, status models.AccessStatus) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	query := db.Model(&models.AccessRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at ASC").Find(&requests).Error
	return requests, err
}

// Decide переводит запрос из pending в терминальный статус условным UPDATE,
// поэтому из двух конкурентных решений применяется ровно одно
func (r *AccessRequestRepositoryImpl) Decide(db *gorm.DB, id string, status models.AccessStatus, decidedBy string, decidedAt time.Time) (*models.AccessRequest, error) {
	result := db.Model(&models.AccessRequest{}).
		Where("id = ? AND status = ?", id, models.AccessStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": decidedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(db, id); err != nil {
			return nil, err
		}
		return nil, ErrAccessRequestDecided
	}
	return r.FindByID(db, id)
}

func (r *AccessRequestRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.AccessRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccessRequestNotFound
	}
	return nil
}

func (r *AccessRequestRepositoryImpl) CountByStatus(db *gorm.DB, status models.AccessStatus) (int64, error) {
	var count int64
	err := db.Model(&models.AccessRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
