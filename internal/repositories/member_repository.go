package repositories

import (
	"errors"
	"strings"

	"destined_affinity/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("member already exists")
	// ErrPremiumStatusChanged - условный переход не сработал: статус уже другой
	ErrPremiumStatusChanged = errors.New("premium status changed concurrently")
)

type MemberRepository interface {
	Create(db *gorm.DB, member *models.Member) error
	FindByEmail(db *gorm.DB, email string) (*models.Member, error)
	FindByID(db *gorm.DB, id string) (*models.Member, error)
	UpdateRole(db *gorm.DB, id string, role models.MemberRole) error
	TransitionPremium(db *gorm.DB, email string, from, to models.PremiumStatus) error

	// Admin operations
	FindWithFilter(db *gorm.DB, criteria MemberFilter) ([]models.Member, int64, error)
	FindByPremiumStatus(db *gorm.DB, status models.PremiumStatus) ([]models.Member, error)
	CountAll(db *gorm.DB) (int64, error)
	CountByPremiumStatus(db *gorm.DB, status models.PremiumStatus) (int64, error)
}

type MemberFilter struct {
	Search   string
	Role     models.MemberRole
	Page     int
	PageSize int
}

type MemberRepositoryImpl struct{}

func NewMemberRepository() MemberRepository {
	return &MemberRepositoryImpl{}
}

func (r *MemberRepositoryImpl) Create(db *gorm.DB, member *models.Member) error {
	if err := db.Create(member).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrMemberAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MemberRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Member, error) {
	var member models.Member
	err := db.Where("email = ?", email).Take(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Member, error) {
	var member models.Member
	err := db.Where("id = ?", id).Take(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepositoryImpl) UpdateRole(db *gorm.DB, id string, role models.MemberRole) error {
	result := db.Model(&models.Member{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// TransitionPremium обновляет статус только если текущий равен from
func (r *MemberRepositoryImpl) TransitionPremium(db *gorm.DB, email string, from, to models.PremiumStatus) error {
	result := db.Model(&models.Member{}).
		Where("email = ? AND premium_status = ?", email, from).
		Update("premium_status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByEmail(db, email); err != nil {
			return err
		}
		return ErrPremiumStatusChanged
	}
	return nil
}

func (r *MemberRepositoryImpl) FindWithFilter(db *gorm.DB, criteria MemberFilter) ([]models.Member, int64, error) {
	var members []models.Member
	query := db.Model(&models.Member{})

	if criteria.Role != "" {
		query = query.Where("role = ?", criteria.Role)
	}
	if criteria.Search != "" {
		search := "%" + strings.ToLower(criteria.Search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(display_name) LIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at ASC").
		Limit(criteria.PageSize).
		Offset(offset(criteria.Page, criteria.PageSize)).
		Find(&members).Error

	return members, total, err
}

func (r *MemberRepositoryImpl) FindByPremiumStatus(db *gorm.DB, status models.PremiumStatus) ([]models.Member, error) {
	var members []models.Member
	err := db.Where("premium_status = ?", status).Order("updated_at ASC").Find(&members).Error
	return members, err
}

func (r *MemberRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Member{}).Count(&count).Error
	return count, err
}

func (r *MemberRepositoryImpl) CountByPremiumStatus(db *gorm.DB, status models.PremiumStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Member{}).Where("premium_status = ?", status).Count(&count).Error
	return count, err
}
