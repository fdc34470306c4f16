package repositories

import (
	"errors"
	"fmt"

	"destined_affinity/database"
	"destined_affinity/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBiodataNotFound = errors.New("biodata not found")
	// ErrBiodataAlreadyExists - у владельца уже есть анкета (конкурентная первая запись)
	ErrBiodataAlreadyExists = errors.New("biodata already exists for owner")
)

const (
	SortAgeAsc  = "age_asc"
	SortAgeDesc = "age_desc"
)

type BiodataRepository interface {
	CreateWithNextID(db *gorm.DB, biodata *models.Biodata) error
	Update(db *gorm.DB, biodata *models.Biodata) error
	FindByOwner(db *gorm.DB, email string) (*models.Biodata, error)
	FindByBiodataID(db *gorm.DB, biodataID int) (*models.Biodata, error)

	// Search operations
	List(db *gorm.DB, filter BiodataFilter) ([]models.Biodata, error)
	Count(db *gorm.DB, filter BiodataFilter) (int64, error)
	ListPremium(db *gorm.DB, sort string, limit int) ([]models.Biodata, error)
	FindSimilar(db *gorm.DB, biodata *models.Biodata, limit int) ([]models.Biodata, error)
	CountBySex(db *gorm.DB, sex models.Sex) (int64, error)
}

// BiodataFilter - нулевые значения означают "без ограничения"
type BiodataFilter struct {
	Sex               models.Sex
	PermanentDivision models.Division
	MinAge            int
	MaxAge            int
	MinHeight         int
	MaxHeight         int
	Sort              string
	Page              int
	PageSize          int
}

type BiodataRepositoryImpl struct{}

func NewBiodataRepository() BiodataRepository {
	return &BiodataRepositoryImpl{}
}

// CreateWithNextID выдает следующий biodataId из счетчика и вставляет анкету
// в одной транзакции. При откате транзакции номер не расходуется.
func (r *BiodataRepositoryImpl) CreateWithNextID(db *gorm.DB, biodata *models.Biodata) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		nextID, err := r.nextBiodataID(tx)
		if err != nil {
			return err
		}
		biodata.BiodataID = nextID
		return tx.Omit("OwnerPremiumStatus").Create(biodata).Error
	})
	if err != nil {
		biodata.BiodataID = 0
		if isDuplicateKey(err) {
			return ErrBiodataAlreadyExists
		}
		return err
	}
	return nil
}

// nextBiodataID: UPDATE берет блокировку строки счетчика, поэтому
// конкурентные транзакции получают разные значения
func (r *BiodataRepositoryImpl) nextBiodataID(tx *gorm.DB) (int, error) {
	for attempt := 0; attempt < 2; attempt++ {
		result := tx.Model(&models.BiodataSequence{}).
			Where("name = ?", models.BiodataSequenceName).
			UpdateColumn("value", gorm.Expr("value + 1"))
		if result.Error != nil {
			return 0, fmt.Errorf("failed to advance biodata sequence: %w", result.Error)
		}
		if result.RowsAffected == 1 {
			var seq models.BiodataSequence
			if err := tx.Where("name = ?", models.BiodataSequenceName).Take(&seq).Error; err != nil {
				return 0, fmt.Errorf("failed to read biodata sequence: %w", err)
			}
			return seq.Value, nil
		}
		// Счетчик еще не создан (база без AutoMigrate)
		if err := database.EnsureBiodataSequence(tx); err != nil {
			return 0, err
		}
	}
	return 0, errors.New("biodata sequence is unavailable")
}

func (r *BiodataRepositoryImpl) Update(db *gorm.DB, biodata *models.Biodata) error {
	result := db.Model(biodata).
		Select("*").
		Omit("ID", "BiodataID", "OwnerEmail", "CreatedAt", "OwnerPremiumStatus").
		Updates(biodata)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBiodataNotFound
	}
	return nil
}

// withOwnerStatus подтягивает premium-статус владельца JOIN'ом по email
func withOwnerStatus(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Biodata{}).
		Select("biodatas.*, COALESCE(members.premium_status, ?) AS owner_premium_status", models.PremiumStatusNone).
		Joins("LEFT JOIN members ON members.email = biodatas.owner_email")
}

func (r *BiodataRepositoryImpl) FindByOwner(db *gorm.DB, email string) (*models.Biodata, error) {
	var biodata models.Biodata
	err := withOwnerStatus(db).Where("biodatas.owner_email = ?", email).Take(&biodata).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBiodataNotFound
		}
		return nil, err
	}
	return &biodata, nil
}

func (r *BiodataRepositoryImpl) FindByBiodataID(db *gorm.DB, biodataID int) (*models.Biodata, error) {
	var biodata models.Biodata
	err := withOwnerStatus(db).Where("biodatas.biodata_id = ?", biodataID).Take(&biodata).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBiodataNotFound
		}
		return nil, err
	}
	return &biodata, nil
}

func applyBiodataFilter(query *gorm.DB, f BiodataFilter) *gorm.DB {
	if f.Sex != "" {
		query = query.Where("biodatas.sex = ?", f.Sex)
	}
	if f.PermanentDivision != "" {
		query = query.Where("biodatas.permanent_division = ?", f.PermanentDivision)
	}
	if f.MinAge > 0 {
		query = query.Where("biodatas.age >= ?", f.MinAge)
	}
	if f.MaxAge > 0 {
		query = query.Where("biodatas.age <= ?", f.MaxAge)
	}
	if f.MinHeight > 0 {
		query = query.Where("biodatas.height_cm >= ?", f.MinHeight)
	}
	if f.MaxHeight > 0 {
		query = query.Where("biodatas.height_cm <= ?", f.MaxHeight)
	}
	return query
}

func biodataOrder(sort string) string {
	switch sort {
	case SortAgeAsc:
		return "biodatas.age ASC, biodatas.biodata_id ASC"
	case SortAgeDesc:
		return "biodatas.age DESC, biodatas.biodata_id ASC"
	default:
		// порядок вставки
		return "biodatas.biodata_id ASC"
	}
}

func (r *BiodataRepositoryImpl) List(db *gorm.DB, filter BiodataFilter) ([]models.Biodata, error) {
	var list []models.Biodata
	err := applyBiodataFilter(withOwnerStatus(db), filter).
		Order(biodataOrder(filter.Sort)).
		Limit(filter.PageSize).
		Offset(offset(filter.Page, filter.PageSize)).
		Find(&list).Error
	return list, err
}

func (r *BiodataRepositoryImpl) Count(db *gorm.DB, filter BiodataFilter) (int64, error) {
	var count int64
	err := applyBiodataFilter(db.Model(&models.Biodata{}), filter).Count(&count).Error
	return count, err
}

func (r *BiodataRepositoryImpl) ListPremium(db *gorm.DB, sort string, limit int) ([]models.Biodata, error) {
	var list []models.Biodata
	err := withOwnerStatus(db).
		Where("members.premium_status = ?", models.PremiumStatusPremium).
		Order(biodataOrder(sort)).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// FindSimilar - анкеты того же пола, кроме исходной
func (r *BiodataRepositoryImpl) FindSimilar(db *gorm.DB, biodata *models.Biodata, limit int) ([]models.Biodata, error) {
	var list []models.Biodata
	err := withOwnerStatus(db).
		Where("biodatas.sex = ? AND biodatas.biodata_id <> ?", biodata.Sex, biodata.BiodataID).
		Order("biodatas.biodata_id ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// CountBySex - пустой sex считает все анкеты
func (r *BiodataRepositoryImpl) CountBySex(db *gorm.DB, sex models.Sex) (int64, error) {
	return r.Count(db, BiodataFilter{Sex: sex})
}
