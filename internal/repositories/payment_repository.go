package repositories

import (
	"errors"

	"destined_affinity/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("payment transaction not found")
	ErrTransactionExists   = errors.New("payment transaction already recorded")
)

type PaymentRepository interface {
	Create(db *gorm.DB, tx *models.PaymentTransaction) error
	FindByTransactionID(db *gorm.DB, transactionID string) (*models.PaymentTransaction, error)
	SumAmount(db *gorm.DB) (int64, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, tx *models.PaymentTransaction) error {
	if err := db.Create(tx).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrTransactionExists
		}
		return err
	}
	return nil
}

func (r *PaymentRepositoryImpl) FindByTransactionID(db *gorm.DB, transactionID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	if err := db.Where("transaction_id = ?", transactionID).Take(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *PaymentRepositoryImpl) SumAmount(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&models.PaymentTransaction{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}
