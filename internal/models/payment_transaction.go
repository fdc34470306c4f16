package models

// PaymentTransaction - запись об успешном платеже (событие "charge succeeded")
type PaymentTransaction struct {
	BaseModel
	TransactionID string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"transactionId"`
	Email         string         `gorm:"type:varchar(255);not null;index" json:"email"`
	AmountCents   int64          `gorm:"not null" json:"amountCents"`
	Currency      string         `gorm:"type:varchar(10);not null" json:"currency"`
	Purpose       PaymentPurpose `gorm:"type:varchar(30);not null" json:"purpose"`
	BiodataID     *int           `json:"biodataId,omitempty"`
}
