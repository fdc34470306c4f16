package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel - строковый UUID генерируется в приложении, чтобы не зависеть
// от uuid_generate_v4() (sqlite, mysql)
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All возвращает модели для AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Member{},
		&Biodata{},
		&BiodataSequence{},
		&AccessRequest{},
		&Favorite{},
		&MarriageRecord{},
		&PaymentTransaction{},
	}
}
