package models

import "gorm.io/datatypes"

// MarriageRecord - закрытая запись о браке двух анкет.
// Наличие записи с biodataId в любой позиции означает, что анкета "в браке".
type MarriageRecord struct {
	BaseModel
	OwnerEmail      string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	FemaleBiodataID int             `gorm:"not null;index" json:"femaleBiodataId"`
	MaleBiodataID   int             `gorm:"not null;index" json:"maleBiodataId"`
	Rating          int             `gorm:"not null" json:"rating"`
	MarriageDate    *datatypes.Date `json:"marriageDate,omitempty"`
	Story           string          `gorm:"type:text" json:"story"`
	ImageRef        string          `gorm:"type:text" json:"image"`
}
