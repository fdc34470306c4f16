package models

import "time"

// AccessRequest - запрос на раскрытие контактов анкеты.
// Уникален по паре (biodata_id, requester_email) вне зависимости от статуса.
type AccessRequest struct {
	BaseModel
	BiodataID      int          `gorm:"not null;uniqueIndex:idx_access_pair" json:"biodataId"`
	RequesterEmail string       `gorm:"type:varchar(255);not null;uniqueIndex:idx_access_pair;index" json:"requesterEmail"`
	RequesterName  string       `gorm:"type:varchar(255)" json:"requesterName"`
	Status         AccessStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	DecidedBy      string       `gorm:"type:varchar(255)" json:"decidedBy,omitempty"`
	DecidedAt      *time.Time   `json:"decidedAt,omitempty"`
}
