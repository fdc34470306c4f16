package dto

import "time"

type MarriageUpsertRequest struct {
	FemaleBiodataID int    `json:"femaleBiodataId" validate:"required,gt=0"`
	MaleBiodataID   int    `json:"maleBiodataId" validate:"required,gt=0"`
	Rating          int    `json:"rating" validate:"required,min=1,max=5"`
	MarriageDate    string `json:"marriageDate" validate:"omitempty,datetime=2006-01-02"`
	Story           string `json:"story" validate:"max=5000"`
	Image           string `json:"image" validate:"max=2048"`
}

// SuccessStory - публичная лента без email владельца
type SuccessStory struct {
	FemaleBiodataID int        `json:"femaleBiodataId"`
	MaleBiodataID   int        `json:"maleBiodataId"`
	Rating          int        `json:"rating"`
	MarriageDate    *time.Time `json:"marriageDate,omitempty"`
	Story           string     `json:"story"`
	Image           string     `json:"image"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type MarriageStatus struct {
	BiodataID int  `json:"biodataId"`
	Married   bool `json:"married"`
}
