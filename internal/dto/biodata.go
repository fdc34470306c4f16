package dto

// BiodataUpsertRequest - частичное обновление анкеты: nil означает "не менять".
// При первом сохранении sex обязателен.
type BiodataUpsertRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=255"`
	Sex               *string `json:"sex" validate:"omitempty,is-sex"`
	Age               *int    `json:"age" validate:"omitempty,gte=18,lte=100"`
	HeightCm          *int    `json:"heightCm" validate:"omitempty,gte=100,lte=250"`
	WeightKg          *int    `json:"weightKg" validate:"omitempty,gte=30,lte=300"`
	DateOfBirth       *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Race              *string `json:"race" validate:"omitempty,max=50"`
	Occupation        *string `json:"occupation" validate:"omitempty,max=100"`
	FatherName        *string `json:"fatherName" validate:"omitempty,max=255"`
	MotherName        *string `json:"motherName" validate:"omitempty,max=255"`
	PermanentDivision *string `json:"permanentDivision" validate:"omitempty,is-division"`
	PresentDivision   *string `json:"presentDivision" validate:"omitempty,is-division"`
	Image             *string `json:"image" validate:"omitempty,max=2048"`

	ExpectedPartnerAge      *int `json:"expectedPartnerAge" validate:"omitempty,gte=18,lte=100"`
	ExpectedPartnerHeightCm *int `json:"expectedPartnerHeightCm" validate:"omitempty,gte=100,lte=250"`
	ExpectedPartnerWeightKg *int `json:"expectedPartnerWeightKg" validate:"omitempty,gte=30,lte=300"`

	ContactEmail *string `json:"contactEmail" validate:"omitempty,email,max=255"`
	Mobile       *string `json:"mobile" validate:"omitempty,max=30"`
}

// BiodataListQuery - фильтр каталога; пагинация через page/page_size.
// minValue/maxValue - имена диапазона возраста, которые шлет веб-клиент.
type BiodataListQuery struct {
	Sex               string `form:"sex" validate:"omitempty,is-sex"`
	PermanentDivision string `form:"permanentDivision" validate:"omitempty,is-division"`
	MinAge            int    `form:"minAge" validate:"gte=0,lte=150"`
	MaxAge            int    `form:"maxAge" validate:"gte=0,lte=150"`
	MinValue          int    `form:"minValue" validate:"gte=0,lte=150"`
	MaxValue          int    `form:"maxValue" validate:"gte=0,lte=150"`
	MinHeight         int    `form:"minHeight" validate:"gte=0,lte=300"`
	MaxHeight         int    `form:"maxHeight" validate:"gte=0,lte=300"`
	Sort              string `form:"sort" validate:"omitempty,oneof=age_asc age_desc"`
}

// Normalize переносит minValue/maxValue в диапазон возраста; minAge/maxAge приоритетнее
func (q *BiodataListQuery) Normalize() {
	if q.MinAge == 0 {
		q.MinAge = q.MinValue
	}
	if q.MaxAge == 0 {
		q.MaxAge = q.MaxValue
	}
}

type PremiumListQuery struct {
	Sort string `form:"sort" validate:"omitempty,oneof=asc desc"`
}
