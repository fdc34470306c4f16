package models

import "gorm.io/datatypes"

// Biodata - анкета участника. BiodataID назначается один раз и не меняется.
type Biodata struct {
	BaseModel
	BiodataID  int    `gorm:"uniqueIndex;not null" json:"biodataId"`
	OwnerEmail string `gorm:"type:varchar(255);uniqueIndex;not null" json:"ownerEmail"`

	Name              string          `gorm:"type:varchar(255)" json:"name"`
	Sex               Sex             `gorm:"type:varchar(10);index" json:"sex"`
	Age               int             `gorm:"index" json:"age"`
	HeightCm          int             `gorm:"index" json:"heightCm"`
	WeightKg          int             `json:"weightKg"`
	DateOfBirth       *datatypes.Date `json:"dateOfBirth,omitempty"`
	Race              string          `gorm:"type:varchar(50)" json:"race"`
	Occupation        string          `gorm:"type:varchar(100)" json:"occupation"`
	FatherName        string          `gorm:"type:varchar(255)" json:"fatherName"`
	MotherName        string          `gorm:"type:varchar(255)" json:"motherName"`
	PermanentDivision Division        `gorm:"type:varchar(30);index" json:"permanentDivision"`
	PresentDivision   Division        `gorm:"type:varchar(30)" json:"presentDivision"`
	ImageRef          string          `gorm:"type:text" json:"image"`

	ExpectedPartnerAge      int `json:"expectedPartnerAge"`
	ExpectedPartnerHeightCm int `json:"expectedPartnerHeightCm"`
	ExpectedPartnerWeightKg int `json:"expectedPartnerWeightKg"`

	// Контактные поля раскрываются только владельцу, админу или
	// по одобренному запросу доступа
	ContactEmail string `gorm:"type:varchar(255)" json:"contactEmail"`
	Mobile       string `gorm:"type:varchar(30)" json:"mobile"`

	// Заполняется JOIN'ом по members при чтении, в таблице не хранится
	OwnerPremiumStatus PremiumStatus `gorm:"->;-:migration" json:"-"`
}

func (Biodata) TableName() string {
	return "biodatas"
}

// BiodataSequence - счетчик для выдачи biodataId без гонки count+1
type BiodataSequence struct {
	Name  string `gorm:"type:varchar(50);primaryKey"`
	Value int    `gorm:"not null"`
}

const BiodataSequenceName = "biodata"
