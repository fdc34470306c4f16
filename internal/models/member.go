package models

type Member struct {
	BaseModel
	Email         string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DisplayName   string        `gorm:"type:varchar(255)" json:"displayName"`
	PhotoURL      string        `gorm:"type:text" json:"photoURL,omitempty"`
	Role          MemberRole    `gorm:"type:varchar(20);not null;default:member;index" json:"role"`
	PremiumStatus PremiumStatus `gorm:"type:varchar(20);not null;default:none;index" json:"premiumStatus"`
}

func (m *Member) IsAdmin() bool {
	return m != nil && m.Role == MemberRoleAdmin
}
