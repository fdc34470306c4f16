package models

type Favorite struct {
	BaseModel
	BiodataID       int    `gorm:"not null;uniqueIndex:idx_favorite_pair" json:"biodataId"`
	FavoriteByEmail string `gorm:"type:varchar(255);not null;uniqueIndex:idx_favorite_pair;index" json:"favoriteByEmail"`
}
