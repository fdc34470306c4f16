package dto

type CreateAccessRequest struct {
	BiodataID int `json:"biodataId" validate:"required,gt=0"`
}

type DecideAccessRequest struct {
	Status string `json:"status" validate:"required,is-access-status,oneof=approved rejected"`
}

type AccessRequestListQuery struct {
	Status string `form:"status" validate:"omitempty,is-access-status"`
}

type AddFavoriteRequest struct {
	BiodataID int `json:"biodataId" validate:"required,gt=0"`
}
