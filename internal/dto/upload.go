package dto

const (
	UploadKindBiodata = "biodata"
	UploadKindStory   = "story"
)

type PresignUploadRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=biodata story"`
	ContentType string `json:"contentType" validate:"required,max=100"`
}
