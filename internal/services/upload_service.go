package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"destined_affinity/internal/auth"
	"destined_affinity/internal/dto"
	"destined_affinity/internal/logger"
	"destined_affinity/internal/storage"
	"destined_affinity/pkg/apperrors"

	"github.com/google/uuid"
)

// ============================================
// ЗАГРУЗКА ИЗОБРАЖЕНИЙ ПО ПОДПИСАННОЙ ССЫЛКЕ
// ============================================

type UploadService interface {
	Presign(ctx context.Context, identity *auth.Identity, req *dto.PresignUploadRequest) (*storage.PresignedUpload, error)
}

type UploadServiceImpl struct {
	storage      storage.Storage
	allowedTypes map[string]string
}

// extensions - расширение файла по MIME-типу
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

func NewUploadService(store storage.Storage, allowedTypes []string) UploadService {
	allowed := make(map[string]string, len(allowedTypes))
	for _, t := range allowedTypes {
		t = strings.ToLower(strings.TrimSpace(t))
		if ext, ok := extensions[t]; ok {
			allowed[t] = ext
		}
	}
	return &UploadServiceImpl{
		storage:      store,
		allowedTypes: allowed,
	}
}

func (s *UploadServiceImpl) Presign(ctx context.Context, identity *auth.Identity, req *dto.PresignUploadRequest) (*storage.PresignedUpload, error) {
	if err := auth.RequireIdentity(identity); err != nil {
		return nil, err
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	ext, ok := s.allowedTypes[contentType]
	if !ok {
		return nil, apperrors.ErrInvalidOperation("upload", "Content type is not allowed").
			WithDetails(map[string]string{"contentType": req.ContentType})
	}

	prefix := "biodata"
	if req.Kind == dto.UploadKindStory {
		prefix = "stories"
	}
	// email в ключе не светится: стабильный UUID от адреса
	owner := uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+identity.Email))
	key := fmt.Sprintf("%s/%s/%s.%s", prefix, owner, uuid.NewString(), ext)

	upload, err := s.storage.PresignUpload(ctx, key, contentType)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to presign upload", err, "key", key)
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "upload", "Failed to prepare upload", http.StatusBadGateway)
	}
	return upload, nil
}
