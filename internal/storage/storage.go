package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Storage - хранилище изображений анкет и историй.
// Клиент загружает файл напрямую по подписанной ссылке.
type Storage interface {
	// PresignUpload возвращает ссылку для PUT-загрузки объекта key
	PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error)

	// PublicURL - адрес, по которому объект будет доступен после загрузки
	PublicURL(key string) string
}

// PresignedUpload - ответ клиенту для прямой загрузки
type PresignedUpload struct {
	Key       string      `json:"key"`
	Method    string      `json:"method"`
	UploadURL string      `json:"uploadUrl"`
	PublicURL string      `json:"publicUrl"`
	Headers   http.Header `json:"headers,omitempty"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Config holds storage configuration
type Config struct {
	Type       string // local, s3
	BaseURL    string // Public URL base
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string // For R2 / MinIO
	PresignTTL time.Duration
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg), nil
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
