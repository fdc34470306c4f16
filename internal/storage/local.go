package storage

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// LocalStorage - режим разработки: подписи нет, файл кладется
// на тот же сервер по PublicURL
type LocalStorage struct {
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

func NewLocalStorage(cfg Config) *LocalStorage {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStorage{
		baseURL: baseURL,
		ttl:     cfg.PresignTTL,
		now:     time.Now,
	}
}

func (s *LocalStorage) PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error) {
	url := s.PublicURL(key)
	return &PresignedUpload{
		Key:       key,
		Method:    http.MethodPut,
		UploadURL: url,
		PublicURL: url,
		Headers:   http.Header{"Content-Type": []string{contentType}},
		ExpiresAt: s.now().Add(s.ttl),
	}, nil
}

func (s *LocalStorage) PublicURL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}
