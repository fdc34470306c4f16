package storage

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PresignUpload(t *testing.T) {
	s, err := NewStorage(context.Background(), Config{Type: "local", BaseURL: "http://localhost:5000/uploads/", PresignTTL: time.Minute})
	require.NoError(t, err)

	up, err := s.PresignUpload(context.Background(), "biodata/abc/photo.png", "image/png")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, up.Method)
	assert.Equal(t, "http://localhost:5000/uploads/biodata/abc/photo.png", up.UploadURL)
	assert.Equal(t, up.UploadURL, up.PublicURL)
	assert.Equal(t, "image/png", up.Headers.Get("Content-Type"))
}

func TestS3Storage_PresignUpload(t *testing.T) {
	s, err := NewS3Storage(context.Background(), Config{
		Type:       "s3",
		Bucket:     "biodata-images",
		Region:     "us-east-1",
		AccessKey:  "test-access",
		SecretKey:  "test-secret",
		Endpoint:   "http://localhost:9000",
		PresignTTL: 10 * time.Minute,
	})
	require.NoError(t, err)

	up, err := s.PresignUpload(context.Background(), "biodata/abc/photo.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, up.Method)
	assert.Equal(t, "http://localhost:9000/biodata-images/biodata/abc/photo.jpg", up.PublicURL)

	parsed, err := url.Parse(up.UploadURL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", parsed.Host)
	assert.Equal(t, "/biodata-images/biodata/abc/photo.jpg", parsed.Path)
	assert.Equal(t, "600", parsed.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, parsed.Query().Get("X-Amz-Signature"))
}

func TestNewStorage_Unsupported(t *testing.T) {
	_, err := NewStorage(context.Background(), Config{Type: "ftp"})
	assert.Error(t, err)

	_, err = NewS3Storage(context.Background(), Config{Type: "s3"})
	assert.Error(t, err)
}
