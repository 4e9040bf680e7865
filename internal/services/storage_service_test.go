// internal/services/storage_service_test.go
package services

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slabdesk/slabdesk-backend/internal/config"
)

func TestNewStorageServiceWithoutCredentials(t *testing.T) {
	svc, err := NewStorageService(&config.Config{})
	require.NoError(t, err)
	require.NotNil(t, svc)

	_, err = svc.UploadFile(nil, &multipart.FileHeader{Filename: "card.jpg", Size: 1}, svc.CardImageOptions())
	assert.EqualError(t, err, "storage is not configured")
}

func TestUploadFileWithoutClientDoesNotPanic(t *testing.T) {
	header := &multipart.FileHeader{Filename: "card.jpg", Size: 1}

	// A degraded service and even a nil receiver must reject cleanly
	// rather than dereference the missing S3 client.
	for _, svc := range []*StorageService{{}, nil} {
		assert.NotPanics(t, func() {
			_, err := svc.UploadFile(nil, header, UploadOptions{})
			assert.EqualError(t, err, "storage is not configured")
		})
	}
}

func TestCardImageOptions(t *testing.T) {
	options := (&StorageService{}).CardImageOptions()

	assert.Equal(t, "cards", options.Folder)
	assert.Equal(t, int64(10*1024*1024), options.MaxSize)
	assert.Contains(t, options.AllowedTypes, ".webp")
}
