package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coldpitch/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			AccessKey: "test-key",
			SecretKey: "test-secret",
		}
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:    "coldpitch-exports",
			SecretKey: "test-secret",
		}
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:    "coldpitch-exports",
			AccessKey: "test-key",
		}
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:            "coldpitch-exports",
			AccessKey:         "test-key",
			SecretKey:         "test-secret",
			Region:            "us-east-1",
			Endpoint:          "http://localhost:9000",
			UsePathStyle:      true,
			PresignExpiration: 15 * time.Minute,
		}
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		require.NotNil(t, storage)
		assert.Equal(t, "coldpitch-exports", storage.GetBucket())
		assert.Equal(t, 15*time.Minute, storage.presignExpiration)
	})

	t.Run("adds http prefix when missing and no SSL", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:    "coldpitch-exports",
			AccessKey: "test-key",
			SecretKey: "test-secret",
			Endpoint:  "localhost:9000",
			UseSSL:    false,
		}
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("adds https prefix when missing and SSL enabled", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:    "coldpitch-exports",
			AccessKey: "test-key",
			SecretKey: "test-secret",
			Endpoint:  "localhost:9000",
			UseSSL:    true,
		}
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("default presign expiration is 15 minutes", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:    "coldpitch-exports",
			AccessKey: "test-key",
			SecretKey: "test-secret",
			Endpoint:  "http://localhost:9000",
		}
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, storage.presignExpiration)
	})
}

func TestS3ObjectStorageOptions(t *testing.T) {
	baseConfig := &config.StorageConfig{
		Bucket:    "coldpitch-exports",
		AccessKey: "test-key",
		SecretKey: "test-secret",
		Endpoint:  "http://localhost:9000",
	}

	t.Run("WithLogger sets custom logger", func(t *testing.T) {
		logger := zaptest.NewLogger(t)
		storage, err := NewS3ObjectStorage(baseConfig, WithLogger(logger))
		require.NoError(t, err)
		assert.NotNil(t, storage.logger)
	})

	t.Run("WithPresignExpiration sets custom duration", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(baseConfig, WithPresignExpiration(1*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1*time.Hour, storage.presignExpiration)
	})
}

func TestS3ObjectStorage_GenerateDownloadURL(t *testing.T) {
	cfg := &config.StorageConfig{
		Bucket:            "coldpitch-exports",
		AccessKey:         "test-key",
		SecretKey:         "test-secret",
		Endpoint:          "http://localhost:9000",
		UsePathStyle:      true,
		PresignExpiration: 15 * time.Minute,
	}
	storage, err := NewS3ObjectStorage(cfg)
	require.NoError(t, err)

	t.Run("empty storage key returns error", func(t *testing.T) {
		url, _, err := storage.GenerateDownloadURL(context.Background(), "", 15*time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage key is required")
		assert.Empty(t, url)
	})

	t.Run("generates valid presigned URL", func(t *testing.T) {
		url, expiresAt, err := storage.GenerateDownloadURL(context.Background(), "exports/prospects-2026-09-01.csv", 1*time.Hour)
		require.NoError(t, err)
		assert.NotEmpty(t, url)
		assert.True(t, strings.Contains(url, "localhost:9000"))
		assert.True(t, strings.Contains(url, "coldpitch-exports"))
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("uses default expiration when not provided", func(t *testing.T) {
		url, expiresAt, err := storage.GenerateDownloadURL(context.Background(), "exports/prospects.csv", 0)
		require.NoError(t, err)
		assert.NotEmpty(t, url)
		assert.True(t, expiresAt.After(time.Now()))
		assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
	})
}

func TestS3ObjectStorage_KeyValidation(t *testing.T) {
	cfg := &config.StorageConfig{
		Bucket:    "coldpitch-exports",
		AccessKey: "test-key",
		SecretKey: "test-secret",
		Endpoint:  "http://localhost:9000",
	}
	storage, err := NewS3ObjectStorage(cfg)
	require.NoError(t, err)

	t.Run("Upload rejects empty key", func(t *testing.T) {
		err := storage.Upload(context.Background(), "", []byte("name,email\n"), "text/csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage key is required")
	})

	t.Run("DeleteObject rejects empty key", func(t *testing.T) {
		err := storage.DeleteObject(context.Background(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage key is required")
	})

	t.Run("ObjectExists rejects empty key", func(t *testing.T) {
		exists, err := storage.ObjectExists(context.Background(), "")
		require.Error(t, err)
		assert.False(t, exists)
		assert.Contains(t, err.Error(), "storage key is required")
	})
}
