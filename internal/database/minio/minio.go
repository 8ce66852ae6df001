package minio

import (
	"context"
	"fmt"

	"EduLens/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewClient creates a MinIO client from the given configuration and verifies
// the connection with a simple health check. The client is constructed once
// at startup and handed to the components that need it.
func NewClient(ctx context.Context, cfg *config.MinIOConfig) (*minio.Client, error) {
	c, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create MinIO client: %w", err)
	}

	if _, err := c.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("MinIO health check failed: %w", err)
	}

	return c, nil
}

// HealthCheck verifies connectivity and authentication by listing buckets.
func HealthCheck(ctx context.Context, c *minio.Client) error {
	if c == nil {
		return fmt.Errorf("MinIO client is not initialized")
	}
	if _, err := c.ListBuckets(ctx); err != nil {
		return fmt.Errorf("MinIO health check failed: %w", err)
	}
	return nil
}
