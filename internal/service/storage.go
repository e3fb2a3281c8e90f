// Package service holds the upload lifecycle and catalog read logic
// that sits between the HTTP handlers and the store
package service

import (
	"context"
	"time"

	"github.com/spf13/viper"
)

// Storage is the slice of the object storage gateway the services
// need. aws.S3Client satisfies it.
type Storage interface {
	PresignPut(ctx context.Context, key, mimeType string, ttl time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	StatObject(ctx context.Context, key string) (exists bool, size int64, err error)
}

// PresignTTL returns the configured lifetime for presigned URLs,
// falling back to an hour when upload.presign_ttl is unset.
func PresignTTL() time.Duration {
	if sec := viper.GetInt("upload.presign_ttl"); sec > 0 {
		return time.Duration(sec) * time.Second
	}

	return time.Hour
}
