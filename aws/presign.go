package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// DefaultPresignTTL is used when a caller passes 0. Expiry is enforced
// by the storage service, not by us.
const DefaultPresignTTL = time.Hour

// PresignPut mints a URL that authorizes a single HTTP PUT of the given
// content type to the given key. The large binary payload flows
// directly between client and storage, the server only ever handles
// metadata.
func (s *S3Client) PresignPut(ctx context.Context, key, mimeType string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}

	req, err := s.Presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      s.Bucket,
		Key:         aws.String(key),
		ContentType: aws.String(mimeType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign PUT for '%s', %w", key, err)
	}

	return req.URL, nil
}

// PresignGet mints a URL that authorizes a single HTTP GET of the given
// key, used by the gallery player to stream straight from the bucket.
func (s *S3Client) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}

	req, err := s.Presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign GET for '%s', %w", key, err)
	}

	return req.URL, nil
}

// StatObject reports whether an object exists and how big it is.
// Returns exists=false without an error when the key is absent.
func (s *S3Client) StatObject(ctx context.Context, key string) (exists bool, size int64, err error) {
	out, err := s.C.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return false, 0, nil
			}
		}

		return false, 0, fmt.Errorf("failed to stat '%s', %w", key, err)
	}

	if out.ContentLength != nil {
		size = *out.ContentLength
	}

	return true, size, nil
}
