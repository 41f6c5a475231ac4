package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const productImagePrefix = "products"

// ImageStorage stores product images and returns their public URL.
type ImageStorage interface {
	Upload(ctx context.Context, productID, originalFileName string, data []byte) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

type S3Storage struct {
	client *minio.Client
	bucket string
	log    logger.Logger
}

func NewS3Storage(ctx context.Context, cfg config.MinIOConfig, log logger.Logger) (*S3Storage, error) {
	log.Infof("Initializing MinIO storage: endpoint=%s bucket=%s ssl=%t", cfg.Endpoint, cfg.Bucket, cfg.UseSSL)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		log.Infof("Created bucket %s", cfg.Bucket)
	}

	return &S3Storage{client: client, bucket: cfg.Bucket, log: log}, nil
}

// ObjectKey builds products/<productID>/<uuid><ext>.
func ObjectKey(productID, originalFileName string) string {
	ext := strings.ToLower(filepath.Ext(originalFileName))
	return fmt.Sprintf("%s/%s/%s%s", productImagePrefix, productID, uuid.NewString(), ext)
}

func (s *S3Storage) Upload(ctx context.Context, productID, originalFileName string, data []byte) (string, error) {
	objectKey := ObjectKey(productID, originalFileName)

	info, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  http.DetectContentType(data),
		UserMetadata: map[string]string{"original-filename": originalFileName},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}
	s.log.Infof("Uploaded product image: key=%s size=%d etag=%s", info.Key, info.Size, info.ETag)

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey), nil
}

// Delete removes an object previously returned by Upload. URLs outside the
// bucket are ignored.
func (s *S3Storage) Delete(ctx context.Context, fileURL string) error {
	prefix := fmt.Sprintf("%s/%s/", s.client.EndpointURL().String(), s.bucket)
	if !strings.HasPrefix(fileURL, prefix) {
		return nil
	}
	key := strings.TrimPrefix(fileURL, prefix)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}
