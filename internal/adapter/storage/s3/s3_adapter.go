package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

const defaultRegion = "us-east-1"

// S3Storage hands out time-limited download links for 3D model objects.
type S3Storage struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
	logger *logger.Logger
}

// NewS3Storage connects to MinIO and makes sure the bucket exists.
func NewS3Storage(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, ttl time.Duration, log *logger.Logger) (*S3Storage, error) {
	log.Info("Initializing S3 MinIO Storage",
		zap.String("endpoint", endpoint),
		zap.String("bucket", bucket),
		zap.Bool("use_ssl", useSSL))

	client, err := newClient(endpoint, accessKey, secretKey, useSSL)
	if err != nil {
		log.Error("S3Storage: failed to create MinIO client", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: defaultRegion}); err != nil {
			log.Error("S3Storage: failed to make bucket", zap.String("bucket", bucket), zap.Error(err))
			return nil, fmt.Errorf("failed to make bucket %s: %w", bucket, err)
		}
		log.Info("S3Storage: bucket created", zap.String("bucket", bucket))
	}

	return newStorage(client, bucket, ttl, log), nil
}

func newClient(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: defaultRegion,
	})
}

func newStorage(client *minio.Client, bucket string, ttl time.Duration, log *logger.Logger) *S3Storage {
	return &S3Storage{
		client: client,
		bucket: bucket,
		ttl:    ttl,
		logger: log.Named("S3Storage"),
	}
}

// ObjectKey maps a stored model path such as "/models/jacket1.glb" onto its
// object key inside the bucket.
func ObjectKey(modelPath string) string {
	return strings.TrimLeft(modelPath, "/")
}

// PresignedURL signs a GET for the object behind modelPath.
func (s *S3Storage) PresignedURL(ctx context.Context, modelPath string) (string, error) {
	key := ObjectKey(modelPath)
	if key == "" {
		return "", domain.ErrAssetNotFound
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, url.Values{})
	if err != nil {
		s.logger.Error("S3Storage: failed to presign object", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to presign object %s in bucket %s: %w", key, s.bucket, err)
	}
	s.logger.Debug("S3Storage: presigned model URL", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return u.String(), nil
}
