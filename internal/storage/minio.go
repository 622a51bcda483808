package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// MinioStore presigns uploads and downloads for profile images.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinio connects to MinIO and makes sure the bucket exists. A failed
// bucket check is logged, not fatal: the server can run without uploads.
func NewMinio(ctx context.Context, opts MinioOptions, log *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		// a fixed region keeps presigning offline
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		log.Warn("failed to check bucket existence", "bucket", opts.Bucket, "error", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			log.Warn("failed to create bucket", "bucket", opts.Bucket, "error", err)
		} else {
			log.Info("created bucket", "bucket", opts.Bucket)
		}
	}

	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

func (s *MinioStore) PresignUpload(ctx context.Context, object string, expiry time.Duration) (*url.URL, error) {
	return s.client.PresignedPutObject(ctx, s.bucket, object, expiry)
}

func (s *MinioStore) PresignDownload(ctx context.Context, object string, expiry time.Duration) (*url.URL, error) {
	return s.client.PresignedGetObject(ctx, s.bucket, object, expiry, nil)
}

// ObjectExists stats object; a missing key is (false, nil).
func (s *MinioStore) ObjectExists(ctx context.Context, object string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, object, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("minio stat %s: %w", object, err)
}

// Ping reports whether the bucket is reachable.
func (s *MinioStore) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("minio: %w", err)
	}
	return nil
}
