package services

import (
	"context"
	"io"

	"github.com/jdihkota/jdih-api/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService wraps the MinIO bucket holding document files.
type StorageService struct {
	client *minio.Client
	bucket string
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	// Ensure bucket exists
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, err
		}
	}

	return &StorageService{
		client: client,
		bucket: cfg.MinIOBucket,
	}, nil
}

// OpenFile returns a reader over the stored object together with its size.
// A missing object surfaces as ErrFileMissing; the caller decides whether
// that is fatal.
func (s *StorageService) OpenFile(ctx context.Context, path string) (io.ReadCloser, int64, error) {
	object, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}

	// GetObject is lazy; Stat performs the actual lookup and is how a
	// missing file is detected before any bytes are promised.
	stat, err := object.Stat()
	if err != nil {
		object.Close()
		response := minio.ToErrorResponse(err)
		if response.Code == "NoSuchKey" || response.StatusCode == 404 {
			return nil, 0, ErrFileMissing
		}
		return nil, 0, err
	}

	return object, stat.Size, nil
}

func (s *StorageService) DeleteFile(ctx context.Context, path string) error {
	return s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
}
