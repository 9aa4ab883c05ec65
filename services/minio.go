package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"schedule-bot/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOService - доступ к бакету с ресурсами бота (файл фраз)
type MinIOService struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

func NewMinIOService(cfg *config.Config, logger *slog.Logger) (*MinIOService, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &MinIOService{
		client: client,
		bucket: cfg.MinIOBucket,
		logger: logger,
	}, nil
}

func (s *MinIOService) Bucket() string {
	return s.bucket
}

// DownloadFile скачивает объект из указанного бакета целиком
func (s *MinIOService) DownloadFile(ctx context.Context, bucket, objectPath string) ([]byte, error) {
	s.logger.Info("downloading object", "bucket", bucket, "object", objectPath)

	object, err := s.client.GetObject(ctx, bucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return nil, fmt.Errorf("object %s/%s not found: %w", bucket, objectPath, err)
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return data, nil
}
