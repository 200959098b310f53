package minio

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/config"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/inventory/reports"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ReportArchive keeps exported reports in an object store bucket.
type ReportArchive struct {
	minioClient *minio.Client
	bucketName  string
	logger      *zap.Logger
}

func NewReportArchive(cfg config.MinIOConfig, logger *zap.Logger) (*ReportArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &ReportArchive{
		minioClient: minioClient,
		bucketName:  cfg.Bucket,
		logger:      logger.Named("minio"),
	}, nil
}

// EnsureBucket creates the bucket on first use.
func (a *ReportArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.minioClient.BucketExists(ctx, a.bucketName)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucketName, err)
	}
	if exists {
		return nil
	}
	if err := a.minioClient.MakeBucket(ctx, a.bucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", a.bucketName, err)
	}
	a.logger.Info("Report bucket created", zap.String("bucket", a.bucketName))
	return nil
}

// ObjectName files a report under reports/YYYY/MM/DD/.
func ObjectName(filename string, at time.Time) string {
	return fmt.Sprintf("reports/%s/%s", at.UTC().Format("2006/01/02"), filename)
}

// Archive uploads the artifact and returns its object name.
func (a *ReportArchive) Archive(ctx context.Context, artifact *reports.Artifact, at time.Time) (string, error) {
	objectName := ObjectName(artifact.Filename, at)

	_, err := a.minioClient.PutObject(ctx, a.bucketName, objectName, bytes.NewReader(artifact.Body), int64(len(artifact.Body)), minio.PutObjectOptions{
		ContentType: artifact.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload report %s: %w", objectName, err)
	}

	a.logger.Info("Report archived", zap.String("bucket", a.bucketName), zap.String("object", objectName))
	return objectName, nil
}
