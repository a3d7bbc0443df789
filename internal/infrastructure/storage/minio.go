package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Vinni986/AI-interview-platform/pkg/config"
)

// CVArchive stores uploaded resumes in MinIO and hands back links the
// HR dashboard can render. When storage is not configured the platform
// still accepts applications; the archive is simply skipped.
type CVArchive struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewCVArchive creates the archive client and ensures the bucket exists.
func NewCVArchive(cfg *config.StorageConfig) (*CVArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	a := &CVArchive{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	if err := a.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return a, nil
}

func (a *CVArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// PutCV archives one resume and returns the object key. Objects are laid
// out as cvs/<jd_hash>/<uuid>-<filename> so all resumes for a posting sit
// under one prefix.
func (a *CVArchive) PutCV(ctx context.Context, jdHash, filename string, data []byte) (string, error) {
	objectName := path.Join("cvs", jdHash, uuid.New().String()+"-"+filename)

	_, err := a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload CV: %w", err)
	}

	return objectName, nil
}

// CVLink returns a presigned URL for one archived resume. When MinIO sits
// behind a reverse proxy the configured public URL replaces the internal
// endpoint in the presigned link.
func (a *CVArchive) CVLink(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := a.client.PresignedGetObject(ctx, a.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	if a.publicURL != "" {
		urlStr := url.String()
		// scheme://host comes first; everything after it is /bucket/object?query
		hostEnd := len(url.Scheme) + 3 + len(url.Host)
		if hostEnd < len(urlStr) {
			return a.publicURL + urlStr[hostEnd:], nil
		}
	}

	return url.String(), nil
}

// ListCVs lists archived resume keys under one JD hash prefix.
func (a *CVArchive) ListCVs(ctx context.Context, jdHash string) ([]string, error) {
	var keys []string

	objectCh := a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    path.Join("cvs", jdHash) + "/",
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		keys = append(keys, object.Key)
	}

	return keys, nil
}
