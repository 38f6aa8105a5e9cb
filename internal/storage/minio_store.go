package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore stores objects in any S3-compatible bucket. Constructed
// once at boot and injected.
type MinioStore struct {
	client        *minio.Client
	publicBaseURL string
}

func NewMinioStore(endpoint, accessKey, secretKey string, useSSL bool, publicBaseURL string) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("initialising object-store client: %w", err)
	}
	return &MinioStore{
		client:        client,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (*UploadResult, error) {
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading %s/%s: %w", bucket, key, err)
	}
	return &UploadResult{
		URL: fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, key),
		Key: key,
	}, nil
}
