package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"perf-track-backend/config"
	s3client "perf-track-backend/s3"
)

// Provider stores evidence files and hands back opaque object keys. The
// caller persists only the key.
type Provider interface {
	UploadEvidence(ctx context.Context, taskID, fileName string, file []byte) (fileKey string, err error)
	GetEvidence(ctx context.Context, fileKey string) ([]byte, error)
	DeleteEvidence(ctx context.Context, fileKey string) error
	EvidencePath(taskID string) string
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		s3client: s3client.Client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) UploadEvidence(ctx context.Context, taskID, fileName string, file []byte) (string, error) {
	fileKey := fmt.Sprintf("%s/%s%s", taskID, uuid.NewString(), path.Ext(fileName))
	reader := bytes.NewReader(file)
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, fileKey, reader, int64(len(file)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", err
	}
	return fileKey, nil
}

func (i impl) GetEvidence(ctx context.Context, fileKey string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, fileKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()
	return io.ReadAll(object)
}

func (i impl) DeleteEvidence(ctx context.Context, fileKey string) error {
	return i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, fileKey, minio.RemoveObjectOptions{})
}

func (i impl) EvidencePath(taskID string) string {
	return fmt.Sprintf("/api/v1/staff/task/%s/evidence", taskID)
}
