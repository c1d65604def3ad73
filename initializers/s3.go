package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"perf-track-backend/config"
	s3client "perf-track-backend/s3"
)

func InitS3(ctx context.Context) {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV2(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("failed to init s3 client")
		return
	}

	s3client.Client = minioClient
	if err = s3client.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("failed to ensure evidence bucket")
		return
	}
	log.Info("s3 client initialized")
}
