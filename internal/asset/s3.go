package asset

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-marketplace/internal/config"
	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// objectAPI is the subset of *s3.Client used by the S3 store.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// s3Store keeps assets as objects of an S3-compatible bucket. The object key
// doubles as the asset's public id.
type s3Store struct {
	client        objectAPI
	bucket        string
	publicBaseURL string
	newKey        func() string
}

// NewS3Store builds a [Store] on the bucket described by cfg. When
// cfg.Endpoint is set (MinIO and friends) path-style addressing is used.
func NewS3Store(ctx context.Context, cfg config.S3, logger *logger.Logger) (Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		logger.Err(err).Str("func", "NewS3Store").Msg("failed to load aws config")
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Debug().Str("bucket", cfg.Bucket).Msg("creating s3 asset store")

	return &s3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		newKey:        func() string { return uuid.NewString() },
	}, nil
}

func (s *s3Store) Upload(ctx context.Context, image models.Image, folder string) (models.Asset, error) {
	key := strings.Trim(folder, "/") + "/" + s.newKey() + "." + Extension(image.ContentType)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(image.Data),
		ContentType:   aws.String(image.ContentType),
		ContentLength: aws.Int64(int64(len(image.Data))),
	})
	if err != nil {
		return models.Asset{}, fmt.Errorf("s3 put object %s: %w", key, err)
	}

	return models.Asset{
		URL:      s.publicBaseURL + "/" + key,
		PublicID: key,
		Format:   Extension(image.ContentType),
		Bytes:    int64(len(image.Data)),
	}, nil
}

func (s *s3Store) Destroy(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object %s: %w", publicID, err)
	}
	return nil
}
