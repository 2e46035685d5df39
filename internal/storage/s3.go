package storage

import (
	"context"
	"strings"
	"time"

	"fitchallenge/internal/config"
	"fitchallenge/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// s3Storage implements MediaStorage on an S3-compatible backend.
type s3Storage struct {
	presignClient *s3.PresignClient
	bucketName    string
	publicBaseURL string
	logger        *logger.LogMiddleware
}

// NewS3Storage creates the media store. Endpoint may point at MinIO or Spaces; path-style
// addressing is always used.
func NewS3Storage(ctx context.Context, cfg config.S3Config, log *logger.LogMiddleware) (MediaStorage, error) {
	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Logger(ctx).Error("[S3] Failed to load AWS SDK config", zap.Error(err))
		return nil, err
	}

	endpoint := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" && endpoint != "" {
		publicBase = strings.TrimRight(endpoint, "/") + "/" + cfg.BucketName
	}
	if publicBase == "" {
		publicBase = "https://" + cfg.BucketName + ".s3." + cfg.Region + ".amazonaws.com"
	}

	log.Logger(ctx).Info("[S3] Media storage initialized",
		zap.String("endpoint", endpoint),
		zap.String("bucket", cfg.BucketName))

	return &s3Storage{
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    cfg.BucketName,
		publicBaseURL: publicBase,
		logger:        log,
	}, nil
}

func normalizeEndpoint(endpoint string, useSSL bool) string {
	if endpoint == "" || strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// GeneratePresignedUploadURL creates a temporary URL for uploading (PUT).
func (s *s3Storage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}

	presignParams := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType), // the client must send the same header
	}

	req, err := s.presignClient.PresignPutObject(ctx, presignParams, s3.WithPresignExpires(expires))
	if err != nil {
		s.logger.Logger(ctx).Error("[S3] Failed to generate presigned PUT URL", zap.String("key", objectKey), zap.Error(err))
		return "", err
	}

	return req.URL, nil
}

func (s *s3Storage) PublicURL(objectKey string) string {
	return s.publicBaseURL + "/" + objectKey
}
