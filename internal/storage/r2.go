package storage

//go:generate mockgen -destination=../mocks/mock_object_uploader.go -package=mocks github.com/Shaurya8425/Blogs/internal/storage ObjectUploader

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectUploader stores a blob and returns its public URL.
type ObjectUploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// R2Client uploads post images to a Cloudflare R2 bucket through the
// S3-compatible API.
type R2Client struct {
	client    *s3.Client
	bucket    string
	accountID string
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

func NewR2Client(ctx context.Context, cfg R2Config) (*R2Client, error) {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("incomplete R2 configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Client{client: client, bucket: cfg.Bucket, accountID: cfg.AccountID}, nil
}

func (r *R2Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	// Public bucket domain: https://<bucket>.<account-id>.r2.dev/<key>
	return fmt.Sprintf("https://%s.%s.r2.dev/%s", r.bucket, r.accountID, key), nil
}
