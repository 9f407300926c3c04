// internal/app/store/imagestore/s3.go
package imagestore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config covers AWS S3 and S3-compatible stores like Cloudflare R2
// (set Endpoint to the account endpoint for R2).
type S3Config struct {
	Endpoint        string // optional custom endpoint
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string // base URL objects are served from (CDN or bucket URL)
}

// S3 stores objects in a bucket and returns PublicURL-based links.
type S3 struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3 builds the bucket client from static credentials.
func NewS3(cfg S3Config) *S3 {
	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return &S3{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}
}

func (s *S3) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}
