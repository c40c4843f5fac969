// Package storage uploads item images and avatars to an S3-compatible
// object store and hands back their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config carries the S3-compatible endpoint settings.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	PublicURL       string
}

// Uploader stores binary files under generated names in a named bucket.
// A nil Uploader means object storage is not configured.
type Uploader struct {
	client *s3.Client
	cfg    Config
}

// NewUploader creates an Uploader, or nil when no endpoint is configured.
func NewUploader(cfg Config) *Uploader {
	if cfg.Endpoint == "" {
		return nil
	}

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})

	return &Uploader{client: client, cfg: cfg}
}

// Upload stores body under a generated name inside folder, preserving the
// original file extension, and returns the public URL.
func (u *Uploader) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), filepath.Ext(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", u.cfg.PublicURL, key), nil
}
