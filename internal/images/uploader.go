package images

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/punto-pos/pos-backend/config"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader stores normalized dish images in the S3-compatible bucket and
// derives the public URL by concatenating the configured base URL with the
// object path (bucket policy handles access; no signed URLs).
type Uploader struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
}

func NewUploader(client objectPutter, cfg *appconfig.StorageConfig) *Uploader {
	return &Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}
}

// Upload writes the image under dish_<timestamp>.<ext> with upsert
// semantics and returns the storage path.
func (u *Uploader) Upload(ctx context.Context, img *Normalized) (string, error) {
	name := ObjectName(time.Now(), img.Extension)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(name),
		Body:         bytes.NewReader(img.Data),
		ContentType:  aws.String(img.ContentType),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return name, nil
}

// PublicURL derives the browser-facing URL for a stored object path.
func (u *Uploader) PublicURL(path string) string {
	if u.publicBaseURL == "" {
		return path
	}
	return u.publicBaseURL + "/" + strings.TrimPrefix(path, "/")
}
