package aws

import (
	"context"
	"fmt"
	"io"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImagePresigner hands out short-lived GET URLs for objects in one bucket.
type ImagePresigner struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

func NewImagePresigner(cfg sdkaws.Config, bucket string, expiry time.Duration) *ImagePresigner {
	return &ImagePresigner{
		presigner: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		bucket:    bucket,
		expiry:    expiry,
	}
}

// PresignGet returns a URL that reads key until the expiry elapses.
func (p *ImagePresigner) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := p.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: sdkaws.String(p.bucket),
		Key:    sdkaws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = p.expiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign get object: %w", err)
	}
	return req.URL, nil
}

// UploadAPI is the part of the S3 transfer manager ImageUploader needs.
type UploadAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// ImageUploader writes menu images into one bucket. Large bodies are sent
// as multipart uploads by the transfer manager.
type ImageUploader struct {
	api    UploadAPI
	bucket string
}

func NewImageUploader(cfg sdkaws.Config, bucket string) *ImageUploader {
	return NewImageUploaderWithAPI(manager.NewUploader(s3.NewFromConfig(cfg)), bucket)
}

func NewImageUploaderWithAPI(api UploadAPI, bucket string) *ImageUploader {
	return &ImageUploader{api: api, bucket: bucket}
}

func (u *ImageUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := u.api.Upload(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(u.bucket),
		Key:         sdkaws.String(key),
		Body:        body,
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
