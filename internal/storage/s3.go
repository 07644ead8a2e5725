package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/config"
)

// S3Backend stores files in an S3 (or S3-compatible) bucket.
type S3Backend struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
}

func NewS3Backend(cfg *config.Config) *S3Backend {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.S3Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	if cfg.S3Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.S3Endpoint)
	}

	if cfg.S3UsePathStyle {
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess := session.Must(session.NewSession(awsCfg))

	return &S3Backend{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.S3Bucket,
	}
}

func (b *S3Backend) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	counted := &countingReader{r: r}
	_, err := b.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        counted,
		ContentType: aws.String(ContentTypeFor(key)),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	return counted.n, nil
}

func (b *S3Backend) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	out, err := b.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to download %s from S3: %w", key, err)
	}

	var size int64
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return out.Body, size, nil
}

func (b *S3Backend) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := b.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil
		}
		return fmt.Errorf("failed to delete %s from S3: %w", key, err)
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
