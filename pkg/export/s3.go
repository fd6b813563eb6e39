package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
}

// S3Uploader publishes finished reports to a bucket.
type S3Uploader struct {
	client PutObjectAPI
	bucket string
	prefix string
}

func NewS3Uploader(client PutObjectAPI, cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket cannot be empty")
	}
	return &S3Uploader{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// NewS3UploaderFromEnv builds the client from the default AWS credential
// chain.
func NewS3UploaderFromEnv(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewS3Uploader(s3.NewFromConfig(awsCfg), cfg)
}

// Upload stores body under prefix/fileName and returns the s3:// location.
// An empty contentType means UTF-8 CSV.
func (u *S3Uploader) Upload(ctx context.Context, fileName, contentType string, body []byte) (string, error) {
	key := path.Join(u.prefix, fileName)
	if contentType == "" {
		contentType = ContentType
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(u.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(body),
		ContentLength:      aws.Int64(int64(len(body))),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(Disposition(fileName)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, u.bucket, err)
	}

	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
