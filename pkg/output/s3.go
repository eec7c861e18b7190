package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// DefaultUploadTimeout bounds a single PutObject call
const DefaultUploadTimeout = 30 * time.Second

// S3Config describes the bucket frames are uploaded to
type S3Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string // optional, for S3-compatible stores
	AccessKey string // empty uses the default credential chain
	SecretKey string
	ACL       string
	Timeout   time.Duration
}

// S3Sink uploads PNG frames to a bucket
type S3Sink struct {
	client s3iface.S3API
	config S3Config
}

// NewS3Sink wraps an existing client
func NewS3Sink(client s3iface.S3API, config S3Config) (*S3Sink, error) {
	if config.Bucket == "" {
		return nil, ErrNoBucket
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultUploadTimeout
	}
	return &S3Sink{client: client, config: config}, nil
}

// DialS3 opens an AWS session for config and returns a sink using it
func DialS3(config S3Config) (*S3Sink, error) {
	if config.Bucket == "" {
		return nil, ErrNoBucket
	}

	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create S3 session: %w", err)
	}
	return NewS3Sink(s3.New(sess), config)
}

// Key returns the object key a frame called name is stored under
func (s *S3Sink) Key(name string) string {
	return path.Join(s.config.Prefix, pngName(name))
}

func (s *S3Sink) Write(ctx context.Context, name string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	key := s.Key(name)
	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	}
	if s.config.ACL != "" {
		input.ACL = aws.String(s.config.ACL)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logger.Noticef("uploaded %s to s3://%s (%d bytes)", key, s.config.Bucket, size)
	return nil
}
