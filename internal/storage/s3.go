package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Client wraps the AWS SDK for report export storage. All keys are scoped
// under the configured prefix.
type S3Client struct {
	bucket   string
	prefix   string
	uploader *s3manager.Uploader
	s3Svc    *s3.S3
}

func NewS3Client(bucket, prefix, region string) (*S3Client, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Client{
		bucket:   bucket,
		prefix:   prefix,
		uploader: s3manager.NewUploader(sess),
		s3Svc:    s3.New(sess),
	}, nil
}

// NewS3ClientForExport builds a client from explicit values with environment
// fallbacks, so scripted exports work without a saved profile.
func NewS3ClientForExport(bucket, prefix string) (*S3Client, error) {
	if bucket == "" {
		bucket = os.Getenv("CREDFLOW_EXPORT_BUCKET")
	}
	if prefix == "" {
		prefix = os.Getenv("CREDFLOW_EXPORT_PREFIX")
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "eu-west-1"
	}
	return NewS3Client(bucket, prefix, region)
}

func (c *S3Client) UploadFile(localPath, s3Key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", localPath, err)
	}
	defer file.Close()

	key := c.buildKey(s3Key)
	_, err = c.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to s3://%s/%s: %w", c.bucket, key, err)
	}

	return nil
}

func (c *S3Client) UploadContent(content []byte, s3Key string) error {
	key := c.buildKey(s3Key)
	_, err := c.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return fmt.Errorf("failed to upload content to s3://%s/%s: %w", c.bucket, key, err)
	}
	return nil
}

func (c *S3Client) DownloadContent(s3Key string) ([]byte, error) {
	key := c.buildKey(s3Key)

	buff := &aws.WriteAtBuffer{}
	downloader := s3manager.NewDownloaderWithClient(c.s3Svc)
	_, err := downloader.Download(buff, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download content from s3://%s/%s: %w", c.bucket, key, err)
	}

	return buff.Bytes(), nil
}

// ListKeys returns all object keys under the given prefix, relative to the
// client's configured prefix.
func (c *S3Client) ListKeys(s3Prefix string) ([]string, error) {
	var keys []string

	prefix := c.buildKey(s3Prefix)
	err := c.s3Svc.ListObjectsV2Pages(&s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			keys = append(keys, aws.StringValue(obj.Key))
		}
		return true
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	return keys, nil
}

func (c *S3Client) KeyExists(s3Key string) (bool, error) {
	key := c.buildKey(s3Key)
	_, err := c.s3Svc.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *S3Client) Bucket() string {
	return c.bucket
}

func (c *S3Client) Prefix() string {
	return c.prefix
}

func (c *S3Client) buildKey(key string) string {
	if c.prefix == "" {
		return key
	}
	key = strings.TrimPrefix(key, "/")
	return filepath.Join(c.prefix, key)
}

func (c *S3Client) S3URI(key string) string {
	fullKey := c.buildKey(key)
	return fmt.Sprintf("s3://%s/%s", c.bucket, fullKey)
}
