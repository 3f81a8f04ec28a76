// Package objstore uploads processed files to S3 and verifies they
// arrived. It is orthogonal to the CSV pipeline: the only coupling is
// that its input is usually a pipeline output file.
package objstore

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog"
)

// s3API is the slice of the S3 client the package uses. Tests substitute
// a fake; *s3.S3 satisfies it.
type s3API interface {
	PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
	HeadObjectWithContext(ctx aws.Context, in *s3.HeadObjectInput, opts ...request.Option) (*s3.HeadObjectOutput, error)
}

// Client uploads objects and checks for their existence.
type Client struct {
	api s3API
	log zerolog.Logger
}

// New creates a Client. Credentials come from the environment or, when
// profile is non-empty, the named shared-config profile.
func New(region, profile string, log zerolog.Logger) (*Client, error) {
	opts := session.Options{
		SharedConfigState: session.SharedConfigEnable,
		Profile:           profile,
	}
	if region != "" {
		opts.Config = aws.Config{Region: aws.String(region)}
	}
	sess, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return &Client{api: s3.New(sess), log: log}, nil
}

// newWithAPI wires a Client over an existing API implementation. Used by
// tests.
func newWithAPI(api s3API, log zerolog.Logger) *Client {
	return &Client{api: api, log: log}
}

// Upload puts a local file at s3://bucket/key. A missing local file is an
// error before any network call is made.
func (c *Client) Upload(ctx context.Context, bucket, key, file string) error {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("local file %s does not exist", file)
		}
		return fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	_, err = c.api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", bucket, key, err)
	}

	c.log.Info().
		Str("file", file).
		Str("bucket", bucket).
		Str("key", key).
		Msg("uploaded")
	return nil
}

// Exists reports whether s3://bucket/key is present. A NotFound response
// is (false, nil); any other API failure is an error.
func (c *Client) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := c.api.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case "NotFound", s3.ErrCodeNoSuchKey:
			return false, nil
		}
		if rf, ok := err.(awserr.RequestFailure); ok && rf.StatusCode() == 404 {
			return false, nil
		}
	}
	return false, fmt.Errorf("head s3://%s/%s: %w", bucket, key, err)
}
