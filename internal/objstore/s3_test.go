package objstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog"
)

type fakeS3 struct {
	putErr   error
	headErr  error
	putCalls int
	lastKey  string
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	f.putCalls++
	f.lastKey = aws.StringValue(in.Key)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObjectWithContext(ctx aws.Context, in *s3.HeadObjectInput, opts ...request.Option) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func tempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestUpload(t *testing.T) {
	fake := &fakeS3{}
	c := newWithAPI(fake, zerolog.Nop())

	if err := c.Upload(context.Background(), "bucket", "key.csv", tempFile(t)); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if fake.putCalls != 1 || fake.lastKey != "key.csv" {
		t.Errorf("putCalls = %d lastKey = %q", fake.putCalls, fake.lastKey)
	}
}

func TestUpload_MissingLocalFile(t *testing.T) {
	fake := &fakeS3{}
	c := newWithAPI(fake, zerolog.Nop())

	err := c.Upload(context.Background(), "bucket", "key", filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("Upload should fail for a missing local file")
	}
	if fake.putCalls != 0 {
		t.Errorf("no network call expected, got %d", fake.putCalls)
	}
}

func TestUpload_APIError(t *testing.T) {
	fake := &fakeS3{putErr: awserr.New("AccessDenied", "denied", nil)}
	c := newWithAPI(fake, zerolog.Nop())

	if err := c.Upload(context.Background(), "bucket", "key", tempFile(t)); err == nil {
		t.Fatal("Upload should surface API errors")
	}
}

func TestExists(t *testing.T) {
	tests := []struct {
		name    string
		headErr error
		want    bool
		wantErr bool
	}{
		{"present", nil, true, false},
		{"not found code", awserr.New("NotFound", "missing", nil), false, false},
		{"no such key", awserr.New(s3.ErrCodeNoSuchKey, "missing", nil), false, false},
		{
			"404 request failure",
			awserr.NewRequestFailure(awserr.New("Unknown", "missing", nil), 404, "req-1"),
			false, false,
		},
		{"access denied surfaces", awserr.New("AccessDenied", "denied", nil), false, true},
		{"plain error surfaces", errors.New("conn reset"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newWithAPI(&fakeS3{headErr: tt.headErr}, zerolog.Nop())
			got, err := c.Exists(context.Background(), "bucket", "key")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Exists = %v, want %v", got, tt.want)
			}
		})
	}
}
