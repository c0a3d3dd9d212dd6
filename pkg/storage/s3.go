// Package storage stores uploaded image bytes and hands back stable reference
// URLs. The rest of the system only ever keeps the reference.
package storage

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// ImageStore uploads an image and returns its public URL.
type ImageStore interface {
	Upload(body io.Reader, filename string, prefix string) (url string, err error)
}

// S3ImageStore implements ImageStore on an S3 bucket.
type S3ImageStore struct {
	bucket   string
	region   string
	uploader *s3manager.Uploader
}

// NewS3ImageStore creates an S3-backed image store.
func NewS3ImageStore(bucket, region string) (*S3ImageStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return &S3ImageStore{
		bucket:   bucket,
		region:   region,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// Upload stores the image under a fresh random key, keeping the original file
// extension, and returns the object URL.
func (s *S3ImageStore) Upload(body io.Reader, filename string, prefix string) (string, error) {
	key := prefix + "/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
