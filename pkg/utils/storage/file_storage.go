package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"assetdesk_backend/pkg/utils/image"
)

var (
	s3Client   *s3.Client
	bucketName = "assetdesk-images"
	region     = "eu-central-1"
)

func InitStorage() error {
	if b := os.Getenv("AWS_BUCKET_NAME"); b != "" {
		bucketName = b
	}
	if r := os.Getenv("AWS_REGION"); r != "" {
		region = r
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	return nil
}

// UploadImage re-encodes the upload and stores it under
// <category>/<property-code>/<uuid>.<ext>. Category separates property
// photos from survey geo maps.
func UploadImage(file *multipart.FileHeader, category, propertyCode string) (string, error) {
	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return "", err
	}

	ext := strings.TrimPrefix(contentType, "image/")
	key := fmt.Sprintf("%s/%s/%s.%s",
		category,
		slug.Make(propertyCode),
		uuid.New().String(),
		ext,
	)

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, region, key), nil
}

// DeleteImage S3'ten resmi siler
func DeleteImage(imageURL string) error {
	parts := strings.Split(imageURL, "/")
	if len(parts) < 4 {
		return fmt.Errorf("unexpected image URL: %s", imageURL)
	}
	key := strings.Join(parts[3:], "/")

	_, err := s3Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})

	return err
}
