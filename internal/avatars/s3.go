package avatars

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/omegalab/omegaboard/internal/common"
	"github.com/omegalab/omegaboard/internal/models"
)

// Seams for testing the AWS wiring without a live endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Config holds the settings for an S3-compatible avatar backend
// (MinIO-style static credentials plus a base endpoint).
type S3Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// S3Store keeps avatar blobs as JSON objects in a bucket, one object per
// username. Useful when several deployments should share uploaded avatars.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.RootUser,
			cfg.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

func objectKey(username string) string {
	return "avatars/" + username
}

func (s *S3Store) Put(ctx context.Context, username string, blob *models.AvatarBlob) error {
	b, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encoding avatar: %w", err)
	}

	key := objectKey(username)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("uploading avatar for %s: %w", username, err)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, username string) (*models.AvatarBlob, error) {
	key := objectKey(username)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, common.ErrAvatarNotFound
		}
		return nil, fmt.Errorf("downloading avatar for %s: %w", username, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading avatar for %s: %w", username, err)
	}

	var blob models.AvatarBlob
	if err := json.Unmarshal(b, &blob); err != nil {
		return nil, fmt.Errorf("decoding avatar for %s: %w", username, err)
	}
	return &blob, nil
}

func (s *S3Store) Delete(ctx context.Context, username string) error {
	key := objectKey(username)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting avatar for %s: %w", username, err)
	}
	return nil
}
