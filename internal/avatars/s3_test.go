package avatars

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3Store_WiresClient(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	var loadedRegion string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		opts := &awsconfig.LoadOptions{}
		for _, fn := range optFns {
			require.NoError(t, fn(opts))
		}
		loadedRegion = opts.Region

		creds, err := opts.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin", creds.AccessKeyID)
		assert.Equal(t, "secretpassword", creds.SecretAccessKey)

		return aws.Config{Region: opts.Region, Credentials: opts.Credentials}, nil
	}

	var clientOpts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&clientOpts)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	store, err := NewS3Store(context.Background(), S3Config{
		RootUser:     "admin",
		RootPassword: "secretpassword",
		Bucket:       "avatars",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000/",
	})
	require.NoError(t, err)
	require.NotNil(t, store)

	assert.Equal(t, "avatars", store.bucket)
	assert.Equal(t, "us-east-1", loadedRegion)
	require.NotNil(t, clientOpts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000/", *clientOpts.BaseEndpoint)
	assert.True(t, clientOpts.UsePathStyle)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "avatars/neo", objectKey("neo"))
}
