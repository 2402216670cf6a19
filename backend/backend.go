// Package backend builds the backing medium described by a configuration.
package backend

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/hupe1980/respool/blobstore"
	"github.com/hupe1980/respool/blobstore/dynamodb"
	minioblob "github.com/hupe1980/respool/blobstore/minio"
	redisblob "github.com/hupe1980/respool/blobstore/redis"
	s3blob "github.com/hupe1980/respool/blobstore/s3"
	"github.com/hupe1980/respool/config"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the BlobStore selected by cfg.Backend. The returned closer
// releases client connections and must be called when the store is no
// longer used.
func New(ctx context.Context, cfg config.Config) (blobstore.BlobStore, io.Closer, error) {
	b := cfg.Backend
	switch b.Type {
	case "", config.BackendLocal:
		if cfg.StorageRoot == "" {
			return nil, nil, fmt.Errorf("%w: storage_root is empty", config.ErrInvalid)
		}
		return blobstore.NewLocalStore(cfg.StorageRoot), nopCloser{}, nil

	case config.BackendMemory:
		return blobstore.NewMemoryStore(), nopCloser{}, nil

	case config.BackendS3:
		awsCfg, err := loadAWS(ctx, b)
		if err != nil {
			return nil, nil, err
		}
		client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
			if b.Endpoint != "" {
				o.BaseEndpoint = aws.String(b.Endpoint)
				o.UsePathStyle = true
			}
		})
		return s3blob.NewStore(client, b.Bucket, b.Prefix), nopCloser{}, nil

	case config.BackendDynamoDB:
		awsCfg, err := loadAWS(ctx, b)
		if err != nil {
			return nil, nil, err
		}
		client := awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
			if b.Endpoint != "" {
				o.BaseEndpoint = aws.String(b.Endpoint)
			}
		})
		return dynamodb.NewStore(client, b.Table, b.Prefix), nopCloser{}, nil

	case config.BackendMinIO:
		client, err := minio.New(b.Endpoint, &minio.Options{
			Creds:  miniocreds.NewStaticV4(b.AccessKey, b.SecretKey, ""),
			Secure: b.Secure,
			Region: b.Region,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("minio client: %w", err)
		}
		return minioblob.NewStore(client, b.Bucket, b.Prefix), nopCloser{}, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr: b.RedisAddr,
			DB:   b.RedisDB,
		})
		return redisblob.NewStore(client, b.Prefix), client, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown backend type %q", config.ErrInvalid, b.Type)
	}
}

func loadAWS(ctx context.Context, b config.Backend) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if b.Region != "" {
		opts = append(opts, awsconfig.WithRegion(b.Region))
	}
	if b.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(b.AccessKey, b.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}
