package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"winemap/internal/keys"
)

// S3Options configures the connection to an S3-compatible server.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
}

// NewMinioClient connects to the server described by opts.
func NewMinioClient(opts S3Options) (*minio.Client, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, fmt.Errorf("missing one or more required settings: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return client, nil
}

// S3Slot keeps the slot as a single object in a bucket.
type S3Slot struct {
	client *minio.Client
	bucket string
	key    string
	logger *zap.Logger
}

func NewS3Slot(client *minio.Client, bucket, slot string, logger *zap.Logger) *S3Slot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Slot{client: client, bucket: bucket, key: keys.Object(slot), logger: logger}
}

// Key returns the object key of the slot.
func (s *S3Slot) Key() string { return s.key }

// Bucket returns the bucket holding the slot.
func (s *S3Slot) Bucket() string { return s.bucket }

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3Slot) EnsureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("created bucket", zap.String("bucket", s.bucket))
	return nil
}

func (s *S3Slot) Read(ctx context.Context) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer object.Close()

	// GetObject is lazy; a missing key only surfaces on the first read.
	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to read object %s/%s: %w", s.bucket, s.key, err)
	}
	return data, nil
}

func (s *S3Slot) Write(ctx context.Context, blob []byte) error {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		s.key,
		bytes.NewReader(blob),
		int64(len(blob)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store object in S3: %w", err)
	}
	s.logger.Debug("slot stored", zap.String("bucket", s.bucket), zap.String("key", s.key), zap.Int("bytes", len(blob)))
	return nil
}
