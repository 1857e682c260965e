package s3

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorageClient uploads local files to an S3 compatible bucket.
type ObjectStorageClient interface {
	Connect(ctx context.Context, endpoint, accessKeyID, secretAccessKey string, useSSL bool) error
	UploadArtifact(ctx context.Context, localPath, objectName, contentType string) error
}

// ObjectStorage holds the object storage client instance and target bucket
type ObjectStorage struct {
	Conn   *minio.Client
	bucket string
}

// NewObjectStorage creates a client that uploads into bucket.
func NewObjectStorage(bucket string) *ObjectStorage {
	return &ObjectStorage{bucket: bucket}
}

// Connect establishes the object storage connection and makes sure the bucket exists.
func (o *ObjectStorage) Connect(ctx context.Context, endpoint, accessKeyID, secretAccessKey string, useSSL bool) error {
	var err error
	o.Conn, err = minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := o.Conn.BucketExists(ctx, o.bucket)
	if err != nil {
		return fmt.Errorf("failed to establish minio connection: %w", err)
	}
	if exists {
		return nil
	}

	if err := o.Conn.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", o.bucket, err)
	}
	return nil
}

// UploadArtifact uploads the file at localPath as objectName.
func (o *ObjectStorage) UploadArtifact(ctx context.Context, localPath, objectName, contentType string) error {
	if o.Conn == nil {
		return fmt.Errorf("object storage is not connected")
	}

	_, err := o.Conn.FPutObject(ctx, o.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return nil
}
