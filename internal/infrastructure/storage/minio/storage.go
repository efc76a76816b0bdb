// Package minio adapts a MinIO / S3-compatible object store to the document
// storage contract. All session documents live in a single bucket under
// session-scoped object keys, so erasing a session is a prefix sweep.
package minio

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// api is the slice of the minio-go client the storage layer uses. Narrowed to
// an interface so tests can substitute a fake without a running server.
type api interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// Storage implements document.Storage on a single MinIO bucket.
type Storage struct {
	client api
	bucket string
	logger logging.Logger
}

var _ document.Storage = (*Storage)(nil)

// NewStorage connects to MinIO, verifies the connection, and creates the
// document bucket when it does not exist yet.
func NewStorage(cfg config.MinIOConfig, log logging.Logger) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create minio client")
	}

	s := &Storage{
		client: client,
		bucket: cfg.Bucket,
		logger: log.Named("minio"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("object storage connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
		logging.Bool("ssl", cfg.UseSSL))
	return s, nil
}

func (s *Storage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, errors.CodeServiceUnavailable, "check bucket existence")
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return errors.Wrapf(err, errors.CodeInternal, "create bucket %s", s.bucket)
	}
	s.logger.Info("created bucket", logging.String("bucket", s.bucket))
	return nil
}

// Store writes the content under the given object path.
func (s *Storage) Store(ctx context.Context, path string, contentType string, content io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, path, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.Wrapf(err, errors.CodeDocumentStorageFailed, "store object %s", path)
	}
	return nil
}

// Retrieve returns the binary content stored at path.
func (s *Storage) Retrieve(ctx context.Context, path string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeDocumentStorageFailed, "retrieve object %s", path)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, errors.Newf(errors.CodeDocumentNotFound, "object %s not found", path)
		}
		return nil, errors.Wrapf(err, errors.CodeDocumentStorageFailed, "read object %s", path)
	}
	return data, nil
}

// Delete removes the object at path. Removing a missing object succeeds.
func (s *Storage) Delete(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, errors.CodeDocumentStorageFailed, "delete object %s", path)
	}
	return nil
}

// DeleteSessionObjects removes every binary belonging to a session and
// returns how many objects were removed. Used by the erasure cascade, which
// must not leave session binaries behind.
func (s *Storage) DeleteSessionObjects(ctx context.Context, sessionID common.ID) (int, error) {
	prefix := document.SessionPrefix(sessionID)
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	removed := 0
	var firstErr error
	for obj := range objects {
		if obj.Err != nil {
			if firstErr == nil {
				firstErr = obj.Err
			}
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("failed to remove object",
				logging.String("key", obj.Key), logging.Err(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		removed++
	}
	if firstErr != nil {
		return removed, errors.Wrapf(firstErr, errors.CodeDocumentStorageFailed, "delete objects under %s", prefix)
	}
	return removed, nil
}
