// Package minio wraps the object store holding uploaded project archives.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/maraichr/cdm/internal/config"
)

// ErrObjectNotFound is returned by Stat for a missing object.
var ErrObjectNotFound = errors.New("object not found")

type Client struct {
	mc     *minio.Client
	bucket string
}

func NewClient(cfg config.MinIOConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Client{mc: mc, bucket: cfg.Bucket}, nil
}

func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

func (c *Client) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64) error {
	_, err := c.mc.PutObject(ctx, c.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: "application/zip",
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", objectName, err)
	}
	return nil
}

// DownloadFile opens an object for reading. The object is checked first so
// a missing archive fails here rather than on the first read.
func (c *Client) DownloadFile(ctx context.Context, objectName string) (io.ReadCloser, error) {
	if _, err := c.Stat(ctx, objectName); err != nil {
		return nil, err
	}
	obj, err := c.mc.GetObject(ctx, c.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", objectName, err)
	}
	return obj, nil
}

// Stat returns the size of an object.
func (c *Client) Stat(ctx context.Context, objectName string) (int64, error) {
	info, err := c.mc.StatObject(ctx, c.bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return 0, fmt.Errorf("%s/%s: %w", c.bucket, objectName, ErrObjectNotFound)
		}
		return 0, fmt.Errorf("stat %s: %w", objectName, err)
	}
	return info.Size, nil
}

func (c *Client) Bucket() string {
	return c.bucket
}
