package connectors

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/maraichr/cdm/internal/config"
)

// S3Connector downloads project files from an S3-compatible bucket.
type S3Connector struct {
	client *s3.Client
	bucket string
}

// NewS3Connector creates a new S3 connector. Works with both AWS S3 and MinIO.
func NewS3Connector(ctx context.Context, cfg appconfig.S3Config) (*S3Connector, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not set")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = &cfg.Endpoint
			o.UsePathStyle = true
		}
	})

	return &S3Connector{client: client, bucket: cfg.Bucket}, nil
}

// Sync downloads the data and config files under prefix to destDir, keeping
// their layout relative to the prefix. It returns the number of files written.
func (c *S3Connector) Sync(ctx context.Context, prefix, destDir string) (int, error) {
	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: &c.bucket,
		Prefix: &prefix,
	})

	n := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return n, fmt.Errorf("list objects: %w", err)
		}

		for _, obj := range page.Contents {
			if obj.Key == nil || !WantKey(*obj.Key) {
				continue
			}
			key := *obj.Key

			rel := strings.TrimPrefix(strings.TrimPrefix(key, prefix), "/")
			localPath, err := localPathFor(destDir, rel)
			if err != nil {
				return n, err
			}
			if err := c.downloadObject(ctx, key, localPath); err != nil {
				return n, fmt.Errorf("download %s: %w", key, err)
			}
			n++
		}
	}
	return n, nil
}

// WantKey reports whether an object key names a YAML file; directory markers
// and other content are skipped.
func WantKey(key string) bool {
	if key == "" || strings.HasSuffix(key, "/") {
		return false
	}
	switch strings.ToLower(path.Ext(key)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func localPathFor(destDir, rel string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(rel))
	root := filepath.Clean(destDir) + string(os.PathSeparator)
	if !strings.HasPrefix(target, root) {
		return "", fmt.Errorf("object key escapes destination: %s", rel)
	}
	return target, nil
}

func (c *S3Connector) downloadObject(ctx context.Context, key, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return err
	}

	resp, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	return f.Close()
}
