package connectors

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	minioclient "github.com/maraichr/cdm/internal/store/minio"
)

// maxEntrySize caps each extracted file; data files are small text.
const maxEntrySize = 32 << 20

// ErrNoObjectStore is returned when an object is requested but no MinIO
// client was configured.
var ErrNoObjectStore = errors.New("object storage not configured")

// ZipConnector unpacks project archives, either local files or objects in
// the MinIO bucket.
type ZipConnector struct {
	minio *minioclient.Client
}

// NewZipConnector creates a connector. minio may be nil when only local
// archives are used.
func NewZipConnector(minio *minioclient.Client) *ZipConnector {
	return &ZipConnector{minio: minio}
}

// Upload streams an archive to the object store.
func (z *ZipConnector) Upload(ctx context.Context, objectName string, reader io.Reader, size int64) error {
	if z.minio == nil {
		return ErrNoObjectStore
	}
	return z.minio.UploadFile(ctx, objectName, reader, size)
}

// Extract downloads an archive from MinIO and extracts it into destDir.
func (z *ZipConnector) Extract(ctx context.Context, objectName, destDir string) error {
	if z.minio == nil {
		return ErrNoObjectStore
	}
	reader, err := z.minio.DownloadFile(ctx, objectName)
	if err != nil {
		return fmt.Errorf("download zip: %w", err)
	}
	defer reader.Close()

	// zip needs random access, so spool the object to disk first.
	tmpFile, err := os.CreateTemp("", "cdm-zip-*.zip")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, reader); err != nil {
		return fmt.Errorf("copy to temp: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	return z.ExtractFile(ctx, tmpFile.Name(), destDir)
}

// ExtractFile extracts a local archive into destDir.
func (z *ZipConnector) ExtractFile(ctx context.Context, archive, destDir string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	root := filepath.Clean(destDir) + string(os.PathSeparator)
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target := filepath.Join(destDir, f.Name)
		// Prevent zip slip
		if !strings.HasPrefix(filepath.Clean(target)+string(os.PathSeparator), root) {
			return fmt.Errorf("invalid zip entry: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("mkdir: %w", err)
			}
			continue
		}
		if err := extractEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open zip entry: %w", err)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	n, err := io.Copy(out, io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	if n > maxEntrySize {
		return fmt.Errorf("zip entry %s exceeds %d bytes", f.Name, maxEntrySize)
	}
	return out.Close()
}
