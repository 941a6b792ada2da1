// Package minio exports items to MinIO or any S3-compatible bucket.
//
// The export tree layout is preserved in object keys: a local destination
// of out/0001/<digest>.pdf becomes <prefix>/out/0001/<digest>.pdf.
package minio

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
)

// Ensure Exporter implements the interface.
var _ driven.ItemExporter = (*Exporter)(nil)

// ObjectClient is the subset of *minio.Client used by the exporter.
type ObjectClient interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Exporter uploads native content as objects.
type Exporter struct {
	client ObjectClient
	bucket string
	prefix string
}

// New connects to the configured endpoint.
func New(settings domain.MinioSettings) (*Exporter, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: minio endpoint and bucket are required", domain.ErrInvalidInput)
	}
	client, err := minio.New(settings.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.AccessKey, settings.SecretKey, ""),
		Secure: settings.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}
	return NewWithClient(client, settings.Bucket, settings.Prefix), nil
}

// NewWithClient creates an exporter over an existing client.
func NewWithClient(client ObjectClient, bucket, prefix string) *Exporter {
	return &Exporter{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// MakeDir checks that the bucket exists. Object stores have no directories.
func (e *Exporter) MakeDir(ctx context.Context, _ string) error {
	ok, err := e.client.BucketExists(ctx, e.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", e.bucket, err)
	}
	if !ok {
		return fmt.Errorf("bucket %s: %w", e.bucket, domain.ErrNotFound)
	}
	return nil
}

// ExportItem uploads the item's native file under the key for dest.
func (e *Exporter) ExportItem(ctx context.Context, item domain.Item, dest string) error {
	if item.NativePath == "" {
		return domain.ErrNoContent
	}
	opts := minio.PutObjectOptions{
		ContentType: item.MimeType,
		UserMetadata: map[string]string{
			"Item-Guid":  item.GUID,
			"Item-Md5":   strings.ToLower(item.Digest),
			"Item-Name":  item.Name,
			"Item-Pages": fmt.Sprint(item.PageCount()),
		},
	}
	key := e.Key(dest)
	if _, err := e.client.FPutObject(ctx, e.bucket, key, item.NativePath, opts); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchBucket" {
			return fmt.Errorf("bucket %s: %w", e.bucket, domain.ErrNotFound)
		}
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

// Key maps a local export path to its object key.
func (e *Exporter) Key(dest string) string {
	dest = strings.TrimPrefix(dest, filepath.VolumeName(dest))
	rel := strings.TrimLeft(filepath.ToSlash(dest), "/")
	if e.prefix == "" {
		return path.Clean(rel)
	}
	return path.Join(e.prefix, rel)
}
