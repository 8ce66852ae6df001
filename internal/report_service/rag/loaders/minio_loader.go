package loaders

import (
	"context"
	"fmt"
	"io"
	"strings"

	"EduLens/pkg/logger"

	"github.com/minio/minio-go/v7"
)

// MinioLoader reads student documents from an object storage bucket laid out
// as "{studentID}/{filename}". The shared corpus lives under the "general/"
// prefix and is loaded the same way.
type MinioLoader struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

// NewMinioLoader creates a MinioLoader for the given bucket.
func NewMinioLoader(client *minio.Client, bucket string, log *logger.Logger) *MinioLoader {
	return &MinioLoader{
		client: client,
		bucket: bucket,
		log:    log,
	}
}

// ListDocuments fetches every object under the student's prefix and decodes
// it to text. A listing or read failure aborts the whole call so ingestion
// never indexes a silent subset.
func (l *MinioLoader) ListDocuments(ctx context.Context, studentID string) (map[string]string, error) {
	prefix := studentID + "/"
	docs := make(map[string]string)

	for info := range l.client.ListObjects(ctx, l.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("listing objects under %q: %w", prefix, info.Err)
		}

		name := strings.TrimPrefix(info.Key, prefix)
		if name == "" {
			// Directory marker object.
			continue
		}

		obj, err := l.client.GetObject(ctx, l.bucket, info.Key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("opening object %q: %w", info.Key, err)
		}

		data, err := io.ReadAll(obj)
		obj.Close()
		if err != nil {
			return nil, fmt.Errorf("reading object %q: %w", info.Key, err)
		}

		docs[name] = decodeContent(data, name, l.log)
	}

	return docs, nil
}

// compile-time check to ensure MinioLoader implements the DocumentLoader interface
var _ DocumentLoader = (*MinioLoader)(nil)
