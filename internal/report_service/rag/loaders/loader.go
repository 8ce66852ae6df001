package loaders

import "context"

// DocumentLoader fetches and decodes all of a student's stored documents.
type DocumentLoader interface {
	// ListDocuments returns a mapping from filename to decoded content for
	// every object under the student's namespace. Any unrecoverable read
	// error fails the whole call; callers never see a partial map.
	ListDocuments(ctx context.Context, studentID string) (map[string]string, error)
}
