package storage

import (
	"context"
	"io"
)

// ArchiveStore defines the interface for fetching legacy export archives
// from object storage. The bulk import endpoint reads JSON exports of the
// pre-database tracker through it; nothing in this application writes
// objects.
type ArchiveStore interface {
	// Fetch opens the object at objectKey for reading. The caller closes
	// the returned reader.
	Fetch(ctx context.Context, objectKey string) (io.ReadCloser, error)
}
