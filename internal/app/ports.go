package app

import (
	"context"
	"time"

	"touchmax/internal/domain"
	"touchmax/internal/walker"
)

type FileSystem interface {
	walker.FS
}

// TimestampStore reads and writes the two timestamps an entry carries.
type TimestampStore interface {
	Times(path string) (domain.EntrySnapshot, error)
	SetCreation(path string, t time.Time) error
	SetModified(path string, t time.Time) error
}

type ExifReader interface {
	CaptureTime(ctx context.Context, path string) (time.Time, error)
}
