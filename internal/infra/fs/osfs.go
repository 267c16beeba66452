package fs

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"touchmax/internal/domain"
)

// OSFS reads and writes entry timestamps on the real filesystem. Creation
// time support depends on the platform; see the times_*.go files.
type OSFS struct{}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadDir lists path in the order the operating system returns entries,
// unlike os.ReadDir which sorts by name.
func (OSFS) ReadDir(path string) ([]fs.DirEntry, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	return dir.ReadDir(-1)
}

// Times takes a fresh snapshot of path's creation and modified times.
func (OSFS) Times(path string) (domain.EntrySnapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.EntrySnapshot{}, err
	}
	snap := domain.EntrySnapshot{
		Path:     path,
		Modified: info.ModTime(),
	}
	snap.Creation, snap.HasCreation = birthTime(path, info)
	return snap, nil
}

// SetModified changes only the last-modified time; the access time is kept.
func (OSFS) SetModified(path string, t time.Time) error {
	if err := setModified(path, t); err != nil {
		return fmt.Errorf("set modified time: %w", err)
	}
	return nil
}

// SetCreation changes the creation (birth) time where the platform allows
// it. Elsewhere the error wraps errors.ErrUnsupported.
func (OSFS) SetCreation(path string, t time.Time) error {
	if err := setCreation(path, t); err != nil {
		return fmt.Errorf("set creation time: %w", err)
	}
	return nil
}
