//go:build !linux && !darwin && !windows

package fs

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

func birthTime(string, fs.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}

// A zero access time leaves it unchanged.
func setModified(path string, t time.Time) error {
	return os.Chtimes(path, time.Time{}, t)
}

func setCreation(string, time.Time) error {
	return errors.ErrUnsupported
}
