package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Field names one of the two timestamps an entry carries.
type Field int

const (
	Creation Field = iota + 1
	Modified
)

func (f Field) String() string {
	switch f {
	case Creation:
		return "creation"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Letter is the one-character tag used in progress output.
func (f Field) Letter() string {
	switch f {
	case Creation:
		return "C"
	case Modified:
		return "M"
	default:
		return "?"
	}
}

// TraversalSpec selects which entries are visited and which fields change.
type TraversalSpec struct {
	RootPath    string
	Pattern     string
	SetFiles    bool
	SetFolders  bool
	Recurse     bool
	SetCreation bool
	SetModified bool
	IgnoreCase  bool
	DryRun      bool
}

// Fields returns the enabled fields in the order they are written.
func (s TraversalSpec) Fields() []Field {
	var fields []Field
	if s.SetCreation {
		fields = append(fields, Creation)
	}
	if s.SetModified {
		fields = append(fields, Modified)
	}
	return fields
}

// Entry is a file or directory matched during traversal.
type Entry struct {
	Path  string
	Name  string
	IsDir bool
	// Level is the directory depth below the root, starting at 0.
	Level int
}

func NewEntry(path string, isDir bool, level int) Entry {
	return Entry{
		Path:  path,
		Name:  filepath.Base(path),
		IsDir: isDir,
		Level: level,
	}
}

// EntrySnapshot is a fresh read of an entry's timestamps.
type EntrySnapshot struct {
	Path     string
	Creation time.Time
	// HasCreation is false when the filesystem does not expose birth time.
	HasCreation bool
	Modified    time.Time
	CaptureTime *time.Time
}

// Value returns the snapshot's current value for field.
func (s EntrySnapshot) Value(field Field) (time.Time, bool) {
	switch field {
	case Creation:
		return s.Creation, s.HasCreation
	case Modified:
		return s.Modified, true
	default:
		return time.Time{}, false
	}
}

// HasImageExtension reports whether path looks like a file that may carry EXIF data.
func HasImageExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".tif", ".tiff", ".heic",
		".arw", ".cr2", ".cr3", ".nef", ".raf", ".rw2", ".orf", ".dng":
		return true
	default:
		return false
	}
}
