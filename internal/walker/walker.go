// Package walker visits files and directories matching a glob, one
// directory level at a time, optionally recursing through the tree.
package walker

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"touchmax/internal/domain"
	"touchmax/internal/event"
)

// FS is the slice of the filesystem the walker reads.
type FS interface {
	Stat(path string) (fs.FileInfo, error)
	// ReadDir lists a directory in the order the filesystem returns it.
	ReadDir(path string) ([]fs.DirEntry, error)
}

// Visitor handles one matched entry. Returning false stops the walk from
// visiting further entries at the same directory level; recursion into
// subdirectories is unaffected.
type Visitor interface {
	Visit(ctx context.Context, entry domain.Entry) bool
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(context.Context, domain.Entry) bool

func (f VisitorFunc) Visit(ctx context.Context, entry domain.Entry) bool { return f(ctx, entry) }

type Walker struct {
	FS     FS
	Events event.Sink
}

// Walk processes spec.RootPath: matching files first, then matching
// directories, then (when spec.Recurse is set) every subdirectory whether
// or not it matched. Missing or unreadable directories are reported as
// events and never fail the walk; only a bad pattern or a cancelled
// context returns an error.
func (w *Walker) Walk(ctx context.Context, spec domain.TraversalSpec, files, dirs Visitor) error {
	if w.FS == nil {
		return errors.New("walker requires FS")
	}
	pattern, err := CompilePattern(spec.Pattern, spec.IgnoreCase)
	if err != nil {
		return err
	}
	if !spec.SetFiles {
		files = nil
	}
	if !spec.SetFolders {
		dirs = nil
	}

	events := w.Events
	if events == nil {
		events = event.Discard
	}

	root := spec.RootPath
	if root == "" {
		root = "."
	}

	run := &walk{
		fs:      w.FS,
		events:  events,
		pattern: pattern,
		recurse: spec.Recurse,
		files:   files,
		dirs:    dirs,
	}
	return run.level(ctx, root, 0)
}

type walk struct {
	fs      FS
	events  event.Sink
	pattern *Pattern
	recurse bool
	files   Visitor
	dirs    Visitor
}

func (r *walk) level(ctx context.Context, dir string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := r.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fs.ErrNotExist
		}
		r.events.Emit(event.Event{Type: event.DirNotFound, Path: dir, Level: depth, IsDir: true, Error: err})
		return nil
	}
	r.events.Emit(event.Event{Type: event.DirEntered, Path: dir, Level: depth, IsDir: true})

	listing, err := r.fs.ReadDir(dir)
	if err != nil {
		typ := event.ListFailed
		if errors.Is(err, fs.ErrNotExist) {
			typ = event.DirNotFound
		}
		r.events.Emit(event.Event{Type: typ, Path: dir, Level: depth, IsDir: true, Error: err})
		return nil
	}

	var matchedFiles, matchedDirs []domain.Entry
	var subdirs []string
	for _, d := range listing {
		path := filepath.Join(dir, d.Name())
		isDir, descend := r.classify(path, d)
		if descend {
			subdirs = append(subdirs, path)
		}
		if !r.pattern.Match(d.Name()) {
			continue
		}
		if isDir {
			matchedDirs = append(matchedDirs, domain.NewEntry(path, true, depth))
		} else {
			matchedFiles = append(matchedFiles, domain.NewEntry(path, false, depth))
		}
	}

	stopped := false
	if r.files != nil {
		stopped, err = r.visitAll(ctx, r.files, matchedFiles)
		if err != nil {
			return err
		}
	}
	if r.dirs != nil && !stopped {
		if _, err := r.visitAll(ctx, r.dirs, matchedDirs); err != nil {
			return err
		}
	}

	if !r.recurse {
		return nil
	}
	for _, sub := range subdirs {
		if err := r.level(ctx, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// visitAll reports stopped=true when a visitor asked to stop.
func (r *walk) visitAll(ctx context.Context, v Visitor, entries []domain.Entry) (bool, error) {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		if !v.Visit(ctx, entry) {
			return true, nil
		}
	}
	return false, nil
}

// classify decides whether d is visited as a directory and whether the walk
// may descend into it. Symlinks are visited as whatever they point to but
// never descended, which keeps link cycles out of the walk.
func (r *walk) classify(path string, d fs.DirEntry) (isDir, descend bool) {
	if d.IsDir() {
		return true, true
	}
	if d.Type()&fs.ModeSymlink != 0 {
		if info, err := r.fs.Stat(path); err == nil && info.IsDir() {
			return true, false
		}
	}
	return false, false
}
