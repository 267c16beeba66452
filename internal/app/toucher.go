package app

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"touchmax/internal/domain"
	apperrors "touchmax/internal/errors"
	"touchmax/internal/event"
	"touchmax/internal/timestamp"
)

// Toucher is the visitor that rewrites timestamps on each matched entry.
// A failure on one entry is reported as an event and never stops the level.
type Toucher struct {
	Store  TimestampStore
	Exif   ExifReader
	Events event.Sink
	Adjust domain.AdjustmentSpec
	Fields []domain.Field
	DryRun bool
}

func (t *Toucher) Visit(ctx context.Context, entry domain.Entry) bool {
	t.emit(event.Event{Type: event.EntryVisited, Path: entry.Path, Level: entry.Level, IsDir: entry.IsDir})

	snap, err := t.Store.Times(entry.Path)
	if err != nil {
		kind := apperrors.Internal
		if errors.Is(err, fs.ErrNotExist) {
			kind = apperrors.NotFound
		}
		for _, field := range t.Fields {
			t.emit(t.fieldEvent(event.FieldFailed, entry, field, apperrors.Wrap(kind, "read times", entry.Path, err)))
		}
		return true
	}

	if t.Adjust.NeedsCaptureTime() && t.Exif != nil {
		if taken, err := t.Exif.CaptureTime(ctx, entry.Path); err == nil {
			snap.CaptureTime = &taken
		}
	}

	for _, field := range t.Fields {
		t.touch(entry, snap, field)
	}
	return true
}

func (t *Toucher) touch(entry domain.Entry, snap domain.EntrySnapshot, field domain.Field) {
	before, _ := snap.Value(field)

	target, err := timestamp.ResolveField(snap, field, t.Adjust)
	if err != nil {
		ev := t.fieldEvent(event.FieldSkipped, entry, field, apperrors.Wrap(apperrors.InvalidDate, "resolve "+field.String(), entry.Path, err))
		ev.Before = before
		t.emit(ev)
		return
	}

	ev := t.fieldEvent(event.FieldChanged, entry, field, nil)
	ev.Before = before
	ev.Target = target
	ev.After = target

	if t.DryRun {
		ev.DryRun = true
		t.emit(ev)
		return
	}

	if err := t.write(entry.Path, field, target); err != nil {
		ev.Type = event.FieldFailed
		ev.After = time.Time{}
		ev.Error = apperrors.Wrap(apperrors.WriteFailure, "set "+field.String(), entry.Path, err)
		t.emit(ev)
		return
	}

	// Report what the filesystem actually stored, which may be rounded.
	if fresh, err := t.Store.Times(entry.Path); err == nil {
		if after, ok := fresh.Value(field); ok {
			ev.After = after
		}
	}
	t.emit(ev)
}

func (t *Toucher) write(path string, field domain.Field, value time.Time) error {
	switch field {
	case domain.Creation:
		return t.Store.SetCreation(path, value)
	case domain.Modified:
		return t.Store.SetModified(path, value)
	default:
		return errors.New("unknown field " + field.String())
	}
}

func (t *Toucher) fieldEvent(typ event.Type, entry domain.Entry, field domain.Field, err error) event.Event {
	return event.Event{
		Type:  typ,
		Path:  entry.Path,
		Level: entry.Level,
		IsDir: entry.IsDir,
		Field: field,
		Error: err,
	}
}

func (t *Toucher) emit(ev event.Event) {
	if t.Events != nil {
		t.Events.Emit(ev)
	}
}
