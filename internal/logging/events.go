package logging

import (
	"context"
	"log/slog"
	"time"

	"touchmax/internal/event"
)

// Events returns a sink that writes each walk and touch event to the log.
// Problems are logged at warn level, progress at debug.
func (l Logger) Events() event.Sink {
	if l.Logger == nil {
		return event.Discard
	}
	return event.SinkFunc(func(ev event.Event) {
		level := slog.LevelDebug
		attrs := []slog.Attr{slog.String("path", ev.Path)}

		switch ev.Type {
		case event.DirEntered:
			attrs = append(attrs, slog.Int("depth", ev.Level))
		case event.EntryVisited:
			attrs = append(attrs, slog.Bool("dir", ev.IsDir))
		case event.FieldChanged:
			attrs = append(attrs,
				slog.String("field", ev.Field.String()),
				slog.String("before", formatTime(ev.Before)),
				slog.String("after", formatTime(ev.After)),
				slog.Bool("dry_run", ev.DryRun),
			)
		case event.FieldSkipped, event.FieldFailed:
			level = slog.LevelWarn
			attrs = append(attrs, slog.String("field", ev.Field.String()))
		case event.DirNotFound, event.ListFailed:
			level = slog.LevelWarn
		}
		if ev.Error != nil {
			attrs = append(attrs, slog.String("error", ev.Error.Error()))
		}
		l.LogAttrs(context.Background(), level, ev.Type.String(), attrs...)
	})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
