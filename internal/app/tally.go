package app

import (
	"touchmax/internal/domain"
	"touchmax/internal/event"
)

// Tally is a sink that counts events into a Summary.
type Tally struct {
	Summary *domain.Summary
}

func (t Tally) Emit(ev event.Event) {
	s := t.Summary
	if s == nil {
		return
	}
	switch ev.Type {
	case event.DirEntered:
		s.Directories++
	case event.DirNotFound:
		s.MissingDirs++
	case event.ListFailed:
		s.ListFailed++
	case event.EntryVisited:
		if ev.IsDir {
			s.Folders++
		} else {
			s.Files++
		}
	case event.FieldChanged:
		s.Changed++
	case event.FieldSkipped:
		s.Skipped++
	case event.FieldFailed:
		s.Failed++
	}
}
