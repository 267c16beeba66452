package app

import (
	"context"
	"errors"
	"time"

	"touchmax/internal/domain"
	"touchmax/internal/event"
	"touchmax/internal/logging"
	"touchmax/internal/walker"
)

// Runner walks one tree and adjusts every matched entry.
type Runner struct {
	FS     FileSystem
	Store  TimestampStore
	Exif   ExifReader
	Events event.Sink
	Logger logging.Logger
	// Now stamps events; time.Now when nil.
	Now func() time.Time
}

// Run applies adjust to the entries traversal selects. Per-entry problems
// are reported through Events and counted in the summary; the returned
// error is reserved for an invalid pattern or a cancelled context.
func (r *Runner) Run(ctx context.Context, traversal domain.TraversalSpec, adjust domain.AdjustmentSpec) (domain.Summary, error) {
	summary := domain.Summary{DryRun: traversal.DryRun}
	if r.FS == nil || r.Store == nil {
		return summary, errors.New("runner requires FS and Store")
	}

	log := r.Logger.OrDiscard()
	stop := log.Measure("Touching entries")
	defer stop()

	log.Info("starting run",
		"root", traversal.RootPath,
		"pattern", traversal.Pattern,
		"recurse", traversal.Recurse,
		"files", traversal.SetFiles,
		"folders", traversal.SetFolders,
		"fields", len(traversal.Fields()),
		"base", adjust.Base.String(),
		"dry_run", traversal.DryRun,
	)

	now := r.Now
	if now == nil {
		now = time.Now
	}
	sink := event.Stamp(event.Multi(Tally{Summary: &summary}, log.Events(), r.Events), now)

	newToucher := func() *Toucher {
		return &Toucher{
			Store:  r.Store,
			Exif:   r.Exif,
			Events: sink,
			Adjust: adjust,
			Fields: traversal.Fields(),
			DryRun: traversal.DryRun,
		}
	}
	var files, dirs walker.Visitor
	if traversal.SetFiles {
		files = newToucher()
	}
	if traversal.SetFolders {
		dirs = newToucher()
	}

	w := walker.Walker{FS: r.FS, Events: sink}
	err := w.Walk(ctx, traversal, files, dirs)

	log.Info("run finished",
		"entries", summary.Entries(),
		"changed", summary.Changed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, err
}
