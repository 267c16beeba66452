// Package timestamp derives new entry timestamps from a base time plus
// absolute overrides and relative deltas.
//
// Resolution always runs in three stages: base selection, absolute
// overrides (year, month, day, hour, minute), then relative deltas
// (years, months, days, hours, minutes). Relative arithmetic is Go's own:
// AddDate normalizes an overflowing day-of-month forward, so Jan 31 plus one
// month lands on Mar 3 (Mar 2 in a leap year) instead of clamping to the end
// of February. Hours and minutes are added as elapsed durations.
package timestamp

import (
	"errors"
	"fmt"
	"time"

	"touchmax/internal/domain"
)

var (
	// ErrInvalidDateComponent matches any *InvalidDateComponentError.
	ErrInvalidDateComponent = errors.New("invalid date component")
	// ErrBaseUnavailable is returned when the selected base timestamp
	// cannot be read for an entry (no birth time, no EXIF data).
	ErrBaseUnavailable = errors.New("base timestamp unavailable")
)

// InvalidDateComponentError reports an absolute override that does not
// produce a real calendar date.
type InvalidDateComponentError struct {
	Component string
	Value     int
	// Date is the date the override was applied to, as y-m-d.
	Date string
}

func (e *InvalidDateComponentError) Error() string {
	return fmt.Sprintf("%s %d is not valid for %s", e.Component, e.Value, e.Date)
}

func (e *InvalidDateComponentError) Is(target error) bool {
	return target == ErrInvalidDateComponent
}

// Resolve computes the new value for a field whose current value is
// current, on an entry with the given creation and modified times.
func Resolve(current, creation, modified time.Time, spec domain.AdjustmentSpec) (time.Time, error) {
	var base time.Time
	switch spec.Base {
	case domain.UseNow:
		base = spec.Now
	case domain.UseCreationTime:
		base = creation
	case domain.UseModifiedTime:
		base = modified
	case domain.UseCaptureTime:
		return time.Time{}, fmt.Errorf("capture time: %w", ErrBaseUnavailable)
	default:
		base = current
	}
	return Adjust(base, spec)
}

// ResolveField computes the new value of field for a snapshotted entry.
// Only the timestamps the base policy actually needs must be present.
func ResolveField(snap domain.EntrySnapshot, field domain.Field, spec domain.AdjustmentSpec) (time.Time, error) {
	var base time.Time
	switch spec.Base {
	case domain.UseNow:
		base = spec.Now
	case domain.UseCreationTime:
		if !snap.HasCreation {
			return time.Time{}, fmt.Errorf("creation time: %w", ErrBaseUnavailable)
		}
		base = snap.Creation
	case domain.UseModifiedTime:
		base = snap.Modified
	case domain.UseCaptureTime:
		if snap.CaptureTime == nil {
			return time.Time{}, fmt.Errorf("capture time: %w", ErrBaseUnavailable)
		}
		base = *snap.CaptureTime
	default:
		current, ok := snap.Value(field)
		if !ok {
			return time.Time{}, fmt.Errorf("%s time: %w", field, ErrBaseUnavailable)
		}
		base = current
	}
	return Adjust(base, spec)
}

// Adjust runs the override and delta stages on an already selected base.
func Adjust(base time.Time, spec domain.AdjustmentSpec) (time.Time, error) {
	t, err := ApplyAbsolute(base, spec.Absolute)
	if err != nil {
		return time.Time{}, err
	}
	return ApplyRelative(t, spec.Relative), nil
}

// ApplyAbsolute replaces each specified component in turn. Every step is
// validated against the date built so far, so month=2 followed by day=30
// fails even though day 30 exists in most months. Seconds, nanoseconds and
// the location are carried through untouched.
func ApplyAbsolute(t time.Time, abs domain.Absolute) (time.Time, error) {
	if abs.Empty() {
		return t, nil
	}
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	if abs.Year != nil {
		if *abs.Year < 1 || *abs.Year > 9999 || day > daysIn(*abs.Year, month) {
			return time.Time{}, invalid("year", *abs.Year, year, month, day)
		}
		year = *abs.Year
	}
	if abs.Month != nil {
		m := *abs.Month
		if m < 1 || m > 12 || day > daysIn(year, time.Month(m)) {
			return time.Time{}, invalid("month", m, year, month, day)
		}
		month = time.Month(m)
	}
	if abs.Day != nil {
		if *abs.Day < 1 || *abs.Day > daysIn(year, month) {
			return time.Time{}, invalid("day", *abs.Day, year, month, day)
		}
		day = *abs.Day
	}
	if abs.Hour != nil {
		if *abs.Hour < 0 || *abs.Hour > 23 {
			return time.Time{}, invalid("hour", *abs.Hour, year, month, day)
		}
		hour = *abs.Hour
	}
	if abs.Minute != nil {
		if *abs.Minute < 0 || *abs.Minute > 59 {
			return time.Time{}, invalid("minute", *abs.Minute, year, month, day)
		}
		minute = *abs.Minute
	}

	return time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), t.Location()), nil
}

// ApplyRelative adds each delta in turn, years first. A zero delta is still
// applied; it never changes the value.
func ApplyRelative(t time.Time, rel domain.Relative) time.Time {
	t = t.AddDate(rel.Years, 0, 0)
	t = t.AddDate(0, rel.Months, 0)
	t = t.AddDate(0, 0, rel.Days)
	t = t.Add(time.Duration(rel.Hours) * time.Hour)
	return t.Add(time.Duration(rel.Minutes) * time.Minute)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func invalid(component string, value, year int, month time.Month, day int) error {
	return &InvalidDateComponentError{
		Component: component,
		Value:     value,
		Date:      fmt.Sprintf("%04d-%02d-%02d", year, int(month), day),
	}
}
