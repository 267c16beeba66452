package domain

import "time"

// BasePolicy selects the timestamp a field starts from before any
// overrides or deltas are applied.
type BasePolicy int

const (
	UseEntryOwnValue BasePolicy = iota
	UseNow
	UseCreationTime
	UseModifiedTime
	UseCaptureTime
)

var basePolicyNames = [...]string{
	UseEntryOwnValue: "own",
	UseNow:           "now",
	UseCreationTime:  "creation",
	UseModifiedTime:  "modified",
	UseCaptureTime:   "capture",
}

func (p BasePolicy) String() string {
	if p >= 0 && int(p) < len(basePolicyNames) {
		return basePolicyNames[p]
	}
	return "unknown"
}

// Absolute holds optional exact values for date/time components.
// A nil component is left as produced by the base policy.
type Absolute struct {
	Year   *int
	Month  *int
	Day    *int
	Hour   *int
	Minute *int
}

// Empty reports whether no component is overridden.
func (a Absolute) Empty() bool {
	return a.Year == nil && a.Month == nil && a.Day == nil && a.Hour == nil && a.Minute == nil
}

// Relative holds signed offsets, applied after absolute overrides.
type Relative struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
}

// AdjustmentSpec describes how a new timestamp is derived. It is built once
// per run and shared read-only by every entry.
type AdjustmentSpec struct {
	Base     BasePolicy
	Absolute Absolute
	Relative Relative
	// Now is sampled once per run so every entry sees the same value.
	Now time.Time
}

// NeedsCaptureTime reports whether entries must be probed for EXIF data.
func (s AdjustmentSpec) NeedsCaptureTime() bool {
	return s.Base == UseCaptureTime
}
