//go:build linux

package fs

import (
	"errors"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime asks statx for the birth time. Older kernels and some
// filesystems (tmpfs before 5.x, NFS) do not report it.
func birthTime(path string, _ fs.FileInfo) (time.Time, bool) {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}, false
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, false
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), true
}

func setModified(path string, t time.Time) error {
	times := []unix.Timespec{
		{Nsec: unix.UTIME_OMIT},
		unix.NsecToTimespec(t.UnixNano()),
	}
	return unix.UtimesNanoAt(unix.AT_FDCWD, path, times, 0)
}

// Linux has no call that sets a file's birth time.
func setCreation(string, time.Time) error {
	return errors.ErrUnsupported
}
