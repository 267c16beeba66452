//go:build darwin

package fs

import (
	"io/fs"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

func birthTime(_ string, info fs.FileInfo) (time.Time, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec), true
}

// Darwin lacks UTIME_OMIT, so the current access time is written back.
func setModified(path string, t time.Time) error {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return err
	}
	times := []unix.Timespec{
		stat.Atim,
		unix.NsecToTimespec(t.UnixNano()),
	}
	return unix.UtimesNanoAt(unix.AT_FDCWD, path, times, 0)
}

func setCreation(path string, t time.Time) error {
	attrs := unix.Attrlist{
		Bitmapcount: unix.ATTR_BIT_MAP_COUNT,
		Commonattr:  unix.ATTR_CMN_CRTIME,
	}
	ts := unix.NsecToTimespec(t.UnixNano())
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&ts)), unsafe.Sizeof(ts))
	return unix.Setattrlist(path, &attrs, buf, 0)
}
