//go:build windows

package fs

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
)

func birthTime(_ string, info fs.FileInfo) (time.Time, bool) {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(0, data.CreationTime.Nanoseconds()), true
}

func setModified(path string, t time.Time) error {
	ft := windows.NsecToFiletime(t.UnixNano())
	return withHandle(path, func(h windows.Handle) error {
		return windows.SetFileTime(h, nil, nil, &ft)
	})
}

func setCreation(path string, t time.Time) error {
	ft := windows.NsecToFiletime(t.UnixNano())
	return withHandle(path, func(h windows.Handle) error {
		return windows.SetFileTime(h, &ft, nil, nil)
	})
}

// withHandle opens path for attribute writes. FILE_FLAG_BACKUP_SEMANTICS
// is required to open directories.
func withHandle(path string, fn func(windows.Handle) error) error {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	h, err := windows.CreateFile(
		name,
		windows.FILE_WRITE_ATTRIBUTES,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)

	return fn(h)
}
