package exif

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"

	"touchmax/internal/domain"
)

// ErrNoCaptureTime is returned when a file carries no usable EXIF date.
var ErrNoCaptureTime = errors.New("no exif capture time")

const exifLayout = "2006:01:02 15:04:05"

// Reader extracts capture times from image metadata. EXIF dates carry no
// zone, so they are read in Location (time.Local when nil), the zone the
// camera clock was set to.
type Reader struct {
	Location *time.Location
}

func (r Reader) CaptureTime(ctx context.Context, path string) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	if !domain.HasImageExtension(path) {
		return time.Time{}, ErrNoCaptureTime
	}

	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	x, err := goexif.Decode(file)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoCaptureTime, err)
	}

	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	if tag, err := x.Get(goexif.DateTimeOriginal); err == nil {
		if str, err := tag.StringVal(); err == nil {
			if parsed, err := time.ParseInLocation(exifLayout, str, loc); err == nil {
				return parsed, nil
			}
		}
	}

	if parsed, err := x.DateTime(); err == nil {
		return parsed, nil
	}

	return time.Time{}, ErrNoCaptureTime
}
