package exif

import (
	"context"
	"errors"
	"os"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"
)

const exifLayout = "2006:01:02 15:04:05"

var ErrNoCaptureTime = errors.New("exif datetime not found")

// Reader reads the capture time camera firmware writes into EXIF. Most
// video containers carry no EXIF block, so callers are expected to fall back
// to the filesystem time.
type Reader struct {
	// Location interprets the zone-less EXIF timestamp. Defaults to time.Local.
	Location *time.Location
}

func (r Reader) DateTimeOriginal(ctx context.Context, path string) (time.Time, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	x, err := goexif.Decode(file)
	if err != nil {
		return time.Time{}, err
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
		return parsed.In(loc), nil
	}

	return time.Time{}, ErrNoCaptureTime
}
