package app

import (
	"context"
	"io/fs"
	"time"
)

type FileSystem interface {
	ReadDir(dir string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	// ProbeWritable fails if no new file can be created in dir.
	ProbeWritable(dir string) error
	// CopyFile copies the content of src into a new file dst. It must never
	// replace an existing dst and reports that case with fs.ErrExist.
	CopyFile(src, dst string) error
}

type ExifReader interface {
	DateTimeOriginal(ctx context.Context, path string) (time.Time, error)
}
