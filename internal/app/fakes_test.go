package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"time"
)

type memFile struct {
	content string
	modTime time.Time
}

// memFS is an in-memory FileSystem. Paths are stored cleaned and absolute.
type memFS struct {
	dirs      map[string]bool
	files     map[string]*memFile
	copyErr   map[string]error
	appearing map[string]bool
	probeErr  error
	copies    []string
}

func newMemFS(dirs ...string) *memFS {
	m := &memFS{
		dirs:      map[string]bool{},
		files:     map[string]*memFile{},
		copyErr:   map[string]error{},
		appearing: map[string]bool{},
	}
	for _, dir := range dirs {
		m.dirs[filepath.Clean(dir)] = true
	}
	return m
}

func (m *memFS) add(path, content string, modTime time.Time) {
	m.dirs[filepath.Dir(path)] = true
	m.files[filepath.Clean(path)] = &memFile{content: content, modTime: modTime}
}

func (m *memFS) ReadDir(dir string) ([]fs.DirEntry, error) {
	dir = filepath.Clean(dir)
	if !m.dirs[dir] {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
	}
	var entries []fs.DirEntry
	for path := range m.files {
		if filepath.Dir(path) == dir {
			entries = append(entries, mockDirEntry{name: filepath.Base(path)})
		}
	}
	for path := range m.dirs {
		if path != dir && filepath.Dir(path) == dir {
			entries = append(entries, mockDirEntry{name: filepath.Base(path), isDir: true})
		}
	}
	return entries, nil
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	if f, ok := m.files[filepath.Clean(path)]; ok {
		return mockFileInfo{name: filepath.Base(path), modTime: f.modTime, size: int64(len(f.content))}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (m *memFS) Exists(path string) (bool, error) {
	path = filepath.Clean(path)
	_, ok := m.files[path]
	return ok || m.dirs[path], nil
}

func (m *memFS) MkdirAll(path string, perm fs.FileMode) error {
	m.dirs[filepath.Clean(path)] = true
	return nil
}

func (m *memFS) ProbeWritable(dir string) error {
	return m.probeErr
}

func (m *memFS) CopyFile(src, dst string) error {
	src, dst = filepath.Clean(src), filepath.Clean(dst)
	if err := m.copyErr[src]; err != nil {
		return err
	}
	if m.appearing[dst] {
		delete(m.appearing, dst)
		m.files[dst] = &memFile{content: "written by someone else"}
	}
	if _, ok := m.files[dst]; ok {
		return &fs.PathError{Op: "open", Path: dst, Err: fs.ErrExist}
	}
	f, ok := m.files[src]
	if !ok {
		return &fs.PathError{Op: "open", Path: src, Err: fs.ErrNotExist}
	}
	m.files[dst] = &memFile{content: f.content, modTime: time.Now()}
	m.copies = append(m.copies, dst)
	return nil
}

func (m *memFS) namesIn(dir string) []string {
	var names []string
	for path := range m.files {
		if filepath.Dir(path) == filepath.Clean(dir) {
			names = append(names, filepath.Base(path))
		}
	}
	sort.Strings(names)
	return names
}

type mockExif struct {
	timestamps map[string]time.Time
}

func (m mockExif) DateTimeOriginal(ctx context.Context, path string) (time.Time, error) {
	if ts, ok := m.timestamps[path]; ok {
		return ts, nil
	}
	return time.Time{}, errors.New("missing exif")
}

type mockDirEntry struct {
	name  string
	isDir bool
}

func (m mockDirEntry) Name() string               { return m.name }
func (m mockDirEntry) IsDir() bool                { return m.isDir }
func (m mockDirEntry) Type() fs.FileMode          { return 0 }
func (m mockDirEntry) Info() (fs.FileInfo, error) { return nil, nil }

type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (m mockFileInfo) Name() string       { return m.name }
func (m mockFileInfo) Size() int64        { return m.size }
func (m mockFileInfo) Mode() fs.FileMode  { return 0 }
func (m mockFileInfo) ModTime() time.Time { return m.modTime }
func (m mockFileInfo) IsDir() bool        { return false }
func (m mockFileInfo) Sys() interface{}   { return nil }
