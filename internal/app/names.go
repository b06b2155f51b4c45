package app

import (
	"path/filepath"
	"time"

	"camarc/internal/domain"
)

// nameResolver hands out destination names that are free both on disk and
// among the names already assigned during the current run.
type nameResolver struct {
	fs    FileSystem
	dir   string
	taken map[string]bool
}

func newNameResolver(filesystem FileSystem, dir string) *nameResolver {
	return &nameResolver{
		fs:    filesystem,
		dir:   dir,
		taken: map[string]bool{},
	}
}

func (r *nameResolver) resolve(takenAt time.Time, prefix, ext string) (string, int, error) {
	for ordinal := 0; ; ordinal++ {
		name := domain.DestinationName(takenAt, prefix, ext, ordinal)
		free, err := r.free(name)
		if err != nil {
			return "", 0, err
		}
		if free {
			return name, ordinal, nil
		}
	}
}

func (r *nameResolver) free(name string) (bool, error) {
	if r.taken[name] {
		return false, nil
	}
	exists, err := r.fs.Exists(filepath.Join(r.dir, name))
	if err != nil {
		return false, err
	}
	if exists {
		r.taken[name] = true
		return false, nil
	}
	return true, nil
}

func (r *nameResolver) claim(name string) {
	r.taken[name] = true
}

func (r *nameResolver) release(name string) {
	delete(r.taken, name)
}
