package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrNoExtension = errors.New("file name has no extension")

// MatchMode selects how the format marker is compared against file names.
type MatchMode string

const (
	// MatchSubstring selects names containing the marker anywhere.
	MatchSubstring MatchMode = "substring"
	// MatchExtension selects names whose last extension equals the marker, ignoring case.
	MatchExtension MatchMode = "extension"
)

// ExtensionMode selects which dot-delimited segment becomes the extension.
type ExtensionMode string

const (
	// ExtensionFirst takes the segment right after the first dot, so
	// "GX010001.MP4.bak" yields "MP4".
	ExtensionFirst ExtensionMode = "first"
	// ExtensionLast takes the segment after the last dot.
	ExtensionLast ExtensionMode = "last"
)

type SourceFile struct {
	SourcePath string
	Name       string
	Ext        string
	ModTime    time.Time
	TakenAt    time.Time
}

func NewSourceFile(sourcePath, name, ext string, modTime, takenAt time.Time) SourceFile {
	return SourceFile{
		SourcePath: sourcePath,
		Name:       name,
		Ext:        ext,
		ModTime:    modTime,
		TakenAt:    takenAt,
	}
}

func Matches(name, marker string, mode MatchMode) bool {
	if mode == MatchExtension {
		ext, err := Extension(name, ExtensionLast)
		if err != nil {
			return false
		}
		return strings.EqualFold(ext, strings.TrimPrefix(marker, "."))
	}
	return strings.Contains(name, marker)
}

// Extension returns the extension of name without the leading dot. The case
// of the segment is preserved.
func Extension(name string, mode ExtensionMode) (string, error) {
	var seg string
	switch mode {
	case ExtensionLast:
		idx := strings.LastIndex(name, ".")
		if idx < 0 {
			return "", ErrNoExtension
		}
		seg = name[idx+1:]
	default:
		idx := strings.Index(name, ".")
		if idx < 0 {
			return "", ErrNoExtension
		}
		seg = name[idx+1:]
		if next := strings.Index(seg, "."); next >= 0 {
			seg = seg[:next]
		}
	}
	if seg == "" {
		return "", ErrNoExtension
	}
	return seg, nil
}
