package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig          Kind = "invalid_config"
	SourceNotFound         Kind = "source_not_found"
	MalformedName          Kind = "malformed_name"
	CopyFailure            Kind = "copy_failure"
	DestinationNotWritable Kind = "destination_not_writable"
	ExifFailure            Kind = "exif_failure"
	Internal               Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf returns the kind of the outermost AppError in err's chain, or
// Internal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case SourceNotFound:
		return fmt.Sprintf("Source not found: %s", appErr.Path)
	case MalformedName:
		return fmt.Sprintf("Cannot derive an extension from %s: %v", appErr.Path, appErr.Err)
	case CopyFailure:
		return fmt.Sprintf("Copy failed for %s: %v", appErr.Path, appErr.Err)
	case DestinationNotWritable:
		return fmt.Sprintf("Destination not writable: %s", appErr.Path)
	case ExifFailure:
		return fmt.Sprintf("EXIF read failed: %s", appErr.Path)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
