package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"camarc/internal/domain"
	appErrors "camarc/internal/errors"
	"camarc/internal/logging"
)

// ScanFunc is called once the source has been enumerated.
type ScanFunc func(total int)

// ProgressFunc is called after every file that was copied (or, in a dry run,
// planned). current counts successful files only.
type ProgressFunc func(current, total int, item domain.CopyItem)

type Options struct {
	Format          string
	Prefix          string
	Match           domain.MatchMode
	Extension       domain.ExtensionMode
	UseExif         bool
	ContinueOnError bool
	DryRun          bool
}

type Archiver struct {
	FS         FileSystem
	Exif       ExifReader
	Logger     logging.Logger
	OnScan     ScanFunc
	OnProgress ProgressFunc
	NewRunID   func() string
}

// Run copies every matching file from sourceDir into targetDir, one at a
// time. The returned report is valid even when err is non-nil and lists the
// files copied before the failure.
func (a *Archiver) Run(ctx context.Context, sourceDir, targetDir string, opts Options) (domain.Report, error) {
	if a.FS == nil {
		return domain.Report{}, errors.New("archiver requires FS")
	}
	if opts.UseExif && a.Exif == nil {
		return domain.Report{}, errors.New("archiver requires Exif when capture time comes from EXIF")
	}

	stop := a.Logger.Measure("Archiving")
	defer stop()

	report := domain.Report{
		RunID:     a.runID(),
		SourceDir: sourceDir,
		TargetDir: targetDir,
		DryRun:    opts.DryRun,
	}

	names, warnings, err := a.scan(sourceDir, opts)
	if err != nil {
		return report, err
	}
	report.Total = len(names)
	report.Warnings = warnings
	a.Logger.Verbosef("Run %s: %d files in %s match %q", report.RunID, report.Total, sourceDir, opts.Format)
	if a.OnScan != nil {
		a.OnScan(report.Total)
	}

	if !opts.DryRun && report.Total > 0 {
		if err := a.prepareTarget(targetDir); err != nil {
			return report, err
		}
	}

	resolver := newNameResolver(a.FS, targetDir)
	for _, name := range names {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		item, warning, err := a.archiveOne(ctx, resolver, sourceDir, targetDir, name, opts)
		if warning != "" {
			report.Warnings = append(report.Warnings, warning)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			if !opts.ContinueOnError {
				return report, err
			}
			a.Logger.Warnf("%v", err)
			report.Failures = append(report.Failures, domain.Failure{
				SourcePath: filepath.Join(sourceDir, name),
				Err:        err,
			})
			continue
		}

		report.Items = append(report.Items, item)
		a.Logger.Verbosef("%s -> %s", item.Source.Name, item.TargetName)
		if a.OnProgress != nil {
			a.OnProgress(len(report.Items), report.Total, item)
		}
	}

	return report, nil
}

func (a *Archiver) scan(sourceDir string, opts Options) ([]string, []string, error) {
	stop := a.Logger.Measure("Scanning source directory")
	defer stop()

	entries, err := a.FS.ReadDir(sourceDir)
	if err != nil {
		return nil, nil, appErrors.Wrap(appErrors.SourceNotFound, "read source", sourceDir, err)
	}

	var names []string
	var warnings []string
	for _, entry := range entries {
		if !domain.Matches(entry.Name(), opts.Format, opts.Match) {
			continue
		}
		if entry.IsDir() {
			warnings = append(warnings, fmt.Sprintf("Skipping directory %s", entry.Name()))
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, warnings, nil
}

func (a *Archiver) prepareTarget(targetDir string) error {
	if err := a.FS.MkdirAll(targetDir, 0o755); err != nil {
		return appErrors.Wrap(appErrors.DestinationNotWritable, "mkdir", targetDir, err)
	}
	if err := a.FS.ProbeWritable(targetDir); err != nil {
		return appErrors.Wrap(appErrors.DestinationNotWritable, "probe", targetDir, err)
	}
	return nil
}

func (a *Archiver) archiveOne(ctx context.Context, resolver *nameResolver, sourceDir, targetDir, name string, opts Options) (domain.CopyItem, string, error) {
	path := filepath.Join(sourceDir, name)

	ext, err := domain.Extension(name, opts.Extension)
	if err != nil {
		return domain.CopyItem{}, "", appErrors.Wrap(appErrors.MalformedName, "extension", path, err)
	}

	info, err := a.FS.Stat(path)
	if err != nil {
		return domain.CopyItem{}, "", appErrors.Wrap(appErrors.CopyFailure, "stat", path, err)
	}

	takenAt, warning, err := a.captureTime(ctx, path, info.ModTime(), opts)
	if err != nil {
		return domain.CopyItem{}, "", err
	}
	source := domain.NewSourceFile(path, name, ext, info.ModTime(), takenAt)

	for {
		targetName, ordinal, err := resolver.resolve(takenAt, opts.Prefix, ext)
		if err != nil {
			return domain.CopyItem{}, warning, appErrors.Wrap(appErrors.DestinationNotWritable, "probe name", targetDir, err)
		}
		targetPath := filepath.Join(targetDir, targetName)
		resolver.claim(targetName)

		if !opts.DryRun {
			if err := a.FS.CopyFile(path, targetPath); err != nil {
				if errors.Is(err, fs.ErrExist) {
					a.Logger.Verbosef("%s appeared while copying %s, trying next name", targetName, name)
					continue
				}
				resolver.release(targetName)
				return domain.CopyItem{}, warning, appErrors.Wrap(appErrors.CopyFailure, "copy", path, err)
			}
		}

		return domain.CopyItem{
			Source:     source,
			TargetName: targetName,
			TargetPath: targetPath,
			Ordinal:    ordinal,
		}, warning, nil
	}
}

func (a *Archiver) captureTime(ctx context.Context, path string, modTime time.Time, opts Options) (time.Time, string, error) {
	if !opts.UseExif {
		return modTime.Local(), "", nil
	}
	takenAt, err := a.Exif.DateTimeOriginal(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return time.Time{}, "", err
		}
		return modTime.Local(), fmt.Sprintf("EXIF not found for %s, using filesystem time", filepath.Base(path)), nil
	}
	return takenAt, "", nil
}

func (a *Archiver) runID() string {
	if a.NewRunID != nil {
		return a.NewRunID()
	}
	return uuid.NewString()
}
