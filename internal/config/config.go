package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"camarc/internal/app"
	"camarc/internal/domain"
)

type ErrorPolicy string

const (
	OnErrorAbort    ErrorPolicy = "abort"
	OnErrorContinue ErrorPolicy = "continue"
)

type TimeSource string

const (
	TimeFromModTime TimeSource = "mtime"
	TimeFromExif    TimeSource = "exif"
)

type ProgressMode string

const (
	ProgressLines ProgressMode = "lines"
	ProgressBar   ProgressMode = "bar"
	ProgressTUI   ProgressMode = "tui"
	ProgressAuto  ProgressMode = "auto"
)

type Config struct {
	SourceDir  string               `yaml:"source"`
	TargetDir  string               `yaml:"target"`
	Format     string               `yaml:"format"`
	Prefix     string               `yaml:"prefix"`
	Match      domain.MatchMode     `yaml:"match"`
	Extension  domain.ExtensionMode `yaml:"extension"`
	TimeSource TimeSource           `yaml:"time_source"`
	OnError    ErrorPolicy          `yaml:"on_error"`
	Progress   ProgressMode         `yaml:"progress"`
	DryRun     bool                 `yaml:"dry_run"`
	Verbose    bool                 `yaml:"verbose"`
}

func Default() Config {
	return Config{
		Format:     "MP4",
		Prefix:     "GoPro",
		Match:      domain.MatchSubstring,
		Extension:  domain.ExtensionFirst,
		TimeSource: TimeFromModTime,
		OnError:    OnErrorAbort,
		Progress:   ProgressLines,
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// ApplyEnv overlays CAMARC_* variables onto cfg.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := envValue(getenv, "CAMARC_SOURCE_DIR"); v != "" {
		c.SourceDir = v
	}
	if v := envValue(getenv, "CAMARC_TARGET_DIR"); v != "" {
		c.TargetDir = v
	}
	if v := envValue(getenv, "CAMARC_FORMAT"); v != "" {
		c.Format = v
	}
	if v := envValue(getenv, "CAMARC_PREFIX"); v != "" {
		c.Prefix = v
	}
	if envTruthy(getenv, "CAMARC_VERBOSE") {
		c.Verbose = true
	}
}

func (c Config) Validate() error {
	if c.SourceDir == "" || c.TargetDir == "" {
		return errors.New("source and target are required")
	}
	if c.Format == "" {
		return errors.New("format must not be empty")
	}
	if c.Prefix == "" {
		return errors.New("prefix must not be empty")
	}
	if strings.ContainsAny(c.Prefix, `/\`) {
		return fmt.Errorf("prefix %q must not contain a path separator", c.Prefix)
	}
	switch c.Match {
	case domain.MatchSubstring, domain.MatchExtension:
	default:
		return fmt.Errorf("unknown match mode %q, use substring or extension", c.Match)
	}
	switch c.Extension {
	case domain.ExtensionFirst, domain.ExtensionLast:
	default:
		return fmt.Errorf("unknown extension mode %q, use first or last", c.Extension)
	}
	switch c.TimeSource {
	case TimeFromModTime, TimeFromExif:
	default:
		return fmt.Errorf("unknown time source %q, use mtime or exif", c.TimeSource)
	}
	switch c.OnError {
	case OnErrorAbort, OnErrorContinue:
	default:
		return fmt.Errorf("unknown error policy %q, use abort or continue", c.OnError)
	}
	switch c.Progress {
	case ProgressLines, ProgressBar, ProgressTUI, ProgressAuto:
	default:
		return fmt.Errorf("unknown progress mode %q, use lines, bar, tui or auto", c.Progress)
	}
	return nil
}

func (c Config) ArchiveOptions() app.Options {
	return app.Options{
		Format:          c.Format,
		Prefix:          c.Prefix,
		Match:           c.Match,
		Extension:       c.Extension,
		UseExif:         c.TimeSource == TimeFromExif,
		ContinueOnError: c.OnError == OnErrorContinue,
		DryRun:          c.DryRun,
	}
}

func envValue(getenv func(string) string, key string) string {
	return strings.TrimSpace(getenv(key))
}

func envTruthy(getenv func(string) string, key string) bool {
	val := strings.ToLower(envValue(getenv, key))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
