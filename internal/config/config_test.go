package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camarc/internal/domain"
)

func validConfig() Config {
	cfg := Default()
	cfg.SourceDir = "/card"
	cfg.TargetDir = "/archive"
	return cfg
}

func TestDefaultsMatchGoProCard(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "MP4", cfg.Format)
	assert.Equal(t, "GoPro", cfg.Prefix)
	assert.Equal(t, domain.MatchSubstring, cfg.Match)
	assert.Equal(t, domain.ExtensionFirst, cfg.Extension)
	assert.Equal(t, OnErrorAbort, cfg.OnError)
	assert.Equal(t, ProgressLines, cfg.Progress)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camarc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source: /media/card/DCIM/100GOPRO
target: /srv/footage
prefix: Hero12
on_error: continue
`), 0o644))

	cfg := Default()
	require.NoError(t, LoadFile(path, &cfg))

	assert.Equal(t, "/media/card/DCIM/100GOPRO", cfg.SourceDir)
	assert.Equal(t, "/srv/footage", cfg.TargetDir)
	assert.Equal(t, "Hero12", cfg.Prefix)
	assert.Equal(t, OnErrorContinue, cfg.OnError)
	assert.Equal(t, "MP4", cfg.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileErrors(t *testing.T) {
	cfg := Default()
	require.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: [unterminated"), 0o644))
	require.Error(t, LoadFile(path, &cfg))
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CAMARC_SOURCE_DIR": " /card ",
		"CAMARC_TARGET_DIR": "/archive",
		"CAMARC_PREFIX":     "Cam",
		"CAMARC_VERBOSE":    "yes",
	}
	cfg := Default()
	cfg.ApplyEnv(func(key string) string { return env[key] })

	assert.Equal(t, "/card", cfg.SourceDir)
	assert.Equal(t, "/archive", cfg.TargetDir)
	assert.Equal(t, "Cam", cfg.Prefix)
	assert.Equal(t, "MP4", cfg.Format)
	assert.True(t, cfg.Verbose)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := map[string]func(*Config){
		"missing source":  func(c *Config) { c.SourceDir = "" },
		"empty format":    func(c *Config) { c.Format = "" },
		"empty prefix":    func(c *Config) { c.Prefix = "" },
		"prefix with sep": func(c *Config) { c.Prefix = "a/b" },
		"bad match":       func(c *Config) { c.Match = "glob" },
		"bad extension":   func(c *Config) { c.Extension = "middle" },
		"bad time source": func(c *Config) { c.TimeSource = "ctime" },
		"bad on error":    func(c *Config) { c.OnError = "retry" },
		"bad progress":    func(c *Config) { c.Progress = "fancy" },
	}
	for name, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestArchiveOptions(t *testing.T) {
	cfg := validConfig()
	cfg.TimeSource = TimeFromExif
	cfg.OnError = OnErrorContinue
	cfg.DryRun = true

	opts := cfg.ArchiveOptions()
	assert.True(t, opts.UseExif)
	assert.True(t, opts.ContinueOnError)
	assert.True(t, opts.DryRun)
	assert.Equal(t, "GoPro", opts.Prefix)
}
