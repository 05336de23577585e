package testsupport

import (
	"path/filepath"
	"testing"

	"mediashelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InboxDir = filepath.Join(base, "inbox")
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.QuarantineDir = filepath.Join(base, "quarantine")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDefaultSeason overrides the default season on the test config.
func WithDefaultSeason(season int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Rules.DefaultSeason = season
	}
}

// WithSeriesOverride adds a series alias override to the test config.
func WithSeriesOverride(alias, canonical string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Series.Overrides[alias] = canonical
	}
}

// WithCleanupDisabled turns off empty source directory cleanup.
func WithCleanupDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Rules.CleanupEmptyDirs = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InboxDir)
}
