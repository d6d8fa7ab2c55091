package testsupport

import (
	"path/filepath"
	"testing"

	"crate/internal/config"
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
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.BackupDir = filepath.Join(base, "backups")

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

// WithDuplicateThreshold overrides the duplicate matching threshold.
func WithDuplicateThreshold(threshold float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.DuplicateThreshold = threshold
	}
}

// WithDisplay overrides the default view preferences.
func WithDisplay(mediaType, sortKey, sortOrder string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Display.MediaType = mediaType
		b.cfg.Display.SortKey = sortKey
		b.cfg.Display.SortOrder = sortOrder
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
