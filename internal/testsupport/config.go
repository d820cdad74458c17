package testsupport

import (
	"path/filepath"
	"testing"

	"nordpatch/internal/config"
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
	cfgVal.Paths.LibraryDir = filepath.Join(base, "patches")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ExportDir = filepath.Join(base, "exports")

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

// WithScanWorkers overrides the scan worker count on the test config.
func WithScanWorkers(workers int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Workers = workers
	}
}

// WithFollowSymlinks enables symlink traversal on the test config.
func WithFollowSymlinks() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.FollowSymlinks = true
	}
}

// WithStrictLength enables short-payload rejection on the test config.
func WithStrictLength() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Decode.StrictLength = true
	}
}

// WithLegacyDisabled turns off the legacy header fallback on the test config.
func WithLegacyDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Decode.AllowLegacyHeader = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LibraryDir)
}
