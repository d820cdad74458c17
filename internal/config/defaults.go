package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultLibraryDir       = "~/patches"
	defaultLogDir           = "~/.local/share/nordpatch/logs"
	defaultExportDir        = "~/.local/share/nordpatch/exports"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 60
	defaultScanWorkers      = 4
)

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "nordpatch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/nordpatch"
	}
	return filepath.Join(home, ".cache", "nordpatch")
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			CacheDir:   defaultCacheDir(),
			LogDir:     defaultLogDir,
			ExportDir:  defaultExportDir,
		},
		Decode: Decode{
			AllowLegacyHeader: true,
		},
		Scan: Scan{
			Workers: defaultScanWorkers,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
