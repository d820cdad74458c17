package config

import (
	"errors"
	"fmt"
)

// maxScanWorkers caps the scan pool; index writes serialize in sqlite.
const maxScanWorkers = 32

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.CacheDir == "" {
		return errors.New("paths.cache_dir must be set")
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Workers <= 0 {
		return errors.New("scan.workers must be positive")
	}
	if c.Scan.Workers > maxScanWorkers {
		return fmt.Errorf("scan.workers must be at most %d", maxScanWorkers)
	}
	return nil
}
