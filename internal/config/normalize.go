// internal/config/normalize.go
package config

import (
	"path/filepath"
	"strings"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Store.Number = strings.TrimSpace(cfg.Store.Number)
	cfg.API.Direction = strings.ToLower(strings.TrimSpace(cfg.API.Direction))
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	// ------------------------------------------------------------
	// PATHS: relative to data_dir
	// ------------------------------------------------------------

	if cfg.DataDir == "" {
		return
	}

	cfg.Log.File = underDataDir(cfg.DataDir, cfg.Log.File)
	cfg.Restart.Script = underDataDir(cfg.DataDir, cfg.Restart.Script)
	cfg.Instance.LockFile = underDataDir(cfg.DataDir, cfg.Instance.LockFile)
}

func underDataDir(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
