// internal/config/load.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDirName is the data directory under the user's home.
const DefaultDirName = ".callerid"

// DefaultFileName is the config file inside the data directory.
const DefaultFileName = "config.yaml"

// DefaultPath returns ~/.callerid/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home dir: %w", err)
	}
	return filepath.Join(home, DefaultDirName, DefaultFileName), nil
}

// Default returns the configuration written on first start.
// Placeholder credentials and store number must be edited before use.
func Default() *Config {
	clearOnStart := true
	return &Config{
		Store:  StoreConfig{Number: "00000000"},
		Serial: SerialConfig{Port: "COM3", Baud: 2400, TimeoutMs: 2000},
		API: APIConfig{
			URL:            "http://portal.envoi.com/",
			Username:       "0000000",
			Password:       "00000000",
			Direction:      "in",
			TimeoutMs:      10000,
			MaxRetries:     3,
			RetryBackoffMs: 1000,
		},
		Poll: PollConfig{
			Schedule:       "*/5 * 9-21 * * *",
			IdleIntervalMs: 60000,
		},
		Lines:    LinesConfig{Count: 4, ClearOnStart: &clearOnStart},
		Commit:   CommitOptimistic,
		Log:      LogConfig{Level: "info", File: "callerid.log"},
		Restart:  RestartConfig{Script: "restart-callerid.sh"},
		Instance: InstanceConfig{LockFile: "callerid.lock"},
	}
}

// Load reads, defaults, validates and normalizes a YAML config file.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(path)
	}
	Normalize(cfg)
	return cfg, nil
}

// LoadOrInit loads path, first writing Default() there if it does not exist.
func LoadOrInit(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, err
	}

	if err := WriteDefault(path); err != nil {
		return nil, false, err
	}
	cfg, err = Load(path)
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Parse unmarshals YAML bytes into a validated Config.
// It does not normalize; paths stay as written.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteDefault writes Default() to path, creating parent directories.
// An existing file is never overwritten.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("config: marshal defaults: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return f.Close()
}

// applyDefaults fills in omitted values from Default().
func (c *Config) applyDefaults() {
	d := Default()

	if c.Serial.Baud == 0 {
		c.Serial.Baud = d.Serial.Baud
	}
	if c.Serial.TimeoutMs == 0 {
		c.Serial.TimeoutMs = d.Serial.TimeoutMs
	}
	if c.API.Direction == "" {
		c.API.Direction = d.API.Direction
	}
	if c.API.TimeoutMs == 0 {
		c.API.TimeoutMs = d.API.TimeoutMs
	}
	if c.API.RetryBackoffMs == 0 {
		c.API.RetryBackoffMs = d.API.RetryBackoffMs
	}
	if c.Poll.Schedule == "" {
		c.Poll.Schedule = d.Poll.Schedule
	}
	if c.Poll.IdleIntervalMs == 0 {
		c.Poll.IdleIntervalMs = d.Poll.IdleIntervalMs
	}
	if c.Lines.Count == 0 {
		c.Lines.Count = d.Lines.Count
	}
	if c.Lines.ClearOnStart == nil {
		c.Lines.ClearOnStart = d.Lines.ClearOnStart
	}
	if c.Commit == "" {
		c.Commit = d.Commit
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = d.Log.File
	}
	if c.Restart.Script == "" {
		c.Restart.Script = d.Restart.Script
	}
	if c.Instance.LockFile == "" {
		c.Instance.LockFile = d.Instance.LockFile
	}
}
