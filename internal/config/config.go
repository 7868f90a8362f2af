// internal/config/config.go
package config

type Config struct {
	DataDir  string         `yaml:"data_dir"`
	Store    StoreConfig    `yaml:"store"`
	Serial   SerialConfig   `yaml:"serial"`
	API      APIConfig      `yaml:"api"`
	Poll     PollConfig     `yaml:"poll"`
	Lines    LinesConfig    `yaml:"lines"`
	Commit   string         `yaml:"commit"`
	Log      LogConfig      `yaml:"log"`
	Restart  RestartConfig  `yaml:"restart"`
	Instance InstanceConfig `yaml:"instance"`
}

// ---- STORE ----

type StoreConfig struct {
	// Number is the store's published phone number (the API's cnumber).
	Number string `yaml:"number"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port      string `yaml:"port"` // COM3, /dev/ttyUSB0, or tcp://host:port
	Baud      int    `yaml:"baud"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- API ----

type APIConfig struct {
	URL            string `yaml:"url"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	Direction      string `yaml:"direction"`
	TimeoutMs      int    `yaml:"timeout_ms"`
	MaxRetries     int    `yaml:"max_retries"`
	RetryBackoffMs int    `yaml:"retry_backoff_ms"`
}

// ---- POLL ----

type PollConfig struct {
	// Schedule is a 6-field cron expression (with seconds) for active polling.
	Schedule       string `yaml:"schedule"`
	IdleIntervalMs int    `yaml:"idle_interval_ms"`
}

// ---- LINES ----

type LinesConfig struct {
	Count        int   `yaml:"count"`
	ClearOnStart *bool `yaml:"clear_on_start"`
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // relative paths resolve under data_dir
}

// ---- RESTART ----

type RestartConfig struct {
	Script string `yaml:"script"` // relative paths resolve under data_dir
}

// ---- INSTANCE ----

type InstanceConfig struct {
	LockFile string `yaml:"lock_file"` // relative paths resolve under data_dir
}

// Commit policies.
const (
	CommitOptimistic = "optimistic"
	CommitConfirmed  = "confirmed"
)
