package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

// BackendConfig points at the voting server. A non-zero ResyncInterval
// re-pulls everything periodically in case push events were missed.
type BackendConfig struct {
	BaseURL        string        `yaml:"baseUrl" validate:"required|fullUrl"`
	EventsURL      string        `yaml:"eventsUrl"`
	Timeout        time.Duration `yaml:"timeout" validate:"required|min:1"`
	ResyncInterval time.Duration `yaml:"resyncInterval"`
}

// ClientConfig identifies this device. DeviceID names the vote status
// entry on disk, so it is restricted to a file-name-safe alphabet.
type ClientConfig struct {
	DeviceID string `yaml:"deviceId" validate:"alphaDash|maxLen:64"`
	Admin    bool   `yaml:"admin"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" validate:"required|in:file,sqlite"`
	Dir    string `yaml:"dir" validate:"required|unixPath"`
}

type ExportConfig struct {
	Dir string `yaml:"dir" validate:"required|unixPath"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Backend   BackendConfig `yaml:"backend"`
	Client    ClientConfig  `yaml:"client"`
	Storage   StorageConfig `yaml:"storage"`
	Export    ExportConfig  `yaml:"export"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

// EventsEndpoint falls back to the backend's default push stream when no explicit URL is configured.
func (c *Config) EventsEndpoint() string {
	if c.Backend.EventsURL != "" {
		return c.Backend.EventsURL
	}
	return c.Backend.BaseURL + "/api/events"
}

type CliFlags struct {
	ConfigPath string
	EnvFile    string
	DebugMode  bool
}
