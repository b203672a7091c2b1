package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the exporter configuration.
const (
	DefaultHTTPPort    = 9464
	DefaultReadTimeout = 5 * time.Second
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
)

// DefaultReferenceMagnitudes are the source magnitudes exported as
// galcheat_source_counts when none are configured.
var DefaultReferenceMagnitudes = []float64{20, 22, 24}

// Config holds the exporter configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Surveys    SurveysConfig    `yaml:"surveys"`
	Exposition ExpositionConfig `yaml:"exposition"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// HTTPPort is the port serving /metrics and the REST API (default 9464).
	HTTPPort int `yaml:"http_port"`

	// ReadTimeout bounds reading a full request (default 5s).
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// Auth guards the /api/v1 endpoints.
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig controls client authentication on the REST API.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected API key.
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header to read the key from. Defaults to "x-api-key".
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// ResolveKey returns the API key to enforce, or "" when auth is off.
// In apikey mode an unset or empty key variable is an error, so the API is
// never left open by accident.
func (a AuthConfig) ResolveKey() (string, error) {
	if a.Mode != "apikey" {
		return "", nil
	}
	key := a.Key()
	if key == "" {
		return "", fmt.Errorf("server config: server.auth.key_env %q is unset or empty", a.KeyEnv)
	}
	return key, nil
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// SurveysConfig selects where survey tables come from.
type SurveysConfig struct {
	// Builtin includes the surveys embedded in the binary (default true).
	Builtin bool `yaml:"builtin"`

	// Dir is an optional directory of *.yaml survey tables.
	Dir string `yaml:"dir"`

	// Watch reloads Dir when its tables change (default true).
	Watch bool `yaml:"watch"`
}

// ExpositionConfig controls the generated metric families.
type ExpositionConfig struct {
	// ReferenceMagnitudes are converted to counts for every survey/filter pair.
	ReferenceMagnitudes []float64 `yaml:"reference_magnitudes"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is one of: json | text.
	Format string `yaml:"format"`
}

// Load reads and parses the config file at path.
// Missing fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server config: read %q: %w", path, err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("server config: parse yaml: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values. It is what
// the server runs with when no config file is given.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:    DefaultHTTPPort,
			ReadTimeout: DefaultReadTimeout,
		},
		Surveys: SurveysConfig{
			Builtin: true,
			Watch:   true,
		},
		Exposition: ExpositionConfig{
			ReferenceMagnitudes: append([]float64(nil), DefaultReferenceMagnitudes...),
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	if cfg.Server.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must not be negative")
	}
	switch cfg.Server.Auth.Mode {
	case "apikey":
		if cfg.Server.Auth.KeyEnv == "" {
			return fmt.Errorf("server.auth.key_env is required when mode is apikey")
		}
	case "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}
	if !cfg.Surveys.Builtin && cfg.Surveys.Dir == "" {
		return fmt.Errorf("surveys: builtin is disabled and no dir is set")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q unknown: want debug|info|warn|error", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q unknown: want json|text", cfg.Log.Format)
	}
	return nil
}
