package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/stocktake/pkg/httpx"
)

// ConfigFileEnv names the optional YAML file read before the environment.
const ConfigFileEnv = "CONFIG_FILE"

// RateLimit overrides one of the httpx rate limit profiles.
type RateLimit struct {
	Requests int           `yaml:"requests" env:"REQUESTS"`
	Window   time.Duration `yaml:"window"   env:"WINDOW"`
	Burst    int           `yaml:"burst"    env:"BURST"`
}

func (r RateLimit) limit() httpx.RateLimitConfig {
	return httpx.RateLimitConfig{
		RequestsPerWindow: r.Requests,
		Window:            r.Window,
		Burst:             r.Burst,
	}
}

// MQTT holds broker settings. An empty BrokerURL disables events.
type MQTT struct {
	BrokerURL   string `yaml:"broker_url"   env:"BROKER_URL"`
	ClientID    string `yaml:"client_id"    env:"CLIENT_ID"`
	Username    string `yaml:"username"     env:"USERNAME"`
	Password    string `yaml:"password"     env:"PASSWORD"`
	TopicPrefix string `yaml:"topic_prefix" env:"TOPIC_PREFIX"`
	QoS         int    `yaml:"qos"          env:"QOS"`
}

// Config is built from defaults, then the YAML file named by CONFIG_FILE,
// then the environment. Later sources win.
type Config struct {
	DatabaseFile   string        `yaml:"database_file"    env:"DATABASE_FILE"`
	PepperFile     string        `yaml:"pepper_file"      env:"PEPPER_FILE"`
	SessionKeyFile string        `yaml:"session_key_file" env:"SESSION_KEY_FILE"`
	SessionIssuer  string        `yaml:"session_issuer"   env:"SESSION_ISSUER"`
	SessionTTL     time.Duration `yaml:"session_ttl"      env:"SESSION_TTL"`
	CookieSecure   bool          `yaml:"cookie_secure"    env:"COOKIE_SECURE"`

	// SequenceWidth pads the per-week part of device ids.
	SequenceWidth int `yaml:"id_sequence_width" env:"ID_SEQUENCE_WIDTH"`

	Env                  string        `yaml:"env"                   env:"ENV"`
	LogLevel             string        `yaml:"log_level"             env:"LOG_LEVEL"`
	LogFormat            string        `yaml:"log_format"            env:"LOG_FORMAT"`
	Port                 int           `yaml:"port"                  env:"PORT"`
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period" env:"SHUTDOWN_GRACE_PERIOD"`
	HousekeepingInterval time.Duration `yaml:"housekeeping_interval" env:"HOUSEKEEPING_INTERVAL"`

	RateLimitEnabled bool      `yaml:"ratelimit_enabled" env:"RATELIMIT_ENABLED"`
	StrictLimit      RateLimit `yaml:"ratelimit_strict"   envPrefix:"RATELIMIT_STRICT_"`
	ModerateLimit    RateLimit `yaml:"ratelimit_moderate" envPrefix:"RATELIMIT_MODERATE_"`

	MQTT MQTT `yaml:"mqtt" envPrefix:"MQTT_"`
}

func defaultConfig() Config {
	return Config{
		DatabaseFile:         "stocktake.db",
		PepperFile:           "pepper",
		SessionKeyFile:       "session.key",
		SessionIssuer:        "stocktake",
		SessionTTL:           12 * time.Hour,
		SequenceWidth:        3,
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		Port:                 8080,
		ShutdownGracePeriod:  10 * time.Second,
		HousekeepingInterval: time.Hour,
		RateLimitEnabled:     true,
		StrictLimit: RateLimit{
			Requests: httpx.StrictLimit.RequestsPerWindow,
			Window:   httpx.StrictLimit.Window,
			Burst:    httpx.StrictLimit.Burst,
		},
		ModerateLimit: RateLimit{
			Requests: httpx.ModerateLimit.RequestsPerWindow,
			Window:   httpx.ModerateLimit.Window,
			Burst:    httpx.ModerateLimit.Burst,
		},
		MQTT: MQTT{
			ClientID:    "stocktake",
			TopicPrefix: "stocktake",
			QoS:         1,
		},
	}
}

// LoadConfig reads CONFIG_FILE (when set) and the environment.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("database_file is required"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session_ttl must be positive"))
	}
	if c.SequenceWidth < 1 || c.SequenceWidth > 9 {
		errs = append(errs, fmt.Errorf("id_sequence_width %d must be between 1 and 9", c.SequenceWidth))
	}
	if c.HousekeepingInterval <= 0 {
		errs = append(errs, errors.New("housekeeping_interval must be positive"))
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, fmt.Errorf("mqtt qos %d must be 0, 1 or 2", c.MQTT.QoS))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
