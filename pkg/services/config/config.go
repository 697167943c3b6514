package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const EnvPrefix = "MATURITY"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Benchmark BenchmarkConfig `mapstructure:"benchmark"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Content   ContentConfig   `mapstructure:"content"`
	Controls  ControlsConfig  `mapstructure:"controls"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Pretty bool   `mapstructure:"pretty"`
}

type StoreConfig struct {
	Backend  string `mapstructure:"backend" validate:"oneof=memory badger sqlite s3 azure"`
	Path     string `mapstructure:"path" validate:"required_if=Backend sqlite"`
	InMemory bool   `mapstructure:"in_memory"`
	Bucket   string `mapstructure:"bucket" validate:"required_if=Backend s3,required_if=Backend azure"`
	Prefix   string `mapstructure:"prefix"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`

	// ConnectionString selects shared-key auth for the azure backend.
	ConnectionString string `mapstructure:"connection_string"`
}

type BenchmarkConfig struct {
	Reference float64            `mapstructure:"reference" validate:"gt=0,lte=5"`
	Overrides map[string]float64 `mapstructure:"overrides" validate:"dive,gt=0,lte=5"`
}

type AdminConfig struct {
	// Password empty disables the admin API.
	Password   string        `mapstructure:"password"`
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
}

type AnalyticsConfig struct {
	Endpoint      string        `mapstructure:"endpoint" validate:"omitempty,url"`
	APIKey        string        `mapstructure:"api_key"`
	QueueSize     int           `mapstructure:"queue_size" validate:"gt=0"`
	BatchSize     int           `mapstructure:"batch_size" validate:"gt=0"`
	FlushInterval time.Duration `mapstructure:"flush_interval" validate:"gt=0"`
	RatePerSecond float64       `mapstructure:"rate_per_second" validate:"gt=0"`
	RetryMax      int           `mapstructure:"retry_max" validate:"gte=0"`
}

type ContentConfig struct {
	SeedPath string `mapstructure:"seed_path"`
}

type ControlsConfig struct {
	Path string `mapstructure:"path"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.path", "")
	v.SetDefault("store.in_memory", false)
	v.SetDefault("store.bucket", "")
	v.SetDefault("store.prefix", "")
	v.SetDefault("store.region", "")
	v.SetDefault("store.endpoint", "")
	v.SetDefault("store.connection_string", "")
	v.SetDefault("benchmark.reference", 3.2)
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.session_ttl", "12h")
	v.SetDefault("analytics.endpoint", "")
	v.SetDefault("analytics.api_key", "")
	v.SetDefault("analytics.queue_size", 1024)
	v.SetDefault("analytics.batch_size", 50)
	v.SetDefault("analytics.flush_interval", "5s")
	v.SetDefault("analytics.rate_per_second", 2.0)
	v.SetDefault("analytics.retry_max", 3)
	v.SetDefault("content.seed_path", "")
	v.SetDefault("controls.path", "")
}

// LoadConfig reads defaults, then the optional file at path, then
// MATURITY_* environment variables (MATURITY_SERVER_PORT and so on).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Benchmark.DomainOverrides(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// DomainOverrides converts the per-domain benchmark table keyed by domain
// id.
func (b BenchmarkConfig) DomainOverrides() (map[domain.Domain]float64, error) {
	out := make(map[domain.Domain]float64, len(b.Overrides))
	var errs []error
	for k, v := range b.Overrides {
		d, err := domain.ParseDomain(k)
		if err != nil {
			errs = append(errs, fmt.Errorf("benchmark.overrides: %w", err))
			continue
		}
		out[d] = v
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
