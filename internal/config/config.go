// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Evaluator modes.
const (
	EvaluatorRemote = "remote"
	EvaluatorLocal  = "local"
)

// Roster sources.
const (
	RosterSeed     = "seed"
	RosterPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Trade     TradeConfig     `mapstructure:"trade"`
	Roster    RosterConfig    `mapstructure:"roster"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Intel     IntelConfig     `mapstructure:"intel"`
	Server    ServerConfig    `mapstructure:"server"`
	Health    HealthConfig    `mapstructure:"health"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	TUIMode     bool   `mapstructure:"-"` // set at runtime
}

// EngineConfig selects and tunes the adversarial evaluator.
type EngineConfig struct {
	Mode              string        `mapstructure:"mode"`     // remote | local
	BaseURL           string        `mapstructure:"base_url"` // http://localhost:8000
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	BreakerFailures   uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout    time.Duration `mapstructure:"breaker_timeout"`
}

// TradeConfig holds the heuristic constants used by the trade engine.
type TradeConfig struct {
	AcquisitionDiscount  float64       `mapstructure:"acquisition_discount"`
	CounterTolerance     float64       `mapstructure:"counter_tolerance"`
	PostJune1DeadFactor  float64       `mapstructure:"post_june1_dead_factor"`
	RestructureThreshold float64       `mapstructure:"restructure_threshold"`
	RestructureFloor     float64       `mapstructure:"restructure_floor"`
	RestructureYears     int64         `mapstructure:"restructure_years"`
	SearchDebounce       time.Duration `mapstructure:"search_debounce"`
	LocalCounterFallback bool          `mapstructure:"local_counter_fallback"`
}

// AcquisitionDiscountDecimal returns the acquisition discount as decimal.Decimal.
func (c *TradeConfig) AcquisitionDiscountDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.AcquisitionDiscount)
}

// CounterToleranceDecimal returns the counter tolerance as decimal.Decimal.
func (c *TradeConfig) CounterToleranceDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.CounterTolerance)
}

// RosterConfig holds roster source settings.
type RosterConfig struct {
	Source        string        `mapstructure:"source"` // seed | postgres
	SeedPath      string        `mapstructure:"seed_path"`
	ScenariosPath string        `mapstructure:"scenarios_path"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	LeagueCap     float64       `mapstructure:"league_cap"` // millions
}

// PostgresConfig holds database settings for the postgres roster source.
type PostgresConfig struct {
	DSN           string `mapstructure:"dsn"`
	RunMigrations bool   `mapstructure:"run_migrations"`
}

// IntelConfig holds the scenario stream settings.
type IntelConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	StreamURL string `mapstructure:"stream_url"`
}

// ServerConfig holds settings for the adversarial engine HTTP server.
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IntelInterval  time.Duration `mapstructure:"intel_interval"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
}

// HealthConfig holds health server settings.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	TraceProvider  string `mapstructure:"trace_provider"` // zipkin | console | otlp-grpc | otlp-http
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("CAP")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "CAP_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "CAP_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "CAP_LOG_LEVEL", "LOG_LEVEL")

	// Engine
	v.BindEnv("engine.mode", "CAP_ENGINE_MODE")
	v.BindEnv("engine.base_url", "CAP_ENGINE_URL", "ADVERSARIAL_ENGINE_URL")
	v.BindEnv("engine.timeout", "CAP_ENGINE_TIMEOUT")

	// Trade
	v.BindEnv("trade.acquisition_discount", "CAP_ACQUISITION_DISCOUNT")
	v.BindEnv("trade.counter_tolerance", "CAP_COUNTER_TOLERANCE")

	// Roster
	v.BindEnv("roster.source", "CAP_ROSTER_SOURCE")
	v.BindEnv("roster.seed_path", "CAP_ROSTER_SEED")
	v.BindEnv("roster.scenarios_path", "CAP_SCENARIOS")

	// Postgres
	v.BindEnv("postgres.dsn", "CAP_POSTGRES_DSN", "DATABASE_URL")

	// Intel
	v.BindEnv("intel.enabled", "CAP_INTEL_ENABLED")
	v.BindEnv("intel.stream_url", "CAP_INTEL_URL")

	// Server
	v.BindEnv("server.port", "CAP_SERVER_PORT", "PORT")

	// Telemetry
	v.BindEnv("telemetry.enabled", "CAP_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "CAP_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "CAP_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cap-alpha")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("engine.mode", EvaluatorRemote)
	v.SetDefault("engine.base_url", "http://localhost:8000")
	v.SetDefault("engine.timeout", "5s")
	v.SetDefault("engine.requests_per_minute", 120)
	v.SetDefault("engine.breaker_failures", 3)
	v.SetDefault("engine.breaker_timeout", "15s")

	v.SetDefault("trade.acquisition_discount", 0.8)
	v.SetDefault("trade.counter_tolerance", 5)
	v.SetDefault("trade.post_june1_dead_factor", 0.5)
	v.SetDefault("trade.restructure_threshold", 1.2)
	v.SetDefault("trade.restructure_floor", 1.0)
	v.SetDefault("trade.restructure_years", 5)
	v.SetDefault("trade.search_debounce", "300ms")
	v.SetDefault("trade.local_counter_fallback", true)

	v.SetDefault("roster.source", RosterSeed)
	v.SetDefault("roster.cache_ttl", "5m")
	v.SetDefault("roster.league_cap", 255.4) // 2024 league salary cap, millions

	v.SetDefault("postgres.run_migrations", true)

	v.SetDefault("intel.enabled", false)
	v.SetDefault("intel.stream_url", "ws://localhost:8000/ws/intel")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.intel_interval", "30s")
	v.SetDefault("server.requests_per_sec", 20)

	v.SetDefault("health.enabled", true)
	v.SetDefault("health.port", 8081)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "cap-alpha")
	v.SetDefault("telemetry.trace_provider", "zipkin")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Engine.Mode {
	case EvaluatorRemote:
		if c.Engine.BaseURL == "" {
			return fmt.Errorf("engine.base_url is required in remote mode")
		}
	case EvaluatorLocal:
	default:
		return fmt.Errorf("invalid engine.mode: %q", c.Engine.Mode)
	}

	switch c.Roster.Source {
	case RosterSeed:
	case RosterPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required when roster.source=postgres")
		}
	default:
		return fmt.Errorf("invalid roster.source: %q", c.Roster.Source)
	}

	if c.Trade.AcquisitionDiscount < 0 {
		return fmt.Errorf("trade.acquisition_discount cannot be negative")
	}
	if c.Trade.CounterTolerance < 0 {
		return fmt.Errorf("trade.counter_tolerance cannot be negative")
	}
	if c.Trade.RestructureYears <= 0 {
		return fmt.Errorf("trade.restructure_years must be positive")
	}
	if c.Roster.LeagueCap <= 0 {
		return fmt.Errorf("roster.league_cap must be positive")
	}
	return nil
}
