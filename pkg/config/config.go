package config

import "time"

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	HTTP          HTTPConfig          `mapstructure:"http"`
	Warehouse     WarehouseConfig     `mapstructure:"warehouse"`
	Datasets      DatasetsConfig      `mapstructure:"datasets"`
	Weather       WeatherConfig       `mapstructure:"weather"`
	Report        ReportConfig        `mapstructure:"report"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Prometheus    PrometheusConfig    `mapstructure:"prometheus"`
	OpenTelemetry OpenTelemetryConfig `mapstructure:"opentelemetry"`
	CORS          CORSConfig          `mapstructure:"cors"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// WarehouseConfig points at the analytical Postgres exposing the dwh.* KPI
// functions.
type WarehouseConfig struct {
	URL             string        `mapstructure:"url"`
	Schema          string        `mapstructure:"schema"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogQueries      bool          `mapstructure:"log_queries"`
}

// DatasetsConfig locates the synthetic CSV tables.
type DatasetsConfig struct {
	Dir string `mapstructure:"dir"`
}

type WeatherConfig struct {
	// Dir holds the persisted daily weather and daily reports tables.
	Dir      string                `mapstructure:"dir"`
	Provider WeatherProviderConfig `mapstructure:"provider"`
}

type WeatherProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

type BreakerConfig struct {
	MaxRequests uint32        `mapstructure:"max_requests"`
	Interval    time.Duration `mapstructure:"interval"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type ReportConfig struct {
	Company       string   `mapstructure:"company"`
	DefaultVenues []string `mapstructure:"default_venues"`
	DefaultLang   string   `mapstructure:"default_lang"`
	DefaultTone   string   `mapstructure:"default_tone"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type OpenTelemetryConfig struct {
	Enabled     bool         `mapstructure:"enabled"`
	ServiceName string       `mapstructure:"service_name"`
	Jaeger      JaegerConfig `mapstructure:"jaeger"`
}

type JaegerConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}
