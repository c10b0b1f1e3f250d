package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without APP_ prefix for Docker/VM deploys
	viper.BindEnv("http.port", "HTTP_PORT", "APP_HTTP_PORT")
	viper.BindEnv("warehouse.url", "DATABASE_URL", "APP_WAREHOUSE_URL")
	viper.BindEnv("weather.provider.api_key", "WEATHER_API_KEY", "APP_WEATHER_PROVIDER_API_KEY")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: env vars and defaults carry the whole config.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "gastro-bi")
	viper.SetDefault("app.version", "dev")
	viper.SetDefault("app.environment", "development")

	viper.SetDefault("http.port", 8000)
	viper.SetDefault("http.read_timeout", 15*time.Second)
	viper.SetDefault("http.write_timeout", 30*time.Second)
	viper.SetDefault("http.idle_timeout", 60*time.Second)

	viper.SetDefault("warehouse.schema", "dwh")
	viper.SetDefault("warehouse.query_timeout", 10*time.Second)
	viper.SetDefault("warehouse.max_open_conns", 10)
	viper.SetDefault("warehouse.max_idle_conns", 5)
	viper.SetDefault("warehouse.conn_max_lifetime", 30*time.Minute)

	viper.SetDefault("datasets.dir", "data")
	viper.SetDefault("weather.dir", "weather")
	viper.SetDefault("weather.provider.base_url",
		"https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline")
	viper.SetDefault("weather.provider.timeout", 10*time.Second)
	viper.SetDefault("weather.provider.breaker.max_requests", 3)
	viper.SetDefault("weather.provider.breaker.interval", time.Minute)
	viper.SetDefault("weather.provider.breaker.timeout", 30*time.Second)

	viper.SetDefault("report.company", "PALLAPIZZA")
	viper.SetDefault("report.default_venues",
		[]string{"PAMPLONA", "BILBAO", "BURGOS", "VITORIA", "ZARAGOZA", "SAN SEBASTIAN"})
	viper.SetDefault("report.default_lang", "es")
	viper.SetDefault("report.default_tone", "funny")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("prometheus.enabled", true)
	viper.SetDefault("prometheus.path", "/metrics")

	viper.SetDefault("opentelemetry.enabled", false)
	viper.SetDefault("opentelemetry.service_name", "gastro-bi")
	viper.SetDefault("opentelemetry.jaeger.endpoint", "http://localhost:14268/api/traces")

	viper.SetDefault("cors.allowed_origins", []string{"*"})
}
