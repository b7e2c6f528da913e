package config

import (
	"fmt"
	"strings"

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
	viper.BindEnv("signal.port", "SIGNAL_PORT", "APP_SIGNAL_PORT")
	viper.BindEnv("redis.url", "REDIS_URL", "APP_REDIS_URL")
	viper.BindEnv("queue.url", "QUEUE_URL", "APP_QUEUE_URL")
	viper.BindEnv("llm.url", "LLM_URL", "APP_LLM_URL")
	viper.BindEnv("llm.model", "LLM_MODEL", "APP_LLM_MODEL")
	viper.BindEnv("routing.api_key", "ORS_API_KEY", "APP_ROUTING_API_KEY")
	viper.BindEnv("whatsapp.account_sid", "TWILIO_ACCOUNT_SID")
	viper.BindEnv("whatsapp.auth_token", "TWILIO_AUTH_TOKEN")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// env vars only
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "terratalk")
	viper.SetDefault("http.port", 3011)
	viper.SetDefault("signal.port", 3012)
	viper.SetDefault("queue.provider", "nats")
	viper.SetDefault("llm.url", "http://localhost:11434")
	viper.SetDefault("llm.model", "gemma3:1b")
	viper.SetDefault("llm.temperature", 0.1)
	viper.SetDefault("llm.num_predict", 100)
	viper.SetDefault("llm.top_p", 0.9)
	viper.SetDefault("llm.timeout", "60s")
	viper.SetDefault("geocoding.url", "https://nominatim.openstreetmap.org")
	viper.SetDefault("geocoding.timeout", "10s")
	viper.SetDefault("routing.url", "https://api.openrouteservice.org")
	viper.SetDefault("routing.timeout", "15s")
	viper.SetDefault("weather.geocoding_url", "https://geocoding-api.open-meteo.com")
	viper.SetDefault("weather.forecast_url", "https://api.open-meteo.com")
	viper.SetDefault("weather.timeout", "10s")
	viper.SetDefault("speech.language", "en-US")
	viper.SetDefault("cache.geocode_ttl", "15m")
	viper.SetDefault("prometheus.path", "/metrics")
}
