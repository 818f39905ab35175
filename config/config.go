package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string
	LogLevel   string
	LogJSON    bool

	// Remote civic-data backend.
	BackendBaseURL string
	BackendTimeout time.Duration

	// ZIP polling policy.
	ResolveMaxAttempts     int
	ResolveRetryAfterFloor time.Duration
	ResolveRetryAfterCeil  time.Duration
	ResolveDefaultRetry    time.Duration
	ResolveJitterMax       time.Duration

	// Caches.
	CacheAddress    string
	ResultCacheTTL  time.Duration
	TopicsCacheTTL  time.Duration
	LookupsCacheTTL time.Duration

	DatabaseDbPath string
}

func InitConfig() (Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("CIVIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("backend.base_url", "https://ev-backend-h3n8.onrender.com")
	v.SetDefault("backend.timeout", "30s")

	v.SetDefault("resolve.max_attempts", 8)
	v.SetDefault("resolve.retry_after_floor", "2s")
	v.SetDefault("resolve.retry_after_ceil", "8s")
	v.SetDefault("resolve.default_retry", "3s")
	v.SetDefault("resolve.jitter_max", "500ms")

	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.result_ttl", "10m")
	v.SetDefault("cache.topics_ttl", "1h")
	v.SetDefault("cache.lookups_ttl", "1m")

	v.SetDefault("database.db_path", "data/civic.db")

	// A config file is optional; env vars and defaults carry deploys.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		ServerPort: v.GetString("server.port"),
		LogLevel:   v.GetString("log.level"),
		LogJSON:    v.GetBool("log.json"),

		BackendBaseURL: v.GetString("backend.base_url"),
		BackendTimeout: v.GetDuration("backend.timeout"),

		ResolveMaxAttempts:     v.GetInt("resolve.max_attempts"),
		ResolveRetryAfterFloor: v.GetDuration("resolve.retry_after_floor"),
		ResolveRetryAfterCeil:  v.GetDuration("resolve.retry_after_ceil"),
		ResolveDefaultRetry:    v.GetDuration("resolve.default_retry"),
		ResolveJitterMax:       v.GetDuration("resolve.jitter_max"),

		CacheAddress:    v.GetString("cache.address"),
		ResultCacheTTL:  v.GetDuration("cache.result_ttl"),
		TopicsCacheTTL:  v.GetDuration("cache.topics_ttl"),
		LookupsCacheTTL: v.GetDuration("cache.lookups_ttl"),

		DatabaseDbPath: v.GetString("database.db_path"),
	}, nil
}
