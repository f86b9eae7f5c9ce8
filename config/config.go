package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	APIBaseURL     string `mapstructure:"API_BASE_URL"`
	HTTPTimeoutSec int    `mapstructure:"HTTP_TIMEOUT_SEC"`
	Env            string `mapstructure:"ENV"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`

	// Client-side ceiling on outgoing API requests per minute.
	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Durable client storage. Engine is one of "sqlite", "redis", "memory".
	StorageEngine string `mapstructure:"STORAGE_ENGINE"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`

	// Redis configuration (used when STORAGE_ENGINE=redis).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Loopback port for the OAuth redirect callback.
	OAuthCallbackPort string `mapstructure:"OAUTH_CALLBACK_PORT"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("HTTP_TIMEOUT_SEC", 15)
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	viper.SetDefault("STORAGE_ENGINE", "sqlite")
	viper.SetDefault("SQLITE_PATH", "servicehub.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("OAUTH_CALLBACK_PORT", "8765")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
