// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	RabbitMQ  RabbitMQConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	YouTube   YouTubeConfig
	Cache     CacheConfig
	Server    ServerConfig
	Search    SearchConfig
	Generator GeneratorConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	APIKeys         []string
}

// DatabaseConfig contains database connection configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DatabaseConfig struct {
	Host           string
	Name           string
	User           string
	Password       string
	Port           int
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
}

// URL renders the config as a pgx connection string.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// RedisConfig contains the Redis connection used by the task queue and
// the result cache.
type RedisConfig struct {
	URL string
}

// RabbitMQConfig contains RabbitMQ connection and topology configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RabbitMQConfig struct {
	Host       string
	User       string
	Password   string
	Exchange   string
	Queue      string
	RoutingKey string
	Port       int
	Enabled    bool
}

// YouTubeConfig contains the Data API credentials.
type YouTubeConfig struct {
	APIKey string
}

// CacheConfig controls the search result cache.
type CacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

// SearchConfig contains pipeline tuning knobs.
type SearchConfig struct {
	StrictValidation bool
	TopNiches        int
}

// GeneratorConfig selects the text generation backend. With no Ollama
// URL configured, the deterministic template generator is used.
type GeneratorConfig struct {
	OllamaURL    string
	OllamaModel  string
	OllamaAPIKey string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)
	viper.SetDefault("server.apikeys", []string{})

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "creatorlens")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.maxconnections", 10)
	viper.SetDefault("database.minconnections", 5)
	viper.SetDefault("database.maxidletime", 10*time.Minute)
	viper.SetDefault("database.maxlifetime", 1*time.Hour)

	// Redis
	viper.SetDefault("redis.url", "redis://localhost:6379/0")

	// RabbitMQ
	viper.SetDefault("rabbitmq.enabled", false)
	viper.SetDefault("rabbitmq.host", "localhost")
	viper.SetDefault("rabbitmq.port", 5672)
	viper.SetDefault("rabbitmq.user", "guest")
	viper.SetDefault("rabbitmq.password", "guest")
	viper.SetDefault("rabbitmq.exchange", "analytics.searches")
	viper.SetDefault("rabbitmq.queue", "analytics.searches.completed")
	viper.SetDefault("rabbitmq.routingkey", "search.completed")

	// YouTube
	viper.SetDefault("youtube.apikey", "")

	// Cache
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.ttl", 15*time.Minute)

	// Search
	viper.SetDefault("search.strictvalidation", false)
	viper.SetDefault("search.topniches", 8)

	// Generator
	viper.SetDefault("generator.ollamaurl", "")
	viper.SetDefault("generator.ollamamodel", "llama3:8b")
	viper.SetDefault("generator.ollamaapikey", "")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
