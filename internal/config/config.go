package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the storefront service.
type Config struct {
	AppPort        string
	DBDriver       string
	DatabaseDSN    string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	TokenTTL       time.Duration
	RabbitMQURL    string
	CacheDriver    string
	RedisAddr      string
	RedisPassword  string
	CacheTTL       time.Duration
	CORSOrigins    string
	BodyLimitMB    int
	RequestTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "freshcart.db")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "freshcart")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "720h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CACHE_DRIVER", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("BODY_LIMIT_MB", 50)
	v.SetDefault("REQUEST_TIMEOUT", "30s")
}

// Load reads configuration from a .env file when present, the optional
// CONFIG_FILE, and the environment, in increasing order of precedence.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("Error loading .env file: %v", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		MongoURI:       v.GetString("MONGO_URI"),
		MongoDB:        v.GetString("MONGO_DB"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		CacheDriver:    strings.ToLower(v.GetString("CACHE_DRIVER")),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		CacheTTL:       v.GetDuration("CACHE_TTL"),
		CORSOrigins:    v.GetString("CORS_ORIGINS"),
		BodyLimitMB:    v.GetInt("BODY_LIMIT_MB"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
	}
	if !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	switch c.DBDriver {
	case "memory", "sqlite", "postgres", "mongo":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.CacheDriver {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("unsupported CACHE_DRIVER %q", c.CacheDriver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.BodyLimitMB <= 0 {
		return fmt.Errorf("BODY_LIMIT_MB must be positive")
	}
	return nil
}
