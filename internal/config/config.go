package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string   `yaml:"port" env:"SERVER_PORT"`
		Mode            string   `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout     string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		IdleTimeout     string   `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
		ShutdownTimeout string   `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
		AllowedOrigins  []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Cache struct {
		ClubListTTL  string `yaml:"club_list_ttl" env:"CACHE_CLUB_LIST_TTL"`
		EventListTTL string `yaml:"event_list_ttl" env:"CACHE_EVENT_LIST_TTL"`
		WeatherTTL   string `yaml:"weather_ttl" env:"CACHE_WEATHER_TTL"`
	} `yaml:"cache"`

	RateLimit struct {
		Enabled  bool   `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
		Requests int    `yaml:"requests" env:"RATE_LIMIT_REQUESTS"`
		Window   string `yaml:"window" env:"RATE_LIMIT_WINDOW"`
	} `yaml:"rate_limit"`

	Mail struct {
		Host          string `yaml:"host" env:"MAIL_HOST"`
		Port          int    `yaml:"port" env:"MAIL_PORT"`
		Username      string `yaml:"username" env:"MAIL_USERNAME"`
		Password      string `yaml:"password" env:"MAIL_PASSWORD"`
		From          string `yaml:"from" env:"MAIL_FROM"`
		FrontendURL   string `yaml:"frontend_url" env:"MAIL_FRONTEND_URL"`
		ResetTokenTTL string `yaml:"reset_token_ttl" env:"MAIL_RESET_TOKEN_TTL"`
	} `yaml:"mail"`

	Weather struct {
		GeocodingURL string `yaml:"geocoding_url" env:"WEATHER_GEOCODING_URL"`
		ForecastURL  string `yaml:"forecast_url" env:"WEATHER_FORECAST_URL"`
		DefaultCity  string `yaml:"default_city" env:"WEATHER_DEFAULT_CITY"`
		Timeout      string `yaml:"timeout" env:"WEATHER_TIMEOUT"`
	} `yaml:"weather"`

	Seed struct {
		Enabled            bool   `yaml:"enabled" env:"SEED_ENABLED"`
		Demo               bool   `yaml:"demo" env:"SEED_DEMO"`
		AdminEmail         string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminPassword      string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
		AdminStudentNumber int64  `yaml:"admin_student_number" env:"SEED_ADMIN_STUDENT_NUMBER"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from .env, a YAML file and environment variables,
// in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8000"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"
	config.Server.IdleTimeout = "120s"
	config.Server.ShutdownTimeout = "10s"
	config.Server.AllowedOrigins = []string{"http://localhost:5173"}

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "campusclubs"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20
	config.Database.MinConns = 2
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Redis.Addr = "localhost:6379"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "campusclubs"

	config.Cache.ClubListTTL = "300s"
	config.Cache.EventListTTL = "60s"
	config.Cache.WeatherTTL = "900s"

	config.RateLimit.Enabled = true
	config.RateLimit.Requests = 60
	config.RateLimit.Window = "1m"

	config.Mail.Port = 587
	config.Mail.FrontendURL = "http://localhost:5173"
	config.Mail.ResetTokenTTL = "30m"

	config.Weather.GeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	config.Weather.ForecastURL = "https://api.open-meteo.com/v1/forecast"
	config.Weather.DefaultCity = "Ankara"
	config.Weather.Timeout = "10s"

	config.Seed.Enabled = true
	config.Seed.AdminEmail = "admin@campus.edu.tr"
	config.Seed.AdminStudentNumber = 1

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.RateLimit.Enabled && config.RateLimit.Requests <= 0 {
		return fmt.Errorf("rate limit requests must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in release mode.
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
}
