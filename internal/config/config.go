package config

import (
	"fmt"
	"time"

	"github.com/revolck-lab/api-advancemais-sub001/pkg/config"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/database"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/kafka"
)

const defaultJWTSecret = "change-me-in-production"

// Config holds the full API configuration, loaded from environment variables.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"advancemais-api"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTP      HTTPConfig      `envPrefix:"HTTP_"`
	Postgres  PostgresConfig  `envPrefix:"POSTGRES_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	Kafka     KafkaConfig     `envPrefix:"KAFKA_"`
	JWT       JWTConfig       `envPrefix:"JWT_"`
	Auth      AuthConfig      `envPrefix:"AUTH_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	CORS      CORSConfig      `envPrefix:"CORS_"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	Host            string        `env:"HOST" envDefault:"localhost"`
	Port            int           `env:"PORT" envDefault:"5432"`
	User            string        `env:"USER" envDefault:"advancemais"`
	Password        string        `env:"PASSWORD" envDefault:"advancemais_secret"`
	DBName          string        `env:"DB" envDefault:"advancemais"`
	SSLMode         string        `env:"SSLMODE" envDefault:"disable"`
	MaxConns        int32         `env:"MAX_CONNS" envDefault:"25"`
	MinConns        int32         `env:"MIN_CONNS" envDefault:"5"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxConnIdleTime time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"30m"`
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}

// KafkaConfig holds Kafka producer configuration.
type KafkaConfig struct {
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092"`
	Enabled bool     `env:"ENABLED" envDefault:"true"`
}

// JWTConfig holds token signing configuration.
type JWTConfig struct {
	Secret string        `env:"SECRET" envDefault:"change-me-in-production"`
	TTL    time.Duration `env:"TTL" envDefault:"8h"`
}

// AuthConfig holds credential hashing configuration.
type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// RateLimitConfig holds per-client rate limiting for the public auth routes.
type RateLimitConfig struct {
	RPS   float64 `env:"RPS" envDefault:"5"`
	Burst int     `env:"BURST" envDefault:"10"`
}

// CORSConfig holds cross-origin configuration.
type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that must never reach a deployed
// environment. Development keeps the defaults usable out of the box.
func (c *Config) Validate() error {
	if c.IsDevelopment() {
		return nil
	}
	if c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("config: JWT_SECRET must be changed outside development")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("config: JWT_SECRET must be at least 32 characters outside development")
	}
	return nil
}

// IsDevelopment reports whether the API runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// PostgresPoolConfig converts to the database package's pool configuration.
func (c *Config) PostgresPoolConfig() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:            c.Postgres.Host,
		Port:            c.Postgres.Port,
		User:            c.Postgres.User,
		Password:        c.Postgres.Password,
		DBName:          c.Postgres.DBName,
		SSLMode:         c.Postgres.SSLMode,
		MaxConns:        c.Postgres.MaxConns,
		MinConns:        c.Postgres.MinConns,
		MaxConnLifetime: c.Postgres.MaxConnLifetime,
		MaxConnIdleTime: c.Postgres.MaxConnIdleTime,
	}
}

// RedisClientConfig converts to the database package's Redis configuration.
func (c *Config) RedisClientConfig() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.Redis.Host,
		Port:     c.Redis.Port,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	}
}

// KafkaProducerConfig converts to the kafka package's producer configuration.
func (c *Config) KafkaProducerConfig() kafka.ProducerConfig {
	return kafka.DefaultProducerConfig(c.Kafka.Brokers)
}
