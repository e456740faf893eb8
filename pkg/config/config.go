package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// DBConfig holds database configuration
type DBConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
	AutoMigrate     bool
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// InMemory reports whether the service should run without PostgreSQL.
func (c *DBConfig) InMemory() bool {
	return strings.EqualFold(c.Driver, "memory")
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Env             string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	ServiceName string
}

// BannerConfig tunes the decorative activity banner feed.
type BannerConfig struct {
	Enabled      bool
	InitialDelay time.Duration
	MinInterval  time.Duration
	MaxInterval  time.Duration
	TTL          time.Duration
	Chance       float64
	Max          int
}

// EventsConfig holds the RabbitMQ publisher settings. An empty URL disables publishing.
type EventsConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// MediaConfig holds the Cloudinary settings. An empty URL disables avatar uploads.
type MediaConfig struct {
	CloudinaryURL string
	AvatarFolder  string
}

// Config holds all configuration
type Config struct {
	DB      DBConfig
	Server  ServerConfig
	JWT     JWTConfig
	Log     LogConfig
	Metrics MetricsConfig
	Banner  BannerConfig
	Events  EventsConfig
	Media   MediaConfig
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", "lead_roper"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("APP_ENV", "development"),
			AllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "leadropersecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			ServiceName: getEnv("SERVICE_NAME", "lead-roper"),
		},
		Banner: BannerConfig{
			Enabled:      getEnvAsBool("BANNER_ENABLED", true),
			InitialDelay: getEnvAsDuration("BANNER_INITIAL_DELAY", 2*time.Second),
			MinInterval:  getEnvAsDuration("BANNER_MIN_INTERVAL", 8*time.Second),
			MaxInterval:  getEnvAsDuration("BANNER_MAX_INTERVAL", 15*time.Second),
			TTL:          getEnvAsDuration("BANNER_TTL", 4*time.Second),
			Chance:       getEnvAsFloat("BANNER_CHANCE", 0.7),
			Max:          getEnvAsInt("BANNER_MAX", 3),
		},
		Events: EventsConfig{
			URL:        getEnv("RABBITMQ_URL", ""),
			Exchange:   getEnv("RABBITMQ_EXCHANGE", "crm.events"),
			RoutingKey: getEnv("RABBITMQ_ROUTING_KEY", "crm.record.created"),
		},
		Media: MediaConfig{
			CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
			AvatarFolder:  getEnv("CLOUDINARY_AVATAR_FOLDER", "avatars"),
		},
	}

	if config.Server.Env == "production" && config.JWT.SigningKey == "leadropersecretkey" {
		return nil, fmt.Errorf("JWT_SIGNING_KEY must be set in production")
	}

	return config, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Server.Env),
		zap.String("db_driver", c.DB.Driver),
		zap.String("db_host", c.DB.Host),
		zap.String("db_port", c.DB.Port),
		zap.String("db_user", c.DB.User),
		zap.String("db_name", c.DB.DBName),
		zap.String("server_port", c.Server.Port),
		zap.Bool("events_enabled", c.Events.URL != ""),
		zap.Bool("media_enabled", c.Media.CloudinaryURL != ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Comma separated, blanks dropped.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
