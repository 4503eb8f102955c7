package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Redis      RedisConfig
	SMTP       SMTPConfig
	Cloudinary CloudinaryConfig
	Platform   PlatformConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AllowedOrigins string // comma separated, "*" allows all
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        int
	RefreshExpiryHours int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// PlatformConfig holds the consulting marketplace defaults.
type PlatformConfig struct {
	BookingNumberPrefix   string
	DefaultCommissionRate int // percent
	DefaultSLAHours       int
	DefaultDailyBookings  int
	MoyasarAPIKey         string
	GeminiAPIKey          string
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DB_URL", ""),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "change-this-secret-in-production"),
			ExpiryHours:        getEnvAsInt("JWT_EXPIRY_HOURS", 24),
			RefreshExpiryHours: getEnvAsInt("JWT_REFRESH_EXPIRY_HOURS", 24*30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@consulting-platform.sa"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "consultation-files"),
		},
		Platform: PlatformConfig{
			BookingNumberPrefix:   getEnv("BOOKING_NUMBER_PREFIX", "CONS"),
			DefaultCommissionRate: getEnvAsInt("DEFAULT_COMMISSION_RATE", 20),
			DefaultSLAHours:       getEnvAsInt("DEFAULT_SLA_HOURS", 24),
			DefaultDailyBookings:  getEnvAsInt("DEFAULT_MAX_DAILY_BOOKINGS", 5),
			MoyasarAPIKey:         getEnv("MOYASAR_API_KEY", ""),
			GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
