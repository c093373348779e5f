package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	ServerPort string

	JWTSecret       string
	JWTExpiry       time.Duration
	RefreshTokenTTL time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	LogLevel  string
	LogFormat string

	AttachmentsDir     string
	MaxAttachmentBytes int64

	DueDatePollInterval time.Duration
	DueDateWindow       time.Duration
	UserCacheTTL        time.Duration
	RunMigrations       bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskboard_user"),
		DBPassword: getEnv("DB_PASSWORD", "taskboard_pass"),
		DBName:     getEnv("DB_NAME", "taskboard_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret:       getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiry:       time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@taskboard.local"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AttachmentsDir:     getEnv("ATTACHMENTS_DIR", "./data/attachments"),
		MaxAttachmentBytes: int64(getEnvInt("MAX_ATTACHMENT_BYTES", 10*1024*1024)),

		DueDatePollInterval: getEnvDuration("DUE_DATE_POLL_INTERVAL", time.Minute),
		DueDateWindow:       getEnvDuration("DUE_DATE_WINDOW", 24*time.Hour),
		UserCacheTTL:        getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		RunMigrations:       getEnvBool("RUN_MIGRATIONS", true),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.WithField("key", key).Warnf("invalid integer %q, using default %d", value, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.WithField("key", key).Warnf("invalid duration %q, using default %s", value, defaultVal)
		return defaultVal
	}
	return d
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.WithField("key", key).Warnf("invalid boolean %q, using default %t", value, defaultVal)
		return defaultVal
	}
	return b
}
