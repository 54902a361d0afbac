package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv              string
	AppPort             string
	AllowedOrigins      string
	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBMaxIdleConns      int
	DBMaxOpenConns      int
	DBLogLevel          string
	SQLitePath          string
	NatsURL             string
	EventPollIntervalMs int
	LogLevel            string
	LogFilePath         string
	PatchZeroAsAbsent   bool
}

// IsDevelopment reports whether debug-only surfaces should be exposed.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Invalid boolean value for %s, defaulting to %t", key, defaultValue)
	}
	return defaultValue
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	return Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		AppPort:             getEnv("APP_PORT", "8080"),
		AllowedOrigins:      getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		DBDriver:            getEnv("DB_DRIVER", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "stickyboard"),
		DBPassword:          getEnv("DB_PASSWORD", "stickyboard"),
		DBName:              getEnv("DB_NAME", "stickyboard"),
		DBMaxIdleConns:      getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:      getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		DBLogLevel:          getEnv("DB_LOG_LEVEL", "warn"),
		SQLitePath:          getEnv("SQLITE_PATH", "stickyboard.db"),
		NatsURL:             getEnv("NATS_URL", ""),
		EventPollIntervalMs: getEnvAsInt("EVENT_POLL_INTERVAL_MS", 1000),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFilePath:         getEnv("LOG_FILE_PATH", ""),
		PatchZeroAsAbsent:   getEnvAsBool("PATCH_ZERO_AS_ABSENT", true),
	}
}
