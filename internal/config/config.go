package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all server configuration
type Config struct {
	ServerPort    int
	TransportMode string
	LogLevel      string
	API           APIConfig
}

// APIConfig holds upstream budget API configuration
type APIConfig struct {
	BaseURL         string
	DefaultPageSize int
	LookupTimeout   time.Duration
	QueryTimeout    time.Duration
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		ServerPort:    getEnvInt("SERVER_PORT", 8080),
		TransportMode: getEnv("TRANSPORT_MODE", "http"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		API: APIConfig{
			BaseURL:         getEnv("BUDGETKEY_API_BASE", "https://next.obudget.org"),
			DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 50),
			LookupTimeout:   time.Duration(getEnvInt("LOOKUP_TIMEOUT_SECONDS", 30)) * time.Second,
			QueryTimeout:    time.Duration(getEnvInt("QUERY_TIMEOUT_SECONDS", 60)) * time.Second,
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
// when the variable is unset, not a number, or not positive
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
