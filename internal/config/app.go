package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	Backend BackendConfig
	Storage StorageConfig
	Debug   bool
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	// Dir каталог для файлового хранилища сессий и результатов.
	// Пустое значение означает хранение только в памяти.
	Dir        string
	ResultsDir string
}

func LoadAppConfig() *AppConfig {
	return &AppConfig{
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_URL", ""),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Dir:        getEnv("SESSION_DIR", ""),
			ResultsDir: getEnv("RESULTS_DIR", "results"),
		},
		Debug: getEnvAsBool("PROCTOR_DEBUG", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
