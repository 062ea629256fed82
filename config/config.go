package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DBPath        string
	Persist       bool
	SeedSample    bool
	Workers       int
	QueueSize     int
	LogLevel      string
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return nil, ErrNoToken{}
	}

	cfg := &Config{
		TelegramToken: token,
		DBPath:        getEnvOrDefault("DB_PATH", "payroll.db"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.Persist, err = getBool("PERSIST", true); err != nil {
		return nil, err
	}
	if cfg.SeedSample, err = getBool("SEED_SAMPLE", true); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getInt("WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.QueueSize, err = getInt("QUEUE_SIZE", 32); err != nil {
		return nil, err
	}
	return cfg, nil
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN is not set"
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, value)
	}
	return b, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: %q is not a non-negative integer", key, value)
	}
	return n, nil
}
