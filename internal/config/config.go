package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken   string
	DBDSN           string
	Environment     string
	MigrationsDir   string
	PreviewFontPath string
}

// Load читает конфигурацию из .env файла и переменных окружения.
// Отсутствие .env файла не ошибка.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:           os.Getenv("DB_DSN"),
		Environment:     os.Getenv("ENV"),
		MigrationsDir:   os.Getenv("MIGRATIONS_DIR"),
		PreviewFontPath: os.Getenv("PREVIEW_FONT_PATH"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}
