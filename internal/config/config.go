package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort               = "8080"
	DefaultReminderCron       = "0 9 * * *"
	DefaultReminderDaysBefore = 2
	minSecretKeyLength        = 32
)

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is not set")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses a placeholder value")
	ErrSecretKeyTooShort    = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
)

var insecureSecretKeys = map[string]bool{
	"change_me_in_production":                    true,
	"replace_with_at_least_32_random_characters": true,
	"secret":                                     true,
}

type Config struct {
	AppEnv             string
	LogLevel           string
	DBPath             string
	Port               string
	Location           *time.Location
	CookieSecure       bool
	TelegramBotToken   string
	TelegramChatID     int64
	TelegramAPIURL     string
	ReminderCron       string
	ReminderDaysBefore int
}

// Load reads the environment, after merging a .env file when one exists.
// Existing variables win over .env entries. SECRET_KEY is resolved separately
// because only the server needs it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := ResolvePort()
	if err != nil {
		return nil, err
	}

	cookieSecure, err := parseBool("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}

	chatID, err := parseInt64("TELEGRAM_CHAT_ID")
	if err != nil {
		return nil, err
	}

	daysBefore, err := parseNonNegativeInt("REMINDER_DAYS_BEFORE", DefaultReminderDaysBefore)
	if err != nil {
		return nil, err
	}

	return &Config{
		AppEnv:             strings.ToLower(getEnv("APP_ENV", "development")),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DBPath:             getEnv("DB_PATH", filepath.Join("data", "mahwari.db")),
		Port:               port,
		Location:           LoadLocation(getEnv("TZ", "UTC")),
		CookieSecure:       cookieSecure,
		TelegramBotToken:   strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:     chatID,
		TelegramAPIURL:     strings.TrimSpace(os.Getenv("TELEGRAM_API_URL")),
		ReminderCron:       getEnv("REMINDER_CRON", DefaultReminderCron),
		ReminderDaysBefore: daysBefore,
	}, nil
}

// RemindersEnabled is true when both Telegram credentials are present.
func (cfg *Config) RemindersEnabled() bool {
	return cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0
}

func ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if insecureSecretKeys[strings.ToLower(secret)] {
		return "", ErrSecretKeyPlaceholder
	}
	if len(secret) < minSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

func ResolvePort() (string, error) {
	raw := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("invalid PORT %q: %w", raw, err)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q: must be between 1 and 65535", raw)
	}
	return strconv.Itoa(port), nil
}

// LoadLocation falls back to UTC for unknown zone names.
func LoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func parseBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}

func parseInt64(key string) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func parseNonNegativeInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, raw)
	}
	return value, nil
}
