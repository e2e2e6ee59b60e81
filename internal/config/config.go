package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	TrustedProxies []string

	// Plan generation service. An empty key disables the service path and
	// every plan comes from the deterministic fallback.
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	OpenAITimeout time.Duration

	// Reminder job. An empty telegram token disables it.
	TelegramToken   string
	TelegramChatID  int64
	ReminderTime    string
	ReminderHorizon time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		DbHost:         getEnv("MYSQL_HOST", "db"),
		DbPort:         getEnv("MYSQL_PORT", "3306"),
		DbUser:         getEnv("MYSQL_USER", "studyplanner"),
		DbPassword:     getEnv("MYSQL_PASSWORD", "studyplanner"),
		DbName:         getEnv("MYSQL_DATABASE", "studyplanner"),
		DbParams:       getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),

		OpenAIKey:     os.Getenv("OPENAI_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAITimeout: getDurationEnv("OPENAI_TIMEOUT_SECONDS", 30*time.Second),

		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID:  getInt64Env("TELEGRAM_CHAT_ID", 0),
		ReminderTime:    getEnv("REMINDER_TIME", "08:00"),
		ReminderHorizon: getDurationEnv("REMINDER_HORIZON_HOURS", 72*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

// getDurationEnv reads a plain number and scales it by the unit embedded in
// the key name (seconds or hours).
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	if strings.HasSuffix(key, "_HOURS") {
		return time.Duration(value) * time.Hour
	}
	return time.Duration(value) * time.Second
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
