package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the application.
type Config struct {
	DBPath       string
	JWTSecret    string
	GeminiAPIKey string
	Port         string

	// Rate limiting for the meal generation endpoint.
	GenerateLimit  int
	GenerateWindow time.Duration

	// Telegram Config (required only for the bot binary)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	TelegramListOwner      string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/meal-planner.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// 10 generations per hour per user unless overridden.
	generateLimit := 10
	if v := os.Getenv("GENERATE_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid GENERATE_RATE_LIMIT %q", v)
		}
		generateLimit = n
	}
	generateWindow := time.Hour
	if v := os.Getenv("GENERATE_RATE_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid GENERATE_RATE_WINDOW %q", v)
		}
		generateWindow = d
	}

	// Telegram config is optional here; the bot binary validates what it
	// needs at startup.
	var allowedIDs []int64
	if v := os.Getenv("TELEGRAM_ALLOW_USER_IDS"); v != "" {
		for _, part := range strings.Split(v, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_IDS entry %q", part)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	return &Config{
		DBPath:                 dbPath,
		JWTSecret:              jwtSecret,
		GeminiAPIKey:           geminiAPIKey,
		Port:                   port,
		GenerateLimit:          generateLimit,
		GenerateWindow:         generateWindow,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
		TelegramListOwner:      os.Getenv("TELEGRAM_LIST_OWNER"),
	}, nil
}
