package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the static application configuration loaded once from
// environment variables. Runtime-mutable scan state lives in Settings.
type Config struct {
	BaseURL   string
	UserAgent string
	FetchMode string // "http" or "browser"

	RequestTimeout time.Duration
	RateLimitMs    int

	ListenAddr string

	DiscordToken   string
	DiscordChannel string

	CSVArchivePath string

	PostgresDSN string

	RulesPath string
	ScoreMode string // "score" or "estimate"
	LogLevel  string

	ChromeBin string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseURL:   getEnv("BASE_URL", "https://www.vinted.co.uk/catalog"),
		UserAgent: getEnv("USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		FetchMode: getEnv("FETCH_MODE", "http"),

		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 2000),

		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		DiscordToken:   getEnv("DISCORD_TOKEN", ""),
		DiscordChannel: getEnv("DISCORD_CHANNEL_ID", ""),

		CSVArchivePath: getEnv("CSV_ARCHIVE_PATH", ""),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		RulesPath: getEnv("RULES_PATH", ""),
		ScoreMode: getEnv("SCORE_MODE", "score"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		ChromeBin: getEnv("CHROME_BIN", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
