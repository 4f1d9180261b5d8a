package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Listing range, inclusive on both ends.
	StartPage int
	EndPage   int

	BaseURL            string
	ListingURLTemplate string
	CSVOutputPath      string

	// Navigation and wait bounds.
	NavTimeoutSec    int
	MarkerTimeoutSec int
	MaxNavAttempts   int
	MaxScrollSteps   int
	// MaxReviewPages caps review pagination per product; 0 means unbounded.
	MaxReviewPages int

	// Pacing between page interactions.
	PaceMinMs int
	PaceMaxMs int

	ChromeBin string
	Headless  bool
	Debug     bool

	// Optional Postgres mirror of the CSV sink.
	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		StartPage: getEnvInt("START_PAGE", 1),
		EndPage:   getEnvInt("END_PAGE", 102),

		BaseURL:            getEnv("BASE_URL", "https://www.daraz.com.bd/"),
		ListingURLTemplate: getEnv("LISTING_URL_TEMPLATE", "https://www.daraz.com.bd/all-products/?page=%d"),
		CSVOutputPath:      getEnv("CSV_OUTPUT_PATH", "./output/daraz_reviews.csv"),

		NavTimeoutSec:    getEnvInt("NAV_TIMEOUT_SEC", 90),
		MarkerTimeoutSec: getEnvInt("MARKER_TIMEOUT_SEC", 15),
		MaxNavAttempts:   getEnvInt("MAX_NAV_ATTEMPTS", 3),
		MaxScrollSteps:   getEnvInt("MAX_SCROLL_STEPS", 3),
		MaxReviewPages:   getEnvInt("MAX_REVIEW_PAGES", 0),

		PaceMinMs: getEnvInt("PACE_MIN_MS", 700),
		PaceMaxMs: getEnvInt("PACE_MAX_MS", 1800),

		ChromeBin: getEnv("CHROME_BIN", ""),
		Headless:  getEnvBool("HEADLESS", true),
		Debug:     getEnvBool("DEBUG", false),

		PostgresEnabled:  getEnvBool("PG_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "daraz_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// NavTimeout returns the page-load timeout as a duration.
func (c *Config) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutSec) * time.Second
}

// MarkerTimeout returns the structural-marker wait bound as a duration.
func (c *Config) MarkerTimeout() time.Duration {
	return time.Duration(c.MarkerTimeoutSec) * time.Second
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

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
