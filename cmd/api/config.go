package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"libraryapi/internal/index"

	"github.com/joho/godotenv"
)

type config struct {
	Addr       string
	UsersFile  string
	BooksFile  string
	IndexKind  index.Kind
	DBDSN      string
	DBTimeout  time.Duration
	JWTSecret  string
	StaffUser  string
	StaffHash  string
	CORS       []string
	RateRPS    float64
	RateBurst  int
	EnableHSTS bool
	MaxBody    int64
}

// loadEnvFiles reads .env and .env.local without overriding variables the
// runtime already set.
func loadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func loadConfig() (config, error) {
	cfg := config{
		Addr:       getEnv("APP_ADDR", ":8080"),
		UsersFile:  getEnv("USERS_FILE", "users.json"),
		BooksFile:  getEnv("BOOKS_FILE", "books.json"),
		DBDSN:      os.Getenv("DB_DSN"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		StaffUser:  getEnv("STAFF_USERNAME", "librarian"),
		StaffHash:  os.Getenv("STAFF_PASSWORD_HASH"),
		EnableHSTS: os.Getenv("ENABLE_HSTS") == "true",
		MaxBody:    1 << 20,
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("missing required environment variable: JWT_SECRET")
	}

	switch kind := index.Kind(strings.ToLower(getEnv("INDEX_KIND", string(index.KindBST)))); kind {
	case index.KindBST, index.KindBTree:
		cfg.IndexKind = kind
	default:
		return cfg, fmt.Errorf("INDEX_KIND must be %q or %q, got %q", index.KindBST, index.KindBTree, kind)
	}

	var err error
	if cfg.DBTimeout, err = time.ParseDuration(getEnv("DB_TIMEOUT", "3s")); err != nil {
		return cfg, fmt.Errorf("DB_TIMEOUT: %w", err)
	}
	if cfg.RateRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64); err != nil || cfg.RateRPS <= 0 {
		return cfg, errors.New("RATE_LIMIT_RPS must be a positive number")
	}
	if cfg.RateBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20")); err != nil || cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_LIMIT_BURST must be a positive integer")
	}

	for _, origin := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORS = append(cfg.CORS, origin)
		}
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
