package config

import (
	"log"
	"os"
)

const (
	defaultDBPath        = "./printcost.db"
	defaultHistoryDBPath = "./history.db"
	defaultPort          = "8080"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port           string
	DBPath         string // SQLite material catalog
	HistoryDBPath  string // bbolt saved-calculation store
	GeminiAPIKey   string // empty disables the deep-scan escalation
	WatchDir       string // empty disables the drop-folder watcher
	CurrenciesPath string // empty uses the built-in currency table
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Port:           os.Getenv("PORT"),
		DBPath:         os.Getenv("DB_PATH"),
		HistoryDBPath:  os.Getenv("HISTORY_DB_PATH"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		WatchDir:       os.Getenv("WATCH_DIR"),
		CurrenciesPath: os.Getenv("CURRENCIES_PATH"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.HistoryDBPath == "" {
		cfg.HistoryDBPath = defaultHistoryDBPath
	}

	if cfg.GeminiAPIKey == "" {
		log.Print("warning: GEMINI_API_KEY is not set, deep-scan fallback disabled")
	}

	return cfg
}
