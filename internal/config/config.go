package config

import "os"

type Config struct {
	// Port the HTTP server listens on (default 8080). Set via PORT.
	Port string

	// DBPath is the sqlite database file (default spendwise.db).
	// Set via DB_PATH; ":memory:" gives an ephemeral store.
	DBPath string

	// Env is "dev" (default) or "prod". Controls log verbosity and
	// output format.
	Env string
}

func Load() Config {
	return Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DB_PATH", "spendwise.db"),
		Env:    getEnv("ENV", "dev"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
