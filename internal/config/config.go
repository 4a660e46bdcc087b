package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	DBDSN        string
	StationName  string
	PollInterval time.Duration
}

// Load reads configuration from the environment, with an optional .env file
// next to the binary. Missing keys fall back to workable defaults.
func Load() Config {
	_ = godotenv.Load() // a missing .env is fine

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "tillpoint.db" // shared sqlite file in the working directory
	}
	station := os.Getenv("STATION_NAME")
	if station == "" {
		host, _ := os.Hostname()
		station = host
	}
	poll := 5 * time.Second
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Printf("[config] ignoring bad POLL_INTERVAL=%q", v)
		} else {
			poll = d
		}
	}

	return Config{Env: env, DBDSN: dsn, StationName: station, PollInterval: poll}
}
