package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var loaded bool

// Config reads a key from .env, falling back to process environment
func Config(key string) string {
	if !loaded {
		if err := godotenv.Load(".env"); err != nil {
			logrus.Debugf("no .env file found, using process environment: %v", err)
		}
		loaded = true
	}
	return os.Getenv(key)
}

// ConfigDefault reads a key and returns fallback when unset
func ConfigDefault(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}
