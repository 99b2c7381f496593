package config

import "os"

// GetEnv reads an environment variable, empty string when unset. The .env
// file is loaded once in main via godotenv.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOr reads an environment variable with a fallback default.
func GetEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
