package infra

import (
	"os"
	"strconv"
)

const defaultPhotoMaxBytes = 10 << 20 // 10 MiB

// Config is the env-backed runtime configuration. The seed admin credentials
// and the photo policy live here rather than in code; the photo ceiling
// differs between deployments, so it is a knob, not a constant.
type Config struct {
	Port          string
	AdminEmail    string
	AdminPassword string
	AdminName     string
	PhotoRequired bool
	PhotoMaxBytes int64
}

func LoadConfig() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		PhotoRequired: getEnvBool("PHOTO_REQUIRED", false),
		PhotoMaxBytes: getEnvInt64("PHOTO_MAX_BYTES", defaultPhotoMaxBytes),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
