package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Addr string

	// MaxUploadBytes caps the size of one multipart upload.
	MaxUploadBytes int64
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("invalid value for env %s: %q", k, v)
	}
	return n
}

func Load() *Config {
	return &Config{
		Addr:           ":" + getEnv("PORT", "8080"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
	}
}
