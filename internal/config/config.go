// Package config
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Address           string
	ScrapeInterval    time.Duration
	GPUCacheTTL       time.Duration
	CapabilityRecheck time.Duration
	AllowedOrigins    []string
	LogLevel          string
	LogFormat         string
}

func Load() *Config {
	godotenv.Load()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8088"
	}

	scrape := 5 * time.Second
	if raw := os.Getenv("SCRAPE_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			scrape = parsed
		}
	}

	gpuTTL := 2 * time.Second
	if raw := os.Getenv("GPU_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			gpuTTL = parsed
		}
	}

	recheck := 60 * time.Second
	if raw := os.Getenv("CAPABILITY_RECHECK"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			recheck = parsed
		}
	}

	var origins []string
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return &Config{
		Address:           addr,
		ScrapeInterval:    scrape,
		GPUCacheTTL:       gpuTTL,
		CapabilityRecheck: recheck,
		AllowedOrigins:    origins,
		LogLevel:          logLevel,
		LogFormat:         logFormat,
	}
}
