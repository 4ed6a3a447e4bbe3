package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carrega tudo de variáveis de ambiente (.env em dev via godotenv).
type Config struct {
	Port          string
	AllowedOrigin string

	// Backend hospedado (rows API + rpc + functions)
	BackendURL     string
	BackendAnonKey string

	// Cookies / sessão
	CartCookieName   string
	CartCookieSecret string
	CookieSecure     bool
	SessionSecret    string
	SessionTTL       time.Duration

	// Cache (opcional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Fallback de login do admin (tier 3)
	FallbackAdminUser string
	FallbackAdminHash string
}

func Load() (Config, error) {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "15"))
	if err != nil || cacheTTL < 1 {
		cacheTTL = 15
	}
	sessionTTL, err := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "480"))
	if err != nil || sessionTTL < 1 {
		sessionTTL = 480
	}

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		BackendURL:     strings.TrimRight(os.Getenv("BACKEND_URL"), "/"),
		BackendAnonKey: strings.TrimSpace(os.Getenv("BACKEND_ANON_KEY")),

		CartCookieName:   getEnv("CART_COOKIE_NAME", "sv_cart"),
		CartCookieSecret: os.Getenv("CART_COOKIE_SECRET"),
		CookieSecure:     getEnv("COOKIE_SECURE", "false") == "true",
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		SessionTTL:       time.Duration(sessionTTL) * time.Minute,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		CacheTTL:      time.Duration(cacheTTL) * time.Second,

		FallbackAdminUser: getEnv("FALLBACK_ADMIN_USER", "admin"),
		FallbackAdminHash: os.Getenv("FALLBACK_ADMIN_HASH"),
	}

	if cfg.BackendURL == "" {
		return Config{}, fmt.Errorf("BACKEND_URL is required")
	}
	if cfg.CartCookieSecret == "" {
		return Config{}, fmt.Errorf("CART_COOKIE_SECRET is required")
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func (c Config) Address() string { return ":" + c.Port }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
