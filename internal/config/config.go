package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr          = ":8080"
	defaultDatabaseURL   = "foodgram.db"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTTTL        = "24h"
	defaultShortLinkBase = "http://localhost:8080/s/"
	defaultRecipePageURL = "http://localhost:8080/recipes/"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	// ShortLinkBase — префикс, из которого собирается абсолютная
	// короткая ссылка: ShortLinkBase + token.
	ShortLinkBase string
	// RecipePageURL — канонический адрес страницы рецепта,
	// куда ведёт redirect короткой ссылки: RecipePageURL + id + "/".
	RecipePageURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("ADDR", defaultAddr),
		DatabaseURL:   getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		ShortLinkBase: getEnv("SHORT_LINK_BASE", defaultShortLinkBase),
		RecipePageURL: getEnv("RECIPE_PAGE_URL", defaultRecipePageURL),
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", defaultJWTTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	if !strings.HasSuffix(cfg.ShortLinkBase, "/") {
		cfg.ShortLinkBase += "/"
	}
	if !strings.HasSuffix(cfg.RecipePageURL, "/") {
		cfg.RecipePageURL += "/"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
