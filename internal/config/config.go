package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port      string
	DBDriver  string // sqlite | postgres
	DBPath    string
	DBURL     string
	JWTSecret string

	AuthMode           string // jwt | remote
	AuthServiceURL     string
	ReviewsRequireAuth bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	DefaultPageSize int
	MaxPageSize     int
	ReviewRateLimit int // requests per minute per IP

	GinMode string
}

// Load 加载配置. A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBDriver:  strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:    getEnv("DB_PATH", "./data/spots.db"),
		DBURL:     os.Getenv("DATABASE_URL"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		AuthMode:           strings.ToLower(getEnv("AUTH_MODE", "jwt")),
		AuthServiceURL:     os.Getenv("AUTH_SERVICE_URL"),
		ReviewsRequireAuth: getBool("REVIEWS_REQUIRE_AUTH", false),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(getInt("CACHE_TTL_SECONDS", 60)) * time.Second,

		DefaultPageSize: getInt("DEFAULT_PAGE_SIZE", 50),
		MaxPageSize:     getInt("MAX_PAGE_SIZE", 100),
		ReviewRateLimit: getInt("REVIEW_RATE_LIMIT", 20),

		GinMode: os.Getenv("GIN_MODE"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt ignores unparsable and negative values
func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}
