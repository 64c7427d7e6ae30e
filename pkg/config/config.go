package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	AppEnv       string
	IsProduction bool

	Port      string
	JWTSecret string

	// Datastore: MySQL when MYSQL_DSN is set, otherwise a local sqlite file.
	MySQLDSN   string
	SQLitePath string

	// ARASAAC symbol search
	ArasaacBaseURL  string
	ArasaacImageURL string
	SearchTimeout   int // seconds, per external search call
	MaxPictograms   int

	// runtime tunables
	RateLimitWindowSeconds int
	RateLimitCapacity      int
	PictoCacheTTLSeconds   int
	PictoCacheMaxItems     int
)

func init() {
	AppEnv = os.Getenv("APP_ENV")
	IsProduction = AppEnv == "production"

	// .env is a developer convenience; the host environment wins in production
	if !IsProduction {
		_ = godotenv.Load()
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "3000"
	}

	JWTSecret = os.Getenv("JWT_SECRET")
	if IsProduction && JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	MySQLDSN = os.Getenv("MYSQL_DSN")
	SQLitePath = os.Getenv("SQLITE_PATH")
	if SQLitePath == "" {
		SQLitePath = "app.db"
	}

	ArasaacBaseURL = os.Getenv("ARASAAC_BASE_URL")
	if ArasaacBaseURL == "" {
		ArasaacBaseURL = "https://api.arasaac.org/api"
	}
	ArasaacImageURL = os.Getenv("ARASAAC_IMAGE_URL")
	if ArasaacImageURL == "" {
		ArasaacImageURL = "https://static.arasaac.org/pictograms"
	}

	SearchTimeout = atoiOr(os.Getenv("SEARCH_TIMEOUT_SECONDS"), 8)
	MaxPictograms = atoiOr(os.Getenv("MAX_PICTOGRAMS"), 6)

	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 20)
	PictoCacheTTLSeconds = atoiOr(os.Getenv("PICTO_CACHE_TTL_SECONDS"), 600)
	PictoCacheMaxItems = atoiOr(os.Getenv("PICTO_CACHE_MAX_ITEMS"), 500)

	log.Printf("[config] AppEnv=%s IsProduction=%v", AppEnv, IsProduction)
	log.Printf("[config] arasaac base=%s timeout=%ds maxPictograms=%d",
		ArasaacBaseURL, SearchTimeout, MaxPictograms)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
