package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DBUrl         string
	JWTSecret     string
	AllowedOrigin string
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// Packing correction factors
	WeightFactor float64
	SizeFactor   float64
	// Volumetric divisor (carrier-agnostic, cm^3 per kg)
	VolumetricDivisor float64
	// Fixed local->USD exchange rate (units of local currency per USD).
	// Overridden when a live provider is plugged in.
	ExchangeRateUSD float64
	LocalCurrency   string
	// Ranking
	MaxOptions int
	// Timeouts
	RuleResolveTimeout time.Duration
	AuditWriteTimeout  time.Duration
	// Cache
	CacheSurchargeTTL time.Duration
	CacheCarrierTTL   time.Duration
	// Audit archive (R2/S3), optional
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	R2UploadTimeout   time.Duration
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		// In docker/prod envs .env might not exist; system env vars rule.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBUrl:         getEnv("DB_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 50),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 10),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		// Packing defaults: +5% weight, +10% per dimension
		WeightFactor:      getFloatEnv("WEIGHT_FACTOR", 1.05),
		SizeFactor:        getFloatEnv("SIZE_FACTOR", 1.10),
		VolumetricDivisor: getFloatEnv("VOLUMETRIC_DIVISOR", 5000),

		ExchangeRateUSD: getFloatEnv("EXCHANGE_RATE_USD", 110.0),
		LocalCurrency:   getEnv("LOCAL_CURRENCY", "BDT"),

		MaxOptions: getIntEnv("MAX_OPTIONS", 5),

		RuleResolveTimeout: getDurationEnv("RULE_RESOLVE_TIMEOUT", 5*time.Second),
		AuditWriteTimeout:  getDurationEnv("AUDIT_WRITE_TIMEOUT", 300*time.Millisecond),

		CacheSurchargeTTL: getDurationEnv("CACHE_SURCHARGE_TTL", 10*time.Minute),
		CacheCarrierTTL:   getDurationEnv("CACHE_CARRIER_TTL", 30*time.Minute),

		// R2/S3 audit archive
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		R2UploadTimeout:   getDurationEnv("R2_UPLOAD_TIMEOUT", 10*time.Second),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.DBUrl == "" {
		log.Fatal("CRITICAL: DB_DSN environment variable is required")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	if c.WeightFactor < 1 || c.SizeFactor < 1 {
		log.Fatal("CRITICAL: packing factors must be >= 1")
	}
	if c.VolumetricDivisor <= 0 {
		log.Fatal("CRITICAL: VOLUMETRIC_DIVISOR must be positive")
	}
	if c.ExchangeRateUSD <= 0 {
		log.Fatal("CRITICAL: EXCHANGE_RATE_USD must be positive")
	}
}

// ArchiveEnabled reports whether the optional R2/S3 audit archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2BucketName != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}
