package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via env files or the environment.
type AppConfig struct {
	AppPort     string
	JWTSecret   string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Glossary and check-in periods
	GlossaryPath         string
	WordLookback         int
	PeriodUTCOffsetHours int
	LeaderboardSize      int
	WordRetentionDays    int
	// Rate limiting (requests per minute)
	AuthRateLimitPerMinute int
	APIRateLimitPerMinute  int
	AllowedOrigins         []string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Redis for caching and token revocation
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
// Precedence: config/config.json -> defaults -> environment variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}
	if cfg.PeriodUTCOffsetHours < -12 || cfg.PeriodUTCOffsetHours > 14 {
		log.Fatalf("PERIOD_UTC_OFFSET_HOURS out of range: %d", cfg.PeriodUTCOffsetHours)
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// loadJSONConfig reads a flat JSON file into out if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	return dec.Decode(out)
}

func applyDefaults(c *AppConfig) {
	def := func(target *string, v string) {
		if *target == "" {
			*target = v
		}
	}
	defInt := func(target *int, v int) {
		if *target == 0 {
			*target = v
		}
	}

	def(&c.AppPort, "8080")
	def(&c.DBHost, "127.0.0.1")
	def(&c.DBPort, "3306")
	def(&c.DBUser, "mufradat")
	def(&c.DBName, "mufradat")
	def(&c.GlossaryPath, "glossary.json")
	defInt(&c.WordLookback, 10)
	defInt(&c.LeaderboardSize, 10)
	defInt(&c.WordRetentionDays, 90)
	defInt(&c.AuthRateLimitPerMinute, 5)
	defInt(&c.APIRateLimitPerMinute, 30)
	if c.PeriodUTCOffsetHours == 0 {
		// original service used CDT (UTC-5) for all period math
		c.PeriodUTCOffsetHours = -5
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	def(&c.GinMode, "release")
	def(&c.GinPath, "logs/gin.log")
	def(&c.RedisHost, "127.0.0.1")
	defInt(&c.RedisPort, 6379)
	def(&c.LogLevel, "info")
	def(&c.LogPath, "logs/app.log")
	defInt(&c.LogMaxSizeMB, 100)
	defInt(&c.LogMaxBackups, 3)
	defInt(&c.LogMaxAgeDays, 7)
}

func applyEnvOverrides(c *AppConfig) {
	setStr := func(target *string, key string) {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
	setInt := func(target *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*target = n
			}
		}
	}
	setBool := func(target *bool, key string) {
		if v := os.Getenv(key); v != "" {
			*target = v == "1" || strings.EqualFold(v, "true")
		}
	}

	setStr(&c.AppPort, "APP_PORT")
	setStr(&c.JWTSecret, "JWT_SECRET")
	setStr(&c.DatabaseURI, "DATABASE_URI")
	setStr(&c.DBHost, "DB_HOST")
	setStr(&c.DBPort, "DB_PORT")
	setStr(&c.DBUser, "DB_USER")
	setStr(&c.DBPassword, "DB_PASSWORD")
	setStr(&c.DBName, "DB_NAME")
	setStr(&c.GlossaryPath, "GLOSSARY_PATH")
	setInt(&c.WordLookback, "WORD_LOOKBACK")
	setInt(&c.PeriodUTCOffsetHours, "PERIOD_UTC_OFFSET_HOURS")
	setInt(&c.LeaderboardSize, "LEADERBOARD_SIZE")
	setInt(&c.WordRetentionDays, "WORD_RETENTION_DAYS")
	setInt(&c.AuthRateLimitPerMinute, "AUTH_RATE_LIMIT_PER_MINUTE")
	setInt(&c.APIRateLimitPerMinute, "API_RATE_LIMIT_PER_MINUTE")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		if len(origins) > 0 {
			c.AllowedOrigins = origins
		}
	}
	setStr(&c.GinMode, "GIN_MODE")
	setStr(&c.GinPath, "GIN_PATH")
	setStr(&c.RedisHost, "REDIS_HOST")
	setInt(&c.RedisPort, "REDIS_PORT")
	setInt(&c.RedisDB, "REDIS_DB")
	setStr(&c.RedisPassword, "REDIS_PASSWORD")
	setStr(&c.LogLevel, "LOG_LEVEL")
	setStr(&c.LogPath, "LOG_PATH")
	setInt(&c.LogMaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&c.LogMaxBackups, "LOG_MAX_BACKUPS")
	setInt(&c.LogMaxAgeDays, "LOG_MAX_AGE_DAYS")
	setBool(&c.LogCompress, "LOG_COMPRESS")
}
