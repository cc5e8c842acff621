package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	DBDriver       string
	DatabaseDSN    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	ResetDB        bool

	JWTSecret     string
	JWTExpiration time.Duration
	BcryptCost    int

	// AuthRequired puts the property and utility routes behind the token gate.
	AuthRequired bool
	// DeleteRole, when set, is the role required to call DELETE endpoints.
	DeleteRole string

	CORSOrigins []string
	LogLevel    string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", getEnv("PORT", "5000")),
		DBDriver:       driver,
		DatabaseDSN:    getEnv("DATABASE_DSN", defaultDSN(driver)),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ResetDB:        getEnvBool("RESET_DB", false),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		JWTExpiration:  getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		BcryptCost:     getEnvInt("BCRYPT_COST", 12),
		AuthRequired:   getEnvBool("AUTH_REQUIRED", false),
		DeleteRole:     os.Getenv("DELETE_ROLE"),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"*"}),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}

// defaultDSN assembles a DSN from the discrete DB_* variables.
func defaultDSN(driver string) string {
	host := getEnv("DB_HOST", "localhost")
	user := getEnv("DB_USER", "pms_user")
	pass := os.Getenv("DB_PASSWORD")
	name := getEnv("DB_NAME", "property_management")

	switch driver {
	case "postgres":
		port := getEnv("DB_PORT", "5432")
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, name)
	case "sqlite":
		return getEnv("DB_PATH", "property_management.db")
	default:
		port := getEnv("DB_PORT", "3306")
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC", user, pass, host, port, name)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

// ParseDuration accepts Go durations plus a whole-day suffix ("7d").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("parse duration %q: %w", s, err)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
