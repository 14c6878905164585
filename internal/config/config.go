package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/leave-request-manager/internal/constants"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBPath           string
	SessionStore     string
	RedisHost        string
	RedisPort        string
	SessionSecret    string
	GinMode          string
	Port             string
	MaxLeaveDays     int
	SeedDefaultUsers bool
	LoginRateLimit   int
	LoginRateWindow  time.Duration
	BcryptCost       int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: failed to read .env: %v", err)
	}

	return &Config{
		DBDriver:         getEnv("DB_DRIVER", "sqlite"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "3306"),
		DBUser:           getEnv("DB_USER", "leaveuser"),
		DBPassword:       getEnv("DB_PASSWORD", "leavepassword"),
		DBName:           getEnv("DB_NAME", "leave_requests"),
		DBPath:           getEnv("DB_PATH", "leave_requests.db"),
		SessionStore:     getEnv("SESSION_STORE", "cookie"),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		SessionSecret:    getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		Port:             getEnv("PORT", "8080"),
		MaxLeaveDays:     getEnvInt("LEAVE_MAX_DAYS", constants.DefaultMaxLeaveDays),
		SeedDefaultUsers: getEnvBool("SEED_DEFAULT_USERS", true),
		LoginRateLimit:   getEnvInt("LOGIN_RATE_LIMIT", constants.DefaultLoginRateLimit),
		LoginRateWindow:  getEnvDuration("LOGIN_RATE_WINDOW", constants.DefaultLoginRateWindow),
		BcryptCost:       getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

// RedisAddr returns the host:port pair used by the session store and the login limiter.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
