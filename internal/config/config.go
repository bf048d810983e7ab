package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// UpdatePolicy selects how a transaction update is reconciled against its
// account balance.
type UpdatePolicy string

const (
	// UpdatePolicyInverseOfNew applies the inverse of the incoming effect to
	// the current balance and ignores the previously stored values. Existing
	// balances were produced by this rule.
	UpdatePolicyInverseOfNew UpdatePolicy = "inverse-of-new"
	// UpdatePolicyReapply reverses the stored effect and applies the new one.
	UpdatePolicyReapply UpdatePolicy = "reapply"
)

// Config holds application configuration
type Config struct {
	// Server
	Port            string
	Env             string
	ShutdownTimeout time.Duration

	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	SQLitePath     string
	MigrationsPath string

	// Auth
	AuthRequired     bool
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Reconciliation
	UpdatePolicy UpdatePolicy
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBDriver:       getEnv("DB_DRIVER", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "guit"),
		DBPassword:     getEnv("DB_PASSWORD", "guit"),
		DBName:         getEnv("DB_NAME", "guit"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		SQLitePath:     getEnv("SQLITE_PATH", "guit.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
	}

	config.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT", 15*time.Second)
	config.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", 24*time.Hour)
	config.AuthRequired = getBool("AUTH_REQUIRED", false)

	switch config.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", config.DBDriver)
	}

	policy := UpdatePolicy(getEnv("RECONCILE_UPDATE_POLICY", string(UpdatePolicyInverseOfNew)))
	switch policy {
	case UpdatePolicyInverseOfNew, UpdatePolicyReapply:
		config.UpdatePolicy = policy
	default:
		return nil, fmt.Errorf("unsupported RECONCILE_UPDATE_POLICY %q", policy)
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getBool(key string, defaultValue bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %t\n", key, raw, defaultValue)
		return defaultValue
	}
	return b
}
