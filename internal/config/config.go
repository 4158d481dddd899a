package config

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// AdminConfig holds the startup-seed admin credentials. The password is
// hashed before it reaches storage.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

type Config struct {
	DBURL       string
	Port        string
	Environment string
	JWT         JWTConfig
	Admin       AdminConfig
	CorsConfig  cors.Options

	// EnforceMutationVisibility makes update/status/delete apply the same
	// admin-task visibility check as the read path. Off by default to match
	// the historical behavior where mutations only require authentication.
	EnforceMutationVisibility bool
}

// Load reads .env (if present) and the environment, and returns the full
// configuration. Callers pass the result into constructors explicitly; there
// is no package-level config state.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DBURL:       getEnv("DB_URL", ""),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "not-so-secret-now-is-it?"),
			Issuer:   getEnv("JWT_ISSUER", "taskboard-server"),
			Audience: getEnv("JWT_AUDIENCE", "taskboard-client"),
			TTL:      7 * 24 * time.Hour,
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Email:    getEnv("ADMIN_EMAIL", "admin@example.com"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		CorsConfig:                CorsConfig(),
		EnforceMutationVisibility: getEnv("ENFORCE_MUTATION_VISIBILITY", "") == "true",
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
