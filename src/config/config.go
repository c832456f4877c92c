package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port     string
	LogLevel string

	// CO-Economy-Bot upstream
	EconomyAPIURL  string
	EconomyAPIKey  string
	EconomyGuildID string
	EconomyTimeout time.Duration
	HealthCacheTTL time.Duration

	// Security settings
	JWTSecret     string
	SessionExpiry time.Duration

	// Discord OAuth settings
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURL  string

	// Frontend URL for reference (CORS, post-login redirects)
	FrontendBaseURL string

	// Development fallback identity, used when no session is present.
	// Leave empty in production.
	DevUserID string

	// Staff users (Discord IDs)
	AdminIDs []string
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	// 1. Try loading from the current directory (standard behavior)
	errEnv := godotenv.Load()

	// 2. If not found, try loading from the parent directory (common when running from /backend)
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	jwtSecret := getRequiredEnv("JWT_SECRET")

	frontendBaseURL := getEnv("APP_BASE_URL", "http://localhost:3000")
	apiBaseURL := getEnv("API_BASE_URL", "http://localhost:8080")
	discordRedirectURL := getEnv("DISCORD_REDIRECT_URL", apiBaseURL+"/api/auth/discord/callback")

	devUserID := getEnv("DEV_USER_ID", "")
	if devUserID != "" {
		log.Printf("WARNING: DEV_USER_ID is set (%s). Unauthenticated requests will be resolved to this identity. Do not use in production.", devUserID)
	}

	Cfg = &AppConfig{
		// Core
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Upstream
		EconomyAPIURL:  getEnv("ECONOMY_API_URL", "http://localhost:3320"),
		EconomyAPIKey:  getEnv("ECONOMY_API_KEY", "citizen-portal-key"),
		EconomyGuildID: getEnv("ECONOMY_GUILD_ID", ""),
		EconomyTimeout: getEnvAsDuration("ECONOMY_TIMEOUT", 5*time.Second),
		HealthCacheTTL: getEnvAsDuration("HEALTH_CACHE_TTL", 15*time.Second),

		// Security
		JWTSecret:     jwtSecret,
		SessionExpiry: getEnvAsDuration("SESSION_EXPIRY", 168*time.Hour), // 7 days

		// Discord OAuth
		DiscordClientID:     getEnv("DISCORD_CLIENT_ID", ""),
		DiscordClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
		DiscordRedirectURL:  discordRedirectURL,

		// URLs
		FrontendBaseURL: frontendBaseURL,

		// Development
		DevUserID: devUserID,

		// Staff
		AdminIDs: getAdminIDs("ADMIN_IDS"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, EconomyAPI=%s, FrontendURL=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.EconomyAPIURL, Cfg.FrontendBaseURL)
	log.Printf("Admin IDs loaded: %d", len(Cfg.AdminIDs))
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getRequiredEnv retrieves an environment variable or terminates the application if not set.
func getRequiredEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		log.Fatalf("FATAL: Required environment variable %s is not set or is empty. Application cannot start securely.", key)
	}
	return value
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// getAdminIDs retrieves and parses the comma-separated list of staff Discord IDs.
func getAdminIDs(key string) []string {
	idsStr := getEnv(key, "")
	if idsStr == "" {
		return []string{}
	}
	ids := strings.Split(idsStr, ",")
	for i, id := range ids {
		ids[i] = strings.TrimSpace(id)
	}
	return ids
}
