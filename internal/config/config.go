package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	Port        string
	Database    DatabaseConfig
	JWT         JWTConfig
	Cookie      CookieConfig
	RiskCentral RiskCentralConfig
	Evaluation  EvaluationConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// RiskCentralConfig holds the external risk central settings. Adapter
// "http" calls the configured URL; "local" evaluates in-process and is
// the development default.
type RiskCentralConfig struct {
	Adapter        string
	URL            string
	TimeoutSeconds int
}

// EvaluationConfig selects the workflow variant: "auto" finalizes the
// application during evaluation, "advisory" leaves the decision to an
// analyst.
type EvaluationConfig struct {
	Mode string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// .env is optional; production relies on real environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	evaluationMode := strings.TrimSpace(getEnv("EVALUATION_MODE", "advisory"))
	if evaluationMode != "auto" && evaluationMode != "advisory" {
		return nil, fmt.Errorf("invalid EVALUATION_MODE: '%s' (must be 'auto' or 'advisory')", evaluationMode)
	}

	riskAdapter := strings.TrimSpace(getEnv("RISK_CENTRAL_ADAPTER", "local"))
	if riskAdapter != "http" && riskAdapter != "local" {
		return nil, fmt.Errorf("invalid RISK_CENTRAL_ADAPTER: '%s' (must be 'http' or 'local')", riskAdapter)
	}

	config := &Config{
		AppMode:     appMode,
		Port:        getEnv("PORT", "3000"),
		Database:    loadDatabaseConfig(appMode),
		JWT:         loadJWTConfig(appMode),
		Cookie:      loadCookieConfig(appMode),
		RiskCentral: loadRiskCentralConfig(riskAdapter),
		Evaluation:  EvaluationConfig{Mode: evaluationMode},
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, EVALUATION: %s]", appMode, evaluationMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "coopcredit"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadRiskCentralConfig loads the risk central settings
func loadRiskCentralConfig(adapter string) RiskCentralConfig {
	timeout, _ := strconv.Atoi(getEnv("RISK_CENTRAL_TIMEOUT_SECONDS", "5"))

	return RiskCentralConfig{
		Adapter:        adapter,
		URL:            getEnv("RISK_CENTRAL_URL", "http://localhost:3100"),
		TimeoutSeconds: timeout,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://credit.coopcredit.example.com"
	}
	return origins
}
