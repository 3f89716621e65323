package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port               string
	DatabasePath       string
	LogLevel           string
	RulesPath          string
	AccountMappingPath string
	MaxUploadSizeBytes int64

	// Labels stamped on imported statements. Currency is only a label, no
	// conversion happens anywhere.
	DefaultInstitution string
	DefaultCurrency    string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760")
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "./galfin.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RulesPath:          getEnv("RULES_PATH", "config/categories_rules.csv"),
		AccountMappingPath: getEnv("ACCOUNT_MAPPING_PATH", "config/account_mapping.csv"),
		MaxUploadSizeBytes: maxUploadSizeBytes,
		DefaultInstitution: getEnv("DEFAULT_INSTITUTION", "ABN AMRO"),
		DefaultCurrency:    getEnv("DEFAULT_CURRENCY", "EUR"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, RulesPath=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.RulesPath)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}
