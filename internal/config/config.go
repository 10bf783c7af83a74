package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"homeledger/internal/currency"
)

// Storage backends.
const (
	BackendCSV = "csv"
	BackendSQL = "sql"
)

// SQL drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Env  string
	Port string

	// Storage
	DataBackend      string
	DataDir          string
	TransactionsFile string
	AssetsFile       string

	// Database
	DBDriver   string
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Currency
	BaseCurrency string
	FXRates      map[string]decimal.Decimal

	// Uploads
	MaxUploadMB int64
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DataBackend:      strings.ToLower(getEnv("DATA_BACKEND", BackendCSV)),
		DataDir:          getEnv("DATA_DIR", "./data"),
		TransactionsFile: getEnv("TRANSACTIONS_FILE", "transactions.csv"),
		AssetsFile:       getEnv("ASSETS_FILE", "assets.csv"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		SQLitePath: getEnv("SQLITE_PATH", "./data/homeledger.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "homeledger"),
		DBPassword: getEnv("DB_PASSWORD", "homeledger"),
		DBName:     getEnv("DB_NAME", "homeledger"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		BaseCurrency: strings.ToUpper(getEnv("BASE_CURRENCY", "TWD")),
	}

	rates, err := currency.ParseRates(os.Getenv("FX_RATES"))
	if err != nil {
		return nil, fmt.Errorf("invalid FX_RATES: %w", err)
	}
	config.FXRates = rates

	maxStr := getEnv("MAX_UPLOAD_MB", "10")
	maxMB, err := strconv.ParseInt(maxStr, 10, 64)
	if err != nil || maxMB <= 0 {
		log.Printf("Warning: invalid MAX_UPLOAD_MB value '%s', falling back to 10\n", maxStr)
		maxMB = 10
	}
	config.MaxUploadMB = maxMB

	if err := config.Validate(); err != nil {
		return nil, err
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

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.DataBackend {
	case BackendCSV, BackendSQL:
	default:
		errs = append(errs, fmt.Errorf("DATA_BACKEND must be %q or %q, got %q", BackendCSV, BackendSQL, c.DataBackend))
	}
	if c.DataBackend == BackendSQL {
		switch c.DBDriver {
		case DriverSQLite:
			if c.SQLitePath == "" {
				errs = append(errs, errors.New("SQLITE_PATH must not be empty"))
			}
		case DriverPostgres:
			if c.DBHost == "" || c.DBName == "" {
				errs = append(errs, errors.New("DB_HOST and DB_NAME are required for postgres"))
			}
		default:
			errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver))
		}
	}
	if c.DataBackend == BackendCSV && (c.TransactionsFile == "" || c.AssetsFile == "") {
		errs = append(errs, errors.New("TRANSACTIONS_FILE and ASSETS_FILE must not be empty"))
	}
	if c.BaseCurrency == "" {
		errs = append(errs, errors.New("BASE_CURRENCY must not be empty"))
	}
	return errors.Join(errs...)
}

// TransactionsPath is the full path of the transactions CSV file.
func (c *Config) TransactionsPath() string {
	return resolve(c.DataDir, c.TransactionsFile)
}

// AssetsPath is the full path of the assets CSV file.
func (c *Config) AssetsPath() string {
	return resolve(c.DataDir, c.AssetsFile)
}

// PostgresURL is the connection URL used by golang-migrate.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// PostgresDSN is the key/value connection string used by gorm.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Converter builds the currency converter for the configured base and rates.
func (c *Config) Converter() *currency.Converter {
	return currency.NewConverter(c.BaseCurrency, c.FXRates)
}

func resolve(dir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
