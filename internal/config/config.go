package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Gemini          Gemini          `mapstructure:",squash"`
	PortfolioDigest PortfolioDigest `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN        string `mapstructure:"-"`
	Driver     string `mapstructure:"database_driver"`
	Password   string `mapstructure:"database_password"`
	URL        string `mapstructure:"database_url"`
	User       string `mapstructure:"database_user"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type Gemini struct {
	APIKey        string        `mapstructure:"gemini_api_key"`
	EstimateModel string        `mapstructure:"gemini_estimate_model"`
	AuditModel    string        `mapstructure:"gemini_audit_model"`
	InvoiceModel  string        `mapstructure:"gemini_invoice_model"`
	Timeout       time.Duration `mapstructure:"gemini_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type PortfolioDigest struct {
	CronSchedule string `mapstructure:"portfolio_digest_cron"`
	Enabled      bool   `mapstructure:"portfolio_digest_enabled"`
	Retention    int    `mapstructure:"portfolio_digest_retention"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_URL", "localhost:5432/ratecard?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("SQLITE_PATH", "data/ratecard.db")

	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_ESTIMATE_MODEL", "gemini-3-flash-preview")
	viper.SetDefault("GEMINI_AUDIT_MODEL", "gemini-3-pro-preview")
	viper.SetDefault("GEMINI_INVOICE_MODEL", "gemini-3-flash-preview")
	viper.SetDefault("GEMINI_TIMEOUT", "0s") // zero leaves deadlines to the caller

	viper.SetDefault("PORTFOLIO_DIGEST_CRON", "0 6 * * 1") // mondays, 6am
	viper.SetDefault("PORTFOLIO_DIGEST_ENABLED", false)
	viper.SetDefault("PORTFOLIO_DIGEST_RETENTION", 90)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("config: using variables loaded by godotenv (viper could not read .env): ", err)
	} else {
		logrus.Info("config: .env read by viper")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.Driver = strings.ToLower(strings.TrimSpace(config.Database.Driver))
	switch config.Database.Driver {
	case DriverPostgres:
		config.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			config.Database.Driver,
			config.Database.User,
			config.Database.Password,
			config.Database.URL,
		)
	case DriverSQLite:
		config.Database.DSN = config.Database.SQLitePath
	case DriverMemory:
	default:
		return nil, fmt.Errorf("config: unsupported database driver %q", config.Database.Driver)
	}

	if config.PortfolioDigest.Retention <= 0 {
		config.PortfolioDigest.Retention = 90
	}

	return config, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("config: trying .env at ", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("config: .env loaded from ", location)
			return
		}
	}

	logrus.Warn("config: no .env file found in known locations")
}
