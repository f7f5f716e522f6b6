package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
	"github.com/SscSPs/ledgerbook/internal/utils/accounting"
)

const (
	defaultPort           = "8080"
	defaultJWTSecret      = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer      = "ledgerbook"
	defaultMigrationsPath = "migrations"
	defaultLockExpiry     = 10 * time.Second
	defaultRateLimit      = "300-M"
	defaultCurrency       = "VND"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	AuthEnabled bool
	JWTSecret   string
	JWTIssuer   string

	RedisURL   string
	LockExpiry time.Duration

	RateLimit          string
	CORSAllowedOrigins []string

	// Ledger policy
	Currency            string
	CurrencyScale       int32
	Tolerance           decimal.Decimal
	EquityPolicy        domain.EquityPolicy
	ChartOfAccountsPath string
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Invalid values are logged and replaced by their defaults.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", defaultPort)
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	viper.SetDefault("AUTH_ENABLED", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LOCK_EXPIRY", defaultLockExpiry.String())
	viper.SetDefault("RATE_LIMIT", defaultRateLimit)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("LEDGER_CURRENCY", defaultCurrency)
	viper.SetDefault("LEDGER_CURRENCY_SCALE", 0)
	viper.SetDefault("LEDGER_TOLERANCE", "0")
	viper.SetDefault("EQUITY_POLICY", string(domain.FoldUnclosedEarnings))
	viper.SetDefault("CHART_OF_ACCOUNTS_PATH", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory ledger store.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.AuthEnabled = viper.GetBool("AUTH_ENABLED")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		if cfg.AuthEnabled {
			log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
		}
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	lockExpiryStr := viper.GetString("LOCK_EXPIRY")
	lockExpiry, err := time.ParseDuration(lockExpiryStr)
	if err != nil || lockExpiry <= 0 {
		lockExpiry = defaultLockExpiry
		log.Printf("Warning: Invalid value for LOCK_EXPIRY ('%s'). Defaulting to %s.\n", lockExpiryStr, lockExpiry.String())
	}
	cfg.LockExpiry = lockExpiry

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if _, err := limiter.NewRateFromFormatted(cfg.RateLimit); err != nil {
		log.Printf("Warning: Invalid value for RATE_LIMIT ('%s'). Defaulting to %s.\n", cfg.RateLimit, defaultRateLimit)
		cfg.RateLimit = defaultRateLimit
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.Currency = strings.ToUpper(viper.GetString("LEDGER_CURRENCY"))
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}

	scale := viper.GetInt("LEDGER_CURRENCY_SCALE")
	if scale < 0 || scale > accounting.MaxScale {
		log.Printf("Warning: Invalid value for LEDGER_CURRENCY_SCALE (%d). Defaulting to 0.\n", scale)
		scale = 0
	}
	cfg.CurrencyScale = int32(scale)

	toleranceStr := viper.GetString("LEDGER_TOLERANCE")
	tolerance, err := decimal.NewFromString(toleranceStr)
	if err != nil || tolerance.IsNegative() {
		log.Printf("Warning: Invalid value for LEDGER_TOLERANCE ('%s'). Defaulting to 0.\n", toleranceStr)
		tolerance = decimal.Zero
	}
	cfg.Tolerance = tolerance

	cfg.EquityPolicy = domain.EquityPolicy(viper.GetString("EQUITY_POLICY"))
	if !cfg.EquityPolicy.Valid() {
		log.Printf("Warning: Invalid value for EQUITY_POLICY ('%s'). Defaulting to %s.\n", cfg.EquityPolicy, domain.FoldUnclosedEarnings)
		cfg.EquityPolicy = domain.FoldUnclosedEarnings
	}

	cfg.ChartOfAccountsPath = viper.GetString("CHART_OF_ACCOUNTS_PATH")

	return cfg, nil
}
