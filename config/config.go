package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/daveklee/calorieclimb.com/models"
	"github.com/daveklee/calorieclimb.com/services"
)

type Config struct {
	Port string

	DBDriver   string // postgres, sqlite or none
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	SQLitePath string

	JWTSecret string

	USDAAPIKey  string
	USDABaseURL string

	NarrativeAPIKey  string
	NarrativeBaseURL string
	NarrativeModel   string

	AWSRegion string

	SearchMode     models.SearchMode
	MaxCalories    int
	RemoteCooldown time.Duration
	BreakerRetry   time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		DBDriver:         getenv("DB_DRIVER", "none"),
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBPort:           getenv("DB_PORT", "5432"),
		SQLitePath:       getenv("SQLITE_PATH", "calorieclimb.db"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		USDAAPIKey:       os.Getenv("USDA_API_KEY"),
		USDABaseURL:      os.Getenv("USDA_BASE_URL"),
		NarrativeAPIKey:  os.Getenv("NARRATIVE_API_KEY"),
		NarrativeBaseURL: os.Getenv("NARRATIVE_BASE_URL"),
		NarrativeModel:   os.Getenv("NARRATIVE_MODEL"),
		AWSRegion:        os.Getenv("AWS_REGION"),
	}

	mode, err := models.ParseSearchMode(getenv("SEARCH_MODE", string(models.SearchModeGeneric)))
	if err != nil {
		return nil, fmt.Errorf("SEARCH_MODE: %w", err)
	}
	cfg.SearchMode = mode

	if cfg.MaxCalories, err = strconv.Atoi(getenv("MAX_CALORIES", strconv.Itoa(models.DefaultMaxCalories))); err != nil {
		return nil, fmt.Errorf("MAX_CALORIES: %w", err)
	}
	if cfg.MaxCalories < models.MinMaxCalories {
		return nil, fmt.Errorf("MAX_CALORIES must be at least %d", models.MinMaxCalories)
	}
	if cfg.RemoteCooldown, err = time.ParseDuration(getenv("REMOTE_COOLDOWN", services.DefaultRemoteCooldown.String())); err != nil {
		return nil, fmt.Errorf("REMOTE_COOLDOWN: %w", err)
	}
	if cfg.BreakerRetry, err = time.ParseDuration(getenv("BREAKER_RETRY", services.DefaultBreakerRetry.String())); err != nil {
		return nil, fmt.Errorf("BREAKER_RETRY: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the configured database and migrates the food archive. It
// returns (nil, nil) when DB_DRIVER is "none".
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "", "none":
		return nil, nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, errors.New("unknown DB_DRIVER " + strconv.Quote(cfg.DBDriver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.FoodRecord{}); err != nil {
		return nil, fmt.Errorf("AutoMigrate failed: %w", err)
	}
	return db, nil
}
