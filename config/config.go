package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Thevenin-Jonathan/Health-Food-sub000/models"
)

type Config struct {
	DBPath   string
	Addr     string
	LogLevel string
}

// Load reads .env if present, then the environment. Defaults give a
// runnable local setup with no configuration at all.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DBPath:   "healthfood.db",
		Addr:     "127.0.0.1:8080",
		LogLevel: "info",
	}
	if v := os.Getenv("HF_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("HF_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("HF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

func NewLogger(cfg Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// Open opens the sqlite store, enables foreign keys and migrates the
// schema. The returned handle is the single persistence handle of the
// process; callers thread it through the service constructors.
func Open(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table of the data model. Also used by
// tests against in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Food{},
		&models.ComposedFood{},
		&models.ComposedFoodIngredient{},
		&models.MealCategory{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Week{},
		&models.Meal{},
		&models.MealIngredient{},
		&models.MealMultiplier{},
		&models.ShoppingChecked{},
		&models.UserProfile{},
	)
}
