package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds all process-wide settings. It is built once at startup and
// passed by reference to every component that needs it.
type Config struct {
	Port          string
	AdminPassword string
	WhatsAppPhone string
	DeliveryFee   float64
	DataDir       string

	// bcrypt hash of AdminPassword, computed once at load time so the login
	// path never touches the plaintext directly.
	AdminPasswordHash []byte
}

// Load reads configuration from the environment. Defaults mirror a local
// development setup.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "3001"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		WhatsAppPhone: getEnv("WHATSAPP_PHONE", "971561510897"),
		DataDir:       getEnv("DATA_DIR", "data"),
	}

	feeStr := getEnv("DELIVERY_FEE", "0")
	fee, err := strconv.ParseFloat(feeStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_FEE %q: %w", feeStr, err)
	}
	if fee < 0 {
		return nil, fmt.Errorf("DELIVERY_FEE must be non-negative, got %s", feeStr)
	}
	cfg.DeliveryFee = fee

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}
	cfg.AdminPasswordHash = hash

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	return cfg, nil
}

// ItemsPath is the catalog document location inside the data directory.
func (c *Config) ItemsPath() string {
	return filepath.Join(c.DataDir, "items.json")
}

// InitDB opens the orders database. SQLite is the default; set
// DB_DRIVER=mysql together with DB_DSN to use MySQL instead.
func InitDB(cfg *Config) (*gorm.DB, error) {
	driver := getEnv("DB_DRIVER", "sqlite")

	switch driver {
	case "sqlite":
		dbPath := filepath.Join(cfg.DataDir, "orders.db")
		return gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	case "mysql":
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			return nil, fmt.Errorf("DB_DSN is required when DB_DRIVER=mysql")
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
