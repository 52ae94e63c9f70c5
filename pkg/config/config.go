package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	BucketName       string
	CatalogFile      string
	Port             string
	ViewsDir         string
	PublicDir        string
	SecretKey        string
	Autoplay         bool
	AutoplayInterval time.Duration
	InitialSlide     int
	SessionTTL       time.Duration
	LogLevel         string
}

// ErrInvalidValue is returned when an environment variable cannot be parsed
var ErrInvalidValue = errors.New("invalid configuration value")

// LoadDotEnv loads a .env file when present. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		BucketName:  os.Getenv("BUCKET_NAME"),
		CatalogFile: os.Getenv("CATALOG_FILE"),
		Port:        getenv("PORT", "8080"),
		ViewsDir:    getenv("VIEWS_DIR", "./views"),
		PublicDir:   getenv("PUBLIC_DIR", "./public"),
		SecretKey:   os.Getenv("SECRET_KEY"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.Autoplay, err = parseBool("AUTOPLAY", false); err != nil {
		return nil, err
	}

	intervalMs, err := parseInt("AUTOPLAY_INTERVAL_MS", 5000)
	if err != nil {
		return nil, err
	}
	if intervalMs <= 0 {
		return nil, fmt.Errorf("%w: AUTOPLAY_INTERVAL_MS must be positive, got %d", ErrInvalidValue, intervalMs)
	}
	cfg.AutoplayInterval = time.Duration(intervalMs) * time.Millisecond

	if cfg.InitialSlide, err = parseInt("INITIAL_SLIDE", 0); err != nil {
		return nil, err
	}

	ttl := getenv("SESSION_TTL", "30m")
	if cfg.SessionTTL, err = time.ParseDuration(ttl); err != nil {
		return nil, fmt.Errorf("%w: SESSION_TTL=%q: %v", ErrInvalidValue, ttl, err)
	}

	return cfg, nil
}

// UsesBucket reports whether products come from Cloud Storage
func (c *Config) UsesBucket() bool {
	return c.BucketName != ""
}

// AdminPrefix returns the path the admin routes are mounted under, or "" when
// no SECRET_KEY is set and the admin routes stay unmounted
func (c *Config) AdminPrefix() string {
	if c.SecretKey == "" {
		return ""
	}
	return fmt.Sprintf("/%s/admin", c.SecretKey)
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Gallery URL: http://localhost:%s/\n", c.Port)
	fmt.Printf("API URL: http://localhost:%s/api/products\n", c.Port)
	if prefix := c.AdminPrefix(); prefix != "" {
		fmt.Printf("Admin URL: http://localhost:%s%s\n", c.Port, prefix)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return n, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return b, nil
}
