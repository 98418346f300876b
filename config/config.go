package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Capacity policies understood by the registry.
const (
	CapacityInformational = "informational"
	CapacityEnforce       = "enforce"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config represents the overall application configuration.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Store    StoreConfig    `yaml:"store"`
	Cache    CacheConfig    `yaml:"cache"`
}

// RegistryConfig holds the hostel capacity settings.
type RegistryConfig struct {
	TotalRooms     int    `yaml:"total_rooms" env:"HOSTEL_TOTAL_ROOMS"`
	CapacityPolicy string `yaml:"capacity_policy" env:"HOSTEL_CAPACITY_POLICY"`
}

// StoreConfig selects and configures the backing store.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"HOSTEL_STORE_DRIVER"`
	DSN    string `yaml:"dsn" env:"HOSTEL_STORE_DSN"`
	LogSQL bool   `yaml:"log_sql" env:"HOSTEL_STORE_LOG_SQL"`
}

// CacheConfig holds the read cache settings.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" env:"HOSTEL_CACHE_ENABLED"`
	TTLSeconds      int           `yaml:"ttl_seconds" env:"HOSTEL_CACHE_TTL_SECONDS"`
	CleanupSeconds  int           `yaml:"cleanup_seconds" env:"HOSTEL_CACHE_CLEANUP_SECONDS"`
	TTL             time.Duration `yaml:"-"` // Derived from TTLSeconds
	CleanupInterval time.Duration `yaml:"-"` // Derived from CleanupSeconds
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			TotalRooms:     10,
			CapacityPolicy: CapacityInformational,
		},
		Store: StoreConfig{
			Driver: DriverMemory,
			DSN:    "file::memory:?cache=shared",
		},
		Cache: CacheConfig{
			TTLSeconds:      300,
			CleanupSeconds:  600,
			TTL:             300 * time.Second,
			CleanupInterval: 600 * time.Second,
		},
	}
}

// Load reads the configuration from the given path. An empty path yields the
// defaults. Environment variables override values from the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finalize fills derived fields and rejects values the registry cannot use.
func (cfg *Config) finalize() error {
	if cfg.Registry.TotalRooms < 0 {
		return fmt.Errorf("registry.total_rooms must not be negative, got %d", cfg.Registry.TotalRooms)
	}

	switch cfg.Registry.CapacityPolicy {
	case "":
		cfg.Registry.CapacityPolicy = CapacityInformational
	case CapacityInformational, CapacityEnforce:
	default:
		return fmt.Errorf("unknown registry.capacity_policy %q", cfg.Registry.CapacityPolicy)
	}

	switch cfg.Store.Driver {
	case "":
		cfg.Store.Driver = DriverMemory
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown store.driver %q", cfg.Store.Driver)
	}

	if cfg.Cache.TTLSeconds <= 0 {
		log.Printf("cache.ttl_seconds is not set or invalid; defaulting to 300")
		cfg.Cache.TTLSeconds = 300
	}
	if cfg.Cache.CleanupSeconds <= 0 {
		cfg.Cache.CleanupSeconds = 2 * cfg.Cache.TTLSeconds
	}
	cfg.Cache.TTL = time.Duration(cfg.Cache.TTLSeconds) * time.Second
	cfg.Cache.CleanupInterval = time.Duration(cfg.Cache.CleanupSeconds) * time.Second

	return nil
}
