package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/patrickmn/go-cache"
	"github.com/spf13/cobra"

	"hostel-registry/config"
	"hostel-registry/internal/db"
	"hostel-registry/internal/registry"
	"hostel-registry/internal/store"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hostel",
	Short: "Hostel resident registry",
	Long: `hostel keeps track of which resident occupies which room and who is
waiting for a room.

All state lives in memory for the lifetime of the process.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetPrefix("hostel ")
		log.SetFlags(log.LstdFlags)
		if verbose {
			log.SetOutput(cmd.ErrOrStderr())
		} else {
			log.SetOutput(io.Discard)
		}
	},
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $CONFIG_PATH, else built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log registry and database activity to stderr")
}

// loadConfig resolves the config path from the flag or CONFIG_PATH.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from %q: %w", path, err)
	}
	if path != "" {
		log.Printf("configuration loaded successfully from %s", path)
	}
	return cfg, nil
}

// buildRegistry wires the configured store and cache under a Registry. The
// returned function releases the database, if any.
func buildRegistry(cfg *config.Config) (*registry.Registry, func(), error) {
	var (
		s       store.Store
		cleanup = func() {}
	)

	switch cfg.Store.Driver {
	case config.DriverSQLite:
		gormDB, err := db.Init(&cfg.Store)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { sqlDB.Close() }
		s = store.NewGormStore(gormDB)
		log.Println("sqlite store initialized")
	default:
		s = store.NewMemoryStore()
		log.Println("memory store initialized")
	}

	if cfg.Cache.Enabled {
		s = store.NewCachedStore(s, cache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval))
		log.Printf("read cache enabled (ttl %s)", cfg.Cache.TTL)
	}

	return registry.New(&cfg.Registry, s), cleanup, nil
}
