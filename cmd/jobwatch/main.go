package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"jobwatch/internal/config"
	"jobwatch/internal/notify"
	"jobwatch/internal/scraper"
	"jobwatch/internal/storage"
	"jobwatch/pkg/httpclient"
)

// requestTimeout bounds every outbound HTTP call; there is no overall run
// deadline.
const requestTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "config file path (overrides JOBWATCH_CONFIG)")
	dbPath := flag.String("db", "", "seen store path (overrides JOBWATCH_DB)")
	every := flag.Duration("every", 0, "rerun on this interval instead of exiting (e.g. 1h)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	settings := config.SettingsFromEnv()
	if *configPath != "" {
		settings.ConfigPath = *configPath
	}
	if *dbPath != "" {
		settings.DBPath = *dbPath
	}

	if err := run(settings, *every, logger); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(settings config.Settings, every time.Duration, logger *zap.Logger) error {
	cfg, err := config.Load(settings.ConfigPath, settings)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	store, err := openStore(settings)
	if err != nil {
		return err
	}
	defer store.Close()

	client := httpclient.New(settings.UserAgent, requestTimeout)
	watcher := scraper.New(store, notify.NewMailer(settings, cfg), client, logger)

	ctx := context.Background()
	if err := watcher.Run(ctx, cfg); err != nil {
		return err
	}
	if every <= 0 {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", every), func() {
		if err := watcher.Run(ctx, cfg); err != nil {
			logger.Error("run failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule runs: %w", err)
	}
	logger.Info("watching", zap.Duration("every", every))
	c.Run()
	return nil
}

func openStore(settings config.Settings) (storage.SeenStore, error) {
	switch settings.StoreBackend {
	case "supabase":
		return storage.NewSupabaseStore(settings.SupabaseURL, settings.SupabaseKey)
	default:
		return storage.OpenSQLite(settings.DBPath)
	}
}
