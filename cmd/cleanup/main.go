// Command cleanup deletes expired conversion jobs and their files. Run it
// from cron, or with --interval to keep it running as a sidecar.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/cleanup"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/config"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/converter"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/database"
	"github.com/rishabhpundir/SK-DOCX-To-PPTX-Converter/internal/storage"
)

var (
	flagDays     int
	flagDryRun   bool
	flagInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete old conversion jobs and their associated files",
	Long: `Cleanup removes conversion jobs older than the retention window together
with their uploaded documents and generated presentations. The default
retention comes from CONVERSION_FILE_RETENTION_DAYS (1 day).`,
	RunE: run,
}

func init() {
	rootCmd.Flags().IntVar(&flagDays, "days", 0, "number of days to retain files (default: CONVERSION_FILE_RETENTION_DAYS)")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be deleted without actually deleting")
	rootCmd.Flags().DurationVar(&flagInterval, "interval", 0, "re-run on this interval instead of exiting (e.g. 1h)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	days := flagDays
	if days <= 0 {
		days = cfg.RetentionDays
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbClient.Close()

	backend, err := newStorageBackend(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	var cache cleanup.StatusCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cache = converter.NewRedisStatusCache(redisClient, 0)
	}

	svc := cleanup.NewService(dbClient, backend, cache, cmd.OutOrStdout())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := svc.Run(ctx, days, flagDryRun); err != nil {
		return err
	}

	if flagInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(flagInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown signal received, stopping cleanup")
			return nil
		case <-ticker.C:
			if _, err := svc.Run(ctx, days, flagDryRun); err != nil {
				log.Printf("Cleanup run failed: %v", err)
			}
		}
	}
}

func newStorageBackend(cfg *config.Config) (storage.Backend, error) {
	if cfg.StorageBackend == config.StorageS3 {
		return storage.NewS3Backend(cfg), nil
	}
	return storage.NewLocalBackend(cfg.MediaRoot)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
