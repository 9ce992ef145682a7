package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keremavan/feed-engine/internal/config"
	"github.com/keremavan/feed-engine/internal/importer"
	"github.com/keremavan/feed-engine/internal/infra/postgresql"
	"github.com/keremavan/feed-engine/internal/infra/postgresql/migrations"
	infraredis "github.com/keremavan/feed-engine/internal/infra/redis"
	"github.com/keremavan/feed-engine/internal/observability"
	"github.com/keremavan/feed-engine/internal/queue"
	"github.com/keremavan/feed-engine/internal/repository"
	"github.com/keremavan/feed-engine/internal/service"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "importer",
		Short: "Batch feed importer for the feed-engine database",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help() //nolint:errcheck
		},
	}

	runCmd := &cobra.Command{
		Use:   "run <target> <file>",
		Short: "Import one feed file into the given target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withImportService(func(ctx context.Context, svc *service.ImportService, cfg *config.Config) error {
				summary, err := svc.ImportFile(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				printSummary(cmd, summary)
				return nil
			})
		},
	}

	var scanDir string
	scanCmd := &cobra.Command{
		Use:   "scan <target>",
		Short: "Import every feed file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withImportService(func(ctx context.Context, svc *service.ImportService, cfg *config.Config) error {
				dir := scanDir
				if dir == "" {
					dir = cfg.InputDir
				}
				results, err := svc.ScanTarget(ctx, args[0], dir)
				if err != nil {
					return err
				}
				for _, res := range results {
					if res.Err != nil {
						cmd.Printf("%s: %v\n", res.File, res.Err)
						continue
					}
					printSummary(cmd, res.Summary)
				}
				return nil
			})
		},
	}
	scanCmd.Flags().StringVar(&scanDir, "dir", "", "directory to scan (defaults to INPUT_DIR)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the importer version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("feed-engine importer %s (%s)\n", version, runtime.Version())
		},
	}

	rootCmd.AddCommand(runCmd, scanCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(cmd *cobra.Command, summary importer.Summary) {
	cmd.Printf("%s: %s (%d imported, %d failed of %d)\n",
		summary.File, summary.Status.Result(), summary.Successful, len(summary.Failures), summary.TotalAttempted)
	for _, failure := range summary.Failures {
		cmd.Printf("  %s\n", failure)
	}
}

// withImportService wires the full pipeline, runs fn, and tears everything
// down again. The CLI shares the API's configuration surface.
func withImportService(fn func(context.Context, *service.ImportService, *config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("postgres initialization failed: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("postgres underlying db init failed: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Migrate(db); err != nil {
		return fmt.Errorf("database migrations failed: %w", err)
	}

	rdb, err := infraredis.NewRedis(cfg.RedisURL, cfg.RedisPoolSize)
	if err != nil {
		return fmt.Errorf("redis initialization failed: %w", err)
	}
	defer rdb.Close()

	mq, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("rabbitmq initialization failed: %w", err)
	}
	defer mq.Close()

	keyCache, err := infraredis.NewKeyCache(rdb, logger)
	if err != nil {
		return fmt.Errorf("key cache initialization failed: %w", err)
	}

	employeeImporter, err := importer.NewBatchImporter(
		repository.NewEmployeeBatchConnector(db), importer.EmployeeTarget{}, cfg.CSVDelimiter, keyCache, logger)
	if err != nil {
		return fmt.Errorf("employee importer initialization failed: %w", err)
	}
	inventoryImporter, err := importer.NewBatchImporter(
		repository.NewInventoryBatchConnector(db), importer.InventoryTarget{}, cfg.CSVDelimiter, keyCache, logger)
	if err != nil {
		return fmt.Errorf("inventory importer initialization failed: %w", err)
	}

	svc, err := service.NewImportService(
		map[string]service.FileImporter{
			importer.EmployeeTarget{}.Name():  employeeImporter,
			importer.InventoryTarget{}.Name(): inventoryImporter,
		},
		queue.NewRabbitMQPublisher(mq),
		nil,
		cfg.ScanConcurrency,
		logger,
	)
	if err != nil {
		return fmt.Errorf("import service initialization failed: %w", err)
	}

	return fn(context.Background(), svc, cfg)
}
