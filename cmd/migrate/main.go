// Package main implements the database migration utility for GridPulse.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/popeskul/gridpulse/internal/config"
	"github.com/popeskul/gridpulse/internal/infrastructure/migrate"
)

const defaultMigrateSteps = 1

func main() {
	var (
		configPath     string
		migrationsPath string
		steps          int
		all            bool
	)

	flag.StringVar(&configPath, "config", "config.yaml", "Path to config file")
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (defaults to database.migrations_path)")
	flag.IntVar(&steps, "steps", defaultMigrateSteps, "Number of migrations to apply or roll back")
	flag.BoolVar(&all, "all", false, "Apply every pending migration (up only)")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	args := flag.Args()
	if len(args) == 0 {
		logger.Fatal("Please specify a command: up, down, or version")
	}

	runnerCfg := &migrate.Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: migrationsPath,
	}
	if runnerCfg.DatabaseURL == "" || runnerCfg.MigrationsPath == "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Fatal("DATABASE_URL is not set and config could not be loaded", zap.Error(err))
		}
		if runnerCfg.DatabaseURL == "" {
			runnerCfg.DatabaseURL = cfg.Database.GetURL()
		}
		if runnerCfg.MigrationsPath == "" {
			runnerCfg.MigrationsPath = cfg.Database.MigrationsPath
		}
	}

	runner := migrate.NewRunner(runnerCfg, logger)

	switch command := args[0]; command {
	case "up":
		if all {
			err = runner.Run()
		} else {
			err = runner.Steps(steps)
		}
		if err != nil {
			logger.Fatal("Failed to run migrations up", zap.Error(err))
		}
		reportVersion(runner, logger)

	case "down":
		if err := runner.Steps(-steps); err != nil {
			logger.Fatal("Failed to run migrations down", zap.Error(err))
		}
		reportVersion(runner, logger)

	case "version":
		reportVersion(runner, logger)

	default:
		logger.Fatal("Unknown command, use 'up', 'down', or 'version'", zap.String("command", command))
	}
}

func reportVersion(runner *migrate.Runner, logger *zap.Logger) {
	version, dirty, err := runner.Version()
	if err != nil {
		logger.Fatal("Failed to get version", zap.Error(err))
	}
	if dirty {
		logger.Warn("Database is in dirty state", zap.Uint("version", version))
		return
	}
	logger.Info("Current migration version", zap.Uint("version", version))
}
