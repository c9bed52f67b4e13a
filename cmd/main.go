package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}
	config.LoadEnv(".env")
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	client := services.NewClient(services.ClientOpts{
		BaseURL:   config.API.BaseURL,
		Timeout:   config.API.TimeoutDuration(),
		RateLimit: config.API.RateLimit,
		Burst:     config.API.Burst,
		Logger:    logger,
	})

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: defaultConfigPath,
		API:        client,
		Sessions:   repositories.NewSessionRepository(db),
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "shelf",
		Usage:    "Track the books you read, grouped by category",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	err = app.Run(context.Background(), os.Args)
	db.Close()
	if err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
