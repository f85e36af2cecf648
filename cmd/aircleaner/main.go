// cmd/aircleaner/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/matthew-brett/airquality/pkg/cleaner"
	"github.com/matthew-brett/airquality/pkg/config"
	"github.com/matthew-brett/airquality/pkg/loader"
	"github.com/matthew-brett/airquality/pkg/model"
	"github.com/matthew-brett/airquality/pkg/pipeline"
	"github.com/matthew-brett/airquality/pkg/writer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "aircleaner: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := buildLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	source, err := loader.NewExcelSource(cfg.Source, logger)
	if err != nil {
		return fmt.Errorf("creating source: %w", err)
	}
	defer source.Close()

	dataCleaner, err := cleaner.NewDataCleaner(model.DefaultRenamePlan(), logger)
	if err != nil {
		return fmt.Errorf("creating cleaner: %w", err)
	}

	w, err := writer.NewWriter(logger)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	verifier, err := writer.NewVerifier(logger)
	if err != nil {
		return fmt.Errorf("creating verifier: %w", err)
	}

	p, err := pipeline.New(source, dataCleaner, w, verifier, cfg.OutputPath, logger)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}

	if _, err := p.Run(context.Background()); err != nil {
		return err
	}
	return nil
}

// buildLogger constructs a zap logger matching the configured level and
// format ("json" or "console").
func buildLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zapCfg := zap.NewProductionConfig()
	if format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}
