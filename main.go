package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/b0tShaman/xray-prep/config"
	"github.com/b0tShaman/xray-prep/data"
	"github.com/b0tShaman/xray-prep/manifest"
	"github.com/google/uuid"
)

// -------- MAIN -------- //
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg, os.Stdout)

	if err := run(cfg, logger); err != nil {
		logger.Error("Dataset build failed", "error", err)
		os.Exit(1)
	}
}

// run builds every configured split and writes the bundle. Nothing is
// written unless all splits succeed.
func run(cfg config.Config, logger *slog.Logger) error {
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	start := time.Now()

	// 1. Process splits
	logger.Info("Building dataset", "root", cfg.RawDataRoot, "splits", cfg.Splits,
		"size", fmt.Sprintf("%dx%d", cfg.ImageHeight, cfg.ImageWidth), "workers", cfg.Workers)

	processor, err := data.NewProcessor(cfg, logger)
	if err != nil {
		return err
	}

	bundle, err := processor.Build(cfg.Splits...)
	if err != nil {
		return err
	}

	// 2. Persist
	if err := data.Save(cfg.OutputPath, bundle); err != nil {
		return err
	}
	logger.Info("Saved dataset", "path", cfg.OutputPath, "elapsed", time.Since(start))

	// 3. Optional provenance
	if cfg.ManifestPath == "" {
		return nil
	}

	db, err := manifest.New(cfg.ManifestPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Record(runID, cfg.OutputPath, bundle); err != nil {
		return fmt.Errorf("failed to record manifest: %w", err)
	}
	logger.Info("Recorded manifest", "path", cfg.ManifestPath)

	return nil
}
