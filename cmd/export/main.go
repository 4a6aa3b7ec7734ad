package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spacesedan/commentlens/config"
	"github.com/spacesedan/commentlens/internal/db"
	"github.com/spacesedan/commentlens/internal/history"
	"github.com/spacesedan/commentlens/internal/logging"
)

func main() {
	output := flag.String("o", "", "write the export to this file instead of stdout")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Export] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	if err := run(context.Background(), cfg, *output); err != nil {
		slog.Error("[Export] Export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, output string) error {
	store, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("[Export] failed to create %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	return export(ctx, store, w)
}

func export(ctx context.Context, store db.RecordStore, w io.Writer) error {
	records, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("[Export] failed to read history: %w", err)
	}

	if err := history.ExportJSON(w, records); err != nil {
		return fmt.Errorf("[Export] failed to write history: %w", err)
	}

	slog.Info("[Export] History exported", slog.Int("records", len(records)))
	return nil
}
