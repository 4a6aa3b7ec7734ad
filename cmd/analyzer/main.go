package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/snowflake"
	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/commentlens/config"
	"github.com/spacesedan/commentlens/internal/clients"
	"github.com/spacesedan/commentlens/internal/clients/kafka_client"
	"github.com/spacesedan/commentlens/internal/db"
	"github.com/spacesedan/commentlens/internal/logging"
	"github.com/spacesedan/commentlens/internal/pipeline"
	"github.com/spacesedan/commentlens/internal/sentiment"
	"github.com/spacesedan/commentlens/internal/translation"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg)
	if err != nil {
		slog.Error("[Main] Record store unavailable, continuing without persistence",
			slog.String("backend", string(cfg.StoreBackend)),
			slog.String("error", err.Error()))
	} else {
		defer func() {
			if err := store.Close(context.Background()); err != nil {
				slog.Warn("[Main] Failed to close record store", slog.String("error", err.Error()))
			}
		}()
	}

	translator, closeTranslator := buildTranslator(ctx, cfg)
	defer closeTranslator()

	nodeID := cfg.SnowflakeNode
	if nodeID < 0 {
		nodeID = pipeline.ProcessNodeID()
	}
	slog.Info("[Main] Record id node", slog.Int64("node", nodeID))
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		slog.Error("[Main] Failed to create id node", slog.String("error", err.Error()))
		os.Exit(1)
	}

	deps := pipeline.Deps{
		Normalizer:     translation.NewNormalizer(translator),
		Classifier:     sentiment.NewClassifier(sentiment.NewVaderScorer()),
		Clock:          clockwork.NewRealClock(),
		Store:          store,
		IDs:            node,
		HistoryMaxRows: cfg.HistoryMaxRows,
	}

	if cfg.KafkaBroker != "" {
		producer, err := kafka_client.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
		if err != nil {
			slog.Warn("[Main] Kafka unavailable, records will not be published",
				slog.String("error", err.Error()))
		} else {
			defer producer.Close()
			deps.Publisher = producer
		}
	}

	p, err := pipeline.New(deps)
	if err != nil {
		slog.Error("[Main] Failed to build pipeline", slog.String("error", err.Error()))
		os.Exit(1)
	}

	session := p.NewSession(ctx)
	slog.Info("[Main] Session started", slog.String("session_id", session.ID.String()))

	c := newConsole(session, os.Stdin, os.Stdout)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("[Main] Console stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildTranslator picks the provider from TRANSLATOR and puts the Valkey
// cache in front of it when one is configured. A nil translator disables
// translation.
func buildTranslator(ctx context.Context, cfg *config.Config) (translation.Translator, func()) {
	noop := func() {}

	var base translation.Translator
	switch cfg.Translator {
	case config.TranslatorGoogle:
		base = translation.NewGoogleTranslator()
	case config.TranslatorOpenAI:
		base = translation.NewOpenAITranslator(clients.NewOpenAIClient(cfg.OpenAIAPIKey), cfg.OpenAIModel)
	default:
		slog.Info("[Main] Translation disabled, non-English comments are scored as written")
		return nil, noop
	}

	if cfg.ValkeyAddress == "" {
		return base, noop
	}

	cache, err := clients.NewValkeyClient(ctx, cfg)
	if err != nil {
		slog.Warn("[Main] Translation cache unavailable", slog.String("error", err.Error()))
		return base, noop
	}
	return translation.NewCachedTranslator(base, cache, cfg.TranslationCacheTTL), cache.Close
}
