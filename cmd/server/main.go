package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Skeome/Arcana-Sim/internal/catalog"
	"github.com/Skeome/Arcana-Sim/internal/config"
	"github.com/Skeome/Arcana-Sim/internal/game/ai"
	"github.com/Skeome/Arcana-Sim/internal/server"
	"github.com/Skeome/Arcana-Sim/internal/session"
	"github.com/Skeome/Arcana-Sim/internal/storage"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting arcana server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	cat, err := catalog.Load(cfg.Game.CardLibrary)
	if err != nil {
		logger.Fatal("failed to load card library", zap.Error(err))
	}
	logger.Info("card library loaded",
		zap.String("path", cfg.Game.CardLibrary),
		zap.Int("cards", cat.Len()),
	)

	decks, err := catalog.LoadDecks(cfg.Game.DeckFile)
	if err != nil {
		logger.Fatal("failed to load deck lists", zap.Error(err))
	}
	if _, ok := decks[cfg.Game.DefaultDeck]; !ok {
		logger.Fatal("default deck missing from deck file",
			zap.String("deck", cfg.Game.DefaultDeck),
		)
	}
	logger.Info("deck lists loaded", zap.Int("decks", len(decks)))

	// Deck persistence is optional; without a database everyone plays the
	// default deck.
	var deckSource server.DeckSource
	if cfg.Database.URL != "" {
		store, err := storage.NewDeckStore(ctx, cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("failed to connect deck store", zap.Error(err))
		}
		defer store.Close()
		deckSource = store
	} else {
		logger.Info("no database configured; deck persistence disabled")
	}

	sessionMgr := session.NewManager(logger)
	logger.Info("session manager initialized")

	gateway := server.New(
		sessionMgr,
		cat,
		decks,
		deckSource,
		cfg.Game.DefaultDeck,
		ai.Difficulty(cfg.Game.AIDifficulty),
		logger,
	)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: gateway.Handler(),
	}

	go func() {
		logger.Info("listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("arcana server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
