package serve

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pagelens/pagelens/internal/common"
	"github.com/pagelens/pagelens/pkg/analyzer"
	"github.com/pagelens/pagelens/pkg/classifier"
	"github.com/pagelens/pagelens/pkg/corpus"
	"github.com/pagelens/pagelens/pkg/db"
	"github.com/pagelens/pagelens/pkg/help"
)

// shutdownGrace bounds how long in-flight analyses may run after a
// termination signal arrives.
const shutdownGrace = 30 * time.Second

// ServeAction loads the model and corpus once, then serves the HTTP
// API until SIGINT or SIGTERM.
func ServeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := common.LoadConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}

	model, err := classifier.Load(cfg.ModelPath)
	if err != nil {
		logger.Error("failed to load model artifact", "path", cfg.ModelPath, "error", err, "hint", help.SetupHint)
		os.Exit(2)
	}
	corp, err := corpus.Load(cfg.Corpus.FeaturesPath, cfg.Corpus.ContentPath)
	if err != nil {
		logger.Error("failed to load reference corpus", "error", err, "hint", help.SetupHint)
		os.Exit(2)
	}
	logger.Info("resources loaded", "model_trees", len(model.Trees), "corpus_pages", corp.Len())

	// History is optional for the API just as for the CLI.
	var history *db.DB
	if cfg.History.Path != "" {
		history, err = db.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("failed to open history database; history endpoints disabled",
				"path", cfg.History.Path, "error", err)
			history = nil
		}
	}

	server := NewServer(Options{
		Config:   cfg,
		Analyzer: analyzer.New(cfg, model, corp, logger),
		Model:    model,
		Corpus:   corp,
		History:  history,
		Logger:   logger,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server error", "error", err)
		os.Exit(2)
	case sig := <-quit:
		logger.Info("signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(2)
	}

	logger.Info("server stopped")
	return nil
}
