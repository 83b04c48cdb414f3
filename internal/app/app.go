package app

import (
	"context"
	_ "embed"
	"io"
	"log/slog"

	"github.com/specialistvlad/gcsim/internal/collector"
	"github.com/specialistvlad/gcsim/internal/config"
	"github.com/specialistvlad/gcsim/internal/ctxlog"
)

// demoScenario is the sample heap run by the -demo flag.
//
//go:embed demo.hcl
var demoScenario []byte

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	strategy collector.Strategy
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW; the logger is isolated from the global one.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	// NewConfig already validated the strategy name.
	strategy, _ := collector.ParseStrategy(cfg.Strategy)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		strategy: strategy,
	}
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
