package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"RegimeScope/internal/handler/api"
	"RegimeScope/internal/usecase"
	"RegimeScope/pkg/config"
	xhttp "RegimeScope/pkg/http"
	applogger "RegimeScope/pkg/logger"
)

// App encapsulates the application lifecycle: one pipeline run, then an
// optional HTTP server that keeps serving the finished report.
type App struct {
	cfg      *config.Config
	l        *applogger.Logger
	pipeline *usecase.Pipeline
	handler  *api.ReportHandler
	closers  []func() error

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, pipeline *usecase.Pipeline, handler *api.ReportHandler) *App {
	return &App{
		cfg:      cfg,
		l:        l,
		pipeline: pipeline,
		handler:  handler,
	}
}

// AddCloser registers a resource to close on shutdown, in reverse order of
// registration.
func (a *App) AddCloser(close func() error) {
	a.closers = append(a.closers, close)
}

// Run executes the pipeline and, when the server is enabled, blocks until
// interrupted. Without the server it returns as soon as the run finishes.
func (a *App) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rep, err := a.pipeline.Run(ctx)
	if err != nil {
		a.l.Error("pipeline run failed", applogger.Error(err))
		a.close()
		return err
	}
	a.l.Info("pipeline run finished",
		applogger.String("ticker", rep.Ticker),
		applogger.Int("prices", len(rep.Prices)),
		applogger.Int("labeled_days", len(rep.Labels)),
		applogger.Float64("median_volatility", rep.MedianVolatility))

	if !a.cfg.Server.Enabled {
		return a.close()
	}

	a.handler.SetLogger(a.l)
	a.handler.SetReport(rep)
	if a.cfg.Output.Charts {
		a.handler.SetChartsDir(a.cfg.Output.Dir)
	}
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.l),
	)
	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		a.close()
		return err
	}
	a.l.Info("report server started", applogger.Int("port", a.cfg.Server.Port))

	<-ctx.Done()
	a.l.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.l.Error("http shutdown error", applogger.Error(err))
		}
	}
	return a.close()
}

func (a *App) close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.l.Warn("close error", applogger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
