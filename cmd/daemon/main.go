package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/umbra/internal/classify"
	"github.com/genricoloni/umbra/internal/config"
	"github.com/genricoloni/umbra/internal/controller"
	"github.com/genricoloni/umbra/internal/domain"
	"github.com/genricoloni/umbra/internal/gesture"
	"github.com/genricoloni/umbra/internal/platform"
	"github.com/genricoloni/umbra/internal/registry"
	"github.com/genricoloni/umbra/internal/tracker"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the full dependency graph of the daemon. Kept as a
// package variable so tests can validate the graph without starting it.
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Provide dependencies
	fx.Provide(
		newLogger,
		config.Load,
		platform.NewDisplayAPI,
		platform.NewKeyState,
		platform.NewCapturer,
		platform.NewSurfaceFactory,
		newClassifier,
		registry.New,
		newRegionTracker,
		newGestureDetector,
		controller.New,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(AppOptions)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	// Stop the application gracefully
	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newClassifier() domain.Classifier {
	return classify.NewHeuristic()
}

func newRegionTracker(logger *zap.Logger, display domain.DisplayAPI, classifier domain.Classifier, cfg *config.Config) domain.RegionSource {
	return tracker.New(logger, display, classifier, cfg.ScanInterval)
}

func newGestureDetector(logger *zap.Logger, keys domain.KeyState, cfg *config.Config) *gesture.Detector {
	return gesture.New(logger, keys, cfg.Keys(logger), cfg.HoldDuration, cfg.KeyPollInterval)
}

// registerHooks sets up application lifecycle hooks
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, reg *registry.Registry, detector *gesture.Detector, ctrl *controller.Controller) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Umbra Daemon Started")
			if err := reg.Refresh(); err != nil {
				logger.Warn("Initial monitor enumeration failed", zap.Error(err))
			}
			if err := detector.Start(ctx); err != nil {
				return err
			}
			// A headless session has no monitor to arm on yet. Stay up
			// and report the failure instead of aborting startup.
			if err := ctrl.Start(ctx); err != nil {
				logger.Warn("Overlay not armed", zap.Error(err))
			} else {
				logger.Info("Status", zap.String("status", ctrl.Status()))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			if err := ctrl.Stop(ctx); err != nil {
				logger.Warn("Controller stop failed", zap.Error(err))
			}
			return detector.Stop(ctx)
		},
	})
}
