package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/okian/lobby/internal/adapters/ddragon"
	"github.com/okian/lobby/internal/adapters/http/api"
	"github.com/okian/lobby/internal/adapters/http/middleware"
	"github.com/okian/lobby/internal/adapters/http/site"
	"github.com/okian/lobby/internal/adapters/http/swagger"
	app "github.com/okian/lobby/internal/app"
	"github.com/okian/lobby/internal/config"
	"github.com/okian/lobby/internal/domain/icons"
	"github.com/okian/lobby/pkg/logger"
	"github.com/okian/lobby/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (.env -> defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't configured yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithJSON(cfg.LogJSON)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	lg := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		lg.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := setupMetrics(cfg); err != nil {
		lg.Fatal(ctx, "invalid metrics settings", logger.Error(err))
	}

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal(ctx, "lobby stopped", logger.Error(err))
	}
}

// setupMetrics rebuilds the collectors with the configured namespace and
// deployment label. It runs before the router so /healthz serves them.
func setupMetrics(cfg *config.Config) error {
	return metrics.Init(cfg.MetricsNamespace, cfg.MetricsDeployment, cfg.MetricsRefresh())
}

// run starts the service and serves HTTP until ctx is cancelled. A catalog
// that cannot be loaded is returned as an error before anything listens.
func run(ctx context.Context, cfg *config.Config, lg logger.Logger) error {
	svc := newService(cfg, lg)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	go startMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(ctx, cfg, svc, lg),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}
	lg.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	lg.Info(ctx, "server stopped")
	return nil
}

func newService(cfg *config.Config, lg logger.Logger) *app.Service {
	loader := ddragon.NewLoader(cfg.CatalogURL,
		ddragon.WithTimeout(cfg.CatalogTimeout()),
		ddragon.WithLogger(lg.Named("ddragon")),
	)
	return app.New(
		app.WithLogger(lg.Named("service")),
		app.WithCatalogLoader(loader),
		app.WithSeed(cfg.Seed),
		app.WithSessionCapacity(cfg.SessionCapacity),
		app.WithSessionTTL(cfg.SessionTTL()),
	)
}

// newRouter mounts the page, the JSON API and the API docs on one router.
func newRouter(ctx context.Context, cfg *config.Config, svc *app.Service, lg logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog(lg.Named("http")))

	iconFS := iconFiles(ctx, cfg.IconDir, lg)
	resolver := icons.NewResolver(iconFS, icons.WithBaseDir(cfg.IconDir))

	site.NewHandler(svc, resolver,
		site.WithIconFS(iconFS),
		site.WithCookieMaxAge(cfg.SessionTTL()),
		site.WithLogger(lg.Named("site")),
	).Register(ctx, r)
	api.NewServer(svc, resolver).Register(ctx, r)
	swagger.Register(ctx, r)
	return r
}

// iconFiles opens the icon directory. A missing directory is not fatal;
// every slot then shows the placeholder.
func iconFiles(ctx context.Context, dir string, lg logger.Logger) fs.FS {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		lg.Warn(ctx, "icon directory unavailable; using placeholder icons", logger.String("icon_dir", dir))
		return emptyFS{}
	}
	return os.DirFS(dir)
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// startMetricsUpdater refreshes system and session gauges until ctx ends.
func startMetricsUpdater(ctx context.Context, svc *app.Service) {
	systemTicker := time.NewTicker(metrics.RefreshInterval())
	defer systemTicker.Stop()
	serviceTicker := time.NewTicker(serviceMetricsInterval)
	defer serviceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-systemTicker.C:
			updateSystemMetrics()
		case <-serviceTicker.C:
			// GetStats refreshes the active session gauge.
			_ = svc.GetStats()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
