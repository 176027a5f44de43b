package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crisnc100/flexbreak/internal/api"
	"github.com/crisnc100/flexbreak/internal/app/progress"
	"github.com/crisnc100/flexbreak/internal/domain"
	"github.com/crisnc100/flexbreak/internal/health"
	_ "github.com/crisnc100/flexbreak/internal/infra/metrics" // Register Prometheus metrics
	"github.com/crisnc100/flexbreak/internal/infra/sqlite"
)

// Daemon is the core FlexBreak runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Store   *progress.Store
	Service *progress.Service
	Server  *api.Server
	Health  *health.Checker
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(flexbreakHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	clock := domain.SystemClock{}
	store := progress.NewStore(db, clock)
	mapper := domain.NewAreaMapper(cfg.Areas.Synonyms)
	svc := progress.NewService(store, clock, mapper)
	svc.Boosts.SetDefaults(cfg.Engine.BoostHours, cfg.Engine.BoostMultiplier)

	checker := health.NewChecker(db, store, flexbreakHome())

	srv := api.NewServer(svc)
	srv.SetHealthChecker(checker)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Store:   store,
		Service: svc,
		Server:  srv,
		Health:  checker,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go d.Health.Run(ctx)

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("FlexBreak serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
