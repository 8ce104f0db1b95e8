// Package server initializes and runs the netconfd application: it opens the
// datastore database, loads the module catalog, wires the <delete-config>
// service and serves the gRPC and metrics endpoints until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/netconfd/internal/logging"
	"github.com/dmitrijs2005/netconfd/internal/server/acl"
	"github.com/dmitrijs2005/netconfd/internal/server/catalog"
	"github.com/dmitrijs2005/netconfd/internal/server/config"
	"github.com/dmitrijs2005/netconfd/internal/server/metrics"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"github.com/dmitrijs2005/netconfd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/netconfd/internal/server/services"
	"github.com/dmitrijs2005/netconfd/internal/server/sessions"
	"github.com/dmitrijs2005/netconfd/internal/server/urlimport"

	gs "github.com/dmitrijs2005/netconfd/internal/server/grpc"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	sessions     *sessions.Manager
	deleteConfig *services.DeleteConfigService
	metrics      *metrics.Metrics
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, db, repomanager.NewPostgresRepositoryManager(), logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) (*App, error) {

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	cat, err := catalog.LoadFile(c.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("catalog error: %w", err)
	}
	logger.Info(ctx, "Catalog loaded", "modules", cat.Len())

	checker := acl.NewChecker(db, rm, models.RuleAction(c.ExecDefault), logger)
	if err := checker.Seed(ctx, c.ExecRules); err != nil {
		return nil, fmt.Errorf("exec rules error: %w", err)
	}

	var importer services.Importer
	if c.URLCapability {
		validator, err := urlimport.NewValidator(cat.All())
		if err != nil {
			return nil, fmt.Errorf("url validator error: %w", err)
		}
		fetcher := urlimport.NewFetcher(&http.Client{Timeout: c.URLFetchTimeout}, urlimport.S3Options{
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		importer = urlimport.NewImporter(fetcher, validator, logger.With("module", "urlimport"))
	}

	m := metrics.New()

	return &App{
		config: c,
		logger: logger,
		db:     db,
		sessions: sessions.NewManager(db, rm, models.DatastoreRunning, logger,
			sessions.WithObserver(m), sessions.WithIdleTimeout(c.SessionIdleTimeout)),
		deleteConfig: services.NewDeleteConfigService(checker, cat, importer, c.URLCapability, m, logger),
		metrics:      m,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, gs.NewSessionStore(app.sessions), app.deleteConfig, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())

	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.SessionIdleTimeout > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.sessions.RunReaper(ctx, reapInterval(app.config.SessionIdleTimeout))
		}()
	}

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.shutdown(context.WithoutCancel(ctx))
}

// reapInterval checks for idle sessions four times per timeout, at most
// once a second.
func reapInterval(idle time.Duration) time.Duration {
	return max(idle/4, time.Second)
}

func (app *App) shutdown(ctx context.Context) {
	if err := app.sessions.CloseAll(ctx); err != nil {
		app.logger.Warn(ctx, "closing sessions", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
