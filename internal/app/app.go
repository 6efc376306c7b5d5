package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/modify/internal/config"
	"github.com/simp-lee/modify/internal/metrics"
	"github.com/simp-lee/modify/internal/middleware"
	"github.com/simp-lee/modify/internal/migrations"
	"github.com/simp-lee/modify/internal/module/auth"
	"github.com/simp-lee/modify/internal/module/catalog"
	"github.com/simp-lee/modify/internal/module/user"
	"github.com/simp-lee/modify/internal/token"
)

const (
	defaultRequestTimeout = 30 * time.Second
	shutdownTimeout       = 5 * time.Second
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      2 * timeout,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the database, schema migration (debug mode only),
// repositories, services, handlers, middleware, metrics and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup database.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		closeDB(db)
	}()

	// 3. Migrate in debug mode only; release deployments run "modify migrate".
	if cfg.Server.Mode == gin.DebugMode {
		if err := migrations.Up(context.Background(), db, cfg.Database.Driver, log.Logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	// 4. Token manager and metrics.
	tokens, err := token.NewManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("setup token manager: %w", err)
	}

	var (
		registry  *prometheus.Registry
		collector *metrics.Collector
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		collector = metrics.NewCollector(registry)
	}

	// 5. Manual dependency injection: repository → service → handler.
	userSvc := user.NewUserService(user.NewUserRepository(db))
	moduleSvc := catalog.NewModuleService(catalog.NewModuleRepository(db))

	var authOpts []auth.Option
	if collector != nil {
		authOpts = append(authOpts, auth.WithRecorder(collector))
	}
	authSvc, err := auth.NewService(userSvc, tokens, cfg.Auth.BcryptCost, authOpts...)
	if err != nil {
		return nil, fmt.Errorf("setup auth service: %w", err)
	}

	modules := []Module{
		catalog.NewModule(catalog.NewModuleHandler(moduleSvc)),
		user.NewModule(user.NewUserHandler(userSvc)),
		auth.NewModule(auth.NewHandler(authSvc), middleware.RequireAuth(tokens, userSvc)),
	}

	// 6. Create Gin engine with custom middleware (not gin.Default()).
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	skipPaths := []string{"/health"}
	if cfg.Metrics.Enabled {
		skipPaths = append(skipPaths, metricsPath)
	}

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: cfg.Server.TrustRequestID,
		}),
		middleware.Logger(log.Logger, skipPaths...),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.Server.Mode, &cfg.Server.CORS)),
	)
	if collector != nil {
		engine.Use(middleware.Metrics(collector))
	}

	// 7. Register all routes.
	deps := &RouteDeps{
		Modules: modules,
		DB:      db,
	}
	if registry != nil {
		deps.MetricsPath = metricsPath
		deps.MetricsHandler = metrics.Handler(registry)
	}
	if err := RegisterRoutes(engine, deps); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.engine
}

// resolveCORSConfig builds the CORS middleware settings. Without a configured
// allowlist, debug mode allows any origin and release mode denies cross-origin
// requests.
func resolveCORSConfig(mode string, cfg *config.CORSConfig) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	switch {
	case len(cfg.AllowOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowOrigins
	case mode == gin.ReleaseMode:
		corsConfig.AllowOrigins = []string{}
	}
	if len(cfg.AllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowHeaders
	}
	corsConfig.AllowCredentials = cfg.AllowCredentials
	corsConfig.MaxAge = config.ParseDurationOr(cfg.MaxAge, corsConfig.MaxAge)

	return corsConfig
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second timeout and then closes the
// database connection.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	timeout := config.ParseDurationOr(a.cfg.Server.Timeout, defaultRequestTimeout)
	srv := newHTTPServer(addr, a.engine, timeout)

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.db != nil {
		if err := closeDB(a.db); err != nil {
			log.Error("database close error", slog.Any("error", err))
		} else {
			log.Info("database connection closed")
		}
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
