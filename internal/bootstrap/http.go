package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/antly/antly-api/config"
	httpx "github.com/antly/antly-api/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB               // Optional: checked by /readyz
	RedisClient redis.UniversalClient // Optional: checked by /readyz
	Logger      *slog.Logger
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
}

// NewHTTPHandler builds the API router wrapped in the middleware chain.
func NewHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	ready := map[string]httpx.Pinger{}
	if cfg.DB != nil {
		ready["postgres"] = cfg.DB
	}
	if cfg.RedisClient != nil {
		ready["redis"] = redisPinger{client: cfg.RedisClient}
	}

	return buildHTTPHandler(httpHandlerConfig{
		Logger: logger,
		HTTP:   appCfg.HTTP,
		Services: httpx.RouterServices{
			Accounts: cfg.Services.Accounts,
			Sessions: cfg.Services.Sessions,
			Ads:      cfg.Services.Ads,
			Reviews:  cfg.Services.Reviews,
			Admin:    cfg.Services.Admin,
			Cookies: httpx.NewSessionCookies(httpx.SessionCookieOptions{
				Secure: appCfg.IsProduction(),
				Domain: appCfg.HTTP.CookieDomain,
			}),
			Errors: &httpx.ErrorResponder{Production: appCfg.IsProduction(), Logger: logger},
			Ready:   ready,
			Logger:  logger,
			Metrics: cfg.Services.Metrics,
		},
	})
}

func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	router := httpx.NewRouter(cfg.Services)

	// Apply compression middleware first (innermost) so logging captures compressed sizes
	// Order: Recover -> Logging -> Compression -> Router
	h := router
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel})(h)
	}

	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h
}

func newServer(handler http.Handler, cfg config.HTTPConfig) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Run serves HTTP until ctx is canceled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func Run(ctx context.Context, cfg *HTTPServerConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := newServer(NewHTTPHandler(cfg), cfg.Config.HTTP)
	return serve(ctx, server, cfg.Config.HTTP, logger)
}

func serve(ctx context.Context, server *http.Server, cfg config.HTTPConfig, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		// the parent is already done, so give shutdown its own deadline
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}
