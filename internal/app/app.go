// internal/app/app.go
package app

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"report-writer/internal/api"
	"report-writer/internal/common/config"
	"report-writer/internal/common/database"
	apphttp "report-writer/internal/common/http"
	"report-writer/internal/common/logger"
	"report-writer/internal/common/observability"
	"report-writer/internal/report/audit"
	"report-writer/internal/report/clipboard"
	"report-writer/internal/report/generator"
	"report-writer/internal/report/notify"
	"report-writer/internal/report/session"
)

const (
	connectRetries    = 5
	connectRetryDelay = 2 * time.Second
	janitorInterval   = time.Minute
)

// App is the wired report writer service.
type App struct {
	Config   *config.Config
	Logger   logger.Logger
	Registry *session.Registry
	Router   *gin.Engine
	Server   *http.Server

	redis   *redis.Client
	db      *sql.DB
	obs     *observability.Observability
	tracing *observability.Tracing
}

// New connects to the configured backends and builds the HTTP router.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	tracing, err := observability.NewTracing(ctx, cfg.App, cfg.Tracing, log)
	if err != nil {
		return nil, err
	}
	a.tracing = tracing
	a.obs = observability.New(cfg.App.Name, log)

	if cfg.UsesRedis() {
		err := retryWithBackoff(ctx, func() error {
			var err error
			a.redis, err = database.NewRedis(ctx, cfg.Database.Redis)
			return err
		}, connectRetries, connectRetryDelay, log, "Redis connection")
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		log.Info("redis connected", map[string]interface{}{"address": cfg.Database.Redis.Address})
	}

	var recorder audit.Recorder = audit.Nop{}
	if cfg.Audit.Enabled {
		err := retryWithBackoff(ctx, func() error {
			var err error
			a.db, err = database.NewPostgres(ctx, cfg.Database.Postgres)
			return err
		}, connectRetries, connectRetryDelay, log, "PostgreSQL connection")
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		pg := audit.NewPostgresRecorder(a.db, cfg.Audit.Table, log)
		if err := pg.EnsureSchema(ctx); err != nil {
			a.Close(ctx)
			return nil, err
		}
		recorder = pg
		log.Info("audit trail enabled", map[string]interface{}{"table": cfg.Audit.Table})
	}

	gen, backend := BuildGenerator(cfg, log)
	notifier := a.buildNotifier(log)
	clipboardFor := a.clipboardFactory()

	a.Registry = session.NewRegistry(func(id string) *session.Session {
		return session.New(id, session.Deps{
			Generator: gen,
			Notifier:  notifier,
			Clipboard: clipboardFor(id),
			Audit:     recorder,
			Logger:    log,
		}, session.Options{
			RequireComplete:  cfg.Session.RequireComplete,
			Timeout:          config.GetDuration(cfg.Generator.Timeout),
			CopyConfirmDelay: config.GetDuration(cfg.Session.CopyConfirmDelay),
			Backend:          backend,
			ClipboardBackend: cfg.Clipboard.Backend,
		})
	}, config.GetDuration(cfg.Session.IdleTTL), log)

	routes := api.RouterConfig{
		ServiceName:     cfg.App.Name,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		Logger:          log,
		Observability:   a.obs,
		HealthHandler:   api.NewHealthHandler(cfg.App.Name, cfg.App.Version, a.readinessChecks()),
		TemplateHandler: api.NewTemplateHandler(),
		SessionHandler:  api.NewSessionHandler(a.Registry, a.clipboardReaders()),
	}
	if cfg.APIs.GenAI.BaseURL != "" {
		// the backend contract endpoint always writes through the text generation API
		genai := generator.Instrument(newGenAIClient(cfg, log), generator.BackendGenAI)
		routes.GenerateHandler = api.NewGenerateHandler(genai, config.GetDuration(cfg.APIs.GenAI.Timeout), log)
	}
	a.Router = api.NewRouter(routes)

	a.Server = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      a.Router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	return a, nil
}

// BuildGenerator returns the instrumented generator selected by
// generator.mode and the backend label it reports under.
func BuildGenerator(cfg *config.Config, log logger.Logger) (generator.Generator, string) {
	if cfg.Generator.Mode == config.GeneratorModeGenAI {
		return generator.Instrument(newGenAIClient(cfg, log), generator.BackendGenAI), generator.BackendGenAI
	}
	remote := generator.NewRemoteClient(&generator.RemoteConfig{
		Endpoint: cfg.Generator.Endpoint,
		APIKey:   cfg.Generator.APIKey,
	}, apphttp.NewClient(0), log)
	return generator.Instrument(remote, generator.BackendRemote), generator.BackendRemote
}

func newGenAIClient(cfg *config.Config, log logger.Logger) *generator.GenAIClient {
	return generator.NewGenAIClient(&generator.GenAIConfig{
		BaseURL:     cfg.APIs.GenAI.BaseURL,
		APIKey:      cfg.APIs.GenAI.APIKey,
		MaxTokens:   cfg.APIs.GenAI.MaxTokens,
		Temperature: cfg.APIs.GenAI.Temperature,
	}, apphttp.NewClient(0), log)
}

func (a *App) buildNotifier(log logger.Logger) notify.Notifier {
	if a.Config.Notifications.Backend == config.NotifierRedis {
		return notify.Fanout{
			notify.NewLogNotifier(log),
			notify.NewRedisNotifier(a.redis, a.Config.Notifications.ChannelPrefix),
		}
	}
	return notify.NewLogNotifier(log)
}

func (a *App) clipboardFactory() func(sessionID string) clipboard.Writer {
	cfg := a.Config.Clipboard
	if cfg.Backend == config.ClipboardRedis {
		return func(id string) clipboard.Writer {
			return clipboard.NewRedis(a.redis, clipboard.Key(cfg.KeyPrefix, id), config.GetDuration(cfg.TTL))
		}
	}
	return func(string) clipboard.Writer { return clipboard.System{} }
}

// clipboardReaders exposes the Redis clipboard over HTTP. The host clipboard
// of the server is never readable remotely.
func (a *App) clipboardReaders() api.ClipboardReaderFunc {
	cfg := a.Config.Clipboard
	if cfg.Backend != config.ClipboardRedis {
		return nil
	}
	return func(id string) clipboard.Reader {
		return clipboard.NewRedis(a.redis, clipboard.Key(cfg.KeyPrefix, id), config.GetDuration(cfg.TTL))
	}
}

func (a *App) readinessChecks() map[string]api.Check {
	checks := map[string]api.Check{}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error { return database.PingRedis(ctx, a.redis) }
	}
	if a.db != nil {
		checks["postgres"] = func(ctx context.Context) error { return a.db.PingContext(ctx) }
	}
	return checks
}

// Run serves HTTP and evicts idle sessions until ctx is cancelled, then shuts
// down gracefully.
func (a *App) Run(ctx context.Context) error {
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go a.Registry.Run(janitorCtx, janitorInterval)

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening", map[string]interface{}{"address": a.Server.Addr})
		if err := a.Server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("Shutdown signal received, stopping server...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(a.Config.Server.ShutdownTimeout))
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases every connection the app opened.
func (a *App) Close(ctx context.Context) {
	if a.Registry != nil {
		a.Registry.Shutdown()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Error("Error closing Redis client", map[string]interface{}{"error": err})
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Error("Error closing PostgreSQL pool", map[string]interface{}{"error": err})
		}
	}
	if err := a.obs.Shutdown(ctx); err != nil {
		a.Logger.Warn("metrics shutdown failed", map[string]interface{}{"error": err})
	}
	if err := a.tracing.Shutdown(ctx); err != nil {
		a.Logger.Warn("tracing shutdown failed", map[string]interface{}{"error": err})
	}
}
