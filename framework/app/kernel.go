package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/km-arc/go-serializer/framework/config"
	gohttp "github.com/km-arc/go-serializer/framework/http"
	"github.com/km-arc/go-serializer/framework/logging"
	"github.com/km-arc/go-serializer/framework/metrics"
	"github.com/km-arc/go-serializer/framework/routing"
	"github.com/km-arc/go-serializer/framework/serializer"
)

// Application wires configuration, logging, metrics and the router around
// a set of schemas.
//
//	a, err := app.Bootstrap()
//	if err != nil { ... }
//	err = a.Run(ctx)
type Application struct {
	Config   *config.Config
	Logger   *zap.Logger
	Router   *routing.Router
	Registry *prometheus.Registry
	Metrics  *metrics.Collector

	schemas []*serializer.Schema
}

// Bootstrap loads and validates the configuration from envFiles, builds
// the logger and loads every schema file in Config.Schema.Dir.
func Bootstrap(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.App.Debug)
	if err != nil {
		return nil, err
	}
	schemas, err := serializer.LoadDir(cfg.Schema.Dir)
	if err != nil {
		return nil, err
	}
	return New(cfg, logger, schemas), nil
}

// New builds an Application serving schemas. A nil logger discards logs.
//
// Routes:
//
//	GET       /                  schema names
//	GET|POST  /validate/{name}   validated data, or 422
//	GET       /metrics           prometheus metrics
func New(cfg *config.Config, logger *zap.Logger, schemas []*serializer.Schema) *Application {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := prometheus.NewRegistry()
	a := &Application{
		Config:   cfg,
		Logger:   logger,
		Router:   routing.New(logger),
		Registry: reg,
		Metrics:  metrics.New(reg),
		schemas:  schemas,
	}
	a.routes()
	return a
}

func (a *Application) routes() {
	r := a.Router
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).NotFound()
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).Error(http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"schemas": a.Schemas()})
	})
	r.Handle("/metrics", metrics.Handler(a.Registry))

	r.Prefix("/validate", func(v *routing.Router) {
		for _, schema := range a.schemas {
			s := serializer.New(schema,
				serializer.WithLogger(a.Logger),
				serializer.WithObserver(a.Metrics),
			)
			guarded := v.With(gohttp.Validated(s))
			guarded.Get("/"+schema.Name(), respondData)
			guarded.Post("/"+schema.Name(), respondData)
		}
	})
}

func respondData(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Success(gohttp.Data(r))
}

// Schemas returns the names of the served schemas in load order.
func (a *Application) Schemas() []string {
	names := make([]string, len(a.schemas))
	for i, s := range a.schemas {
		names[i] = s.Name()
	}
	return names
}

// Addr is the listen address derived from APP_PORT.
func (a *Application) Addr() string { return ":" + a.Config.App.Port }

// Run serves HTTP on Addr until ctx is cancelled, then shuts down
// gracefully within Config.App.ShutdownTimeout.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.Addr(), err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener. It closes ln.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: a.Router, ReadHeaderTimeout: 10 * time.Second}

	a.Logger.Info("server started",
		zap.String("app", a.Config.App.Name),
		zap.String("env", a.Config.App.Env),
		zap.String("addr", ln.Addr().String()),
		zap.Strings("schemas", a.Schemas()),
	)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("graceful shutdown did not complete", zap.Error(err))
		_ = srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.Logger.Info("server stopped")
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
