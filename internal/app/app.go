// internal/app/app.go
package app

import (
	"context"
	"io"
	"net"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"chatapp-backend/internal/config"
	hh "chatapp-backend/internal/handlers/http"
	"chatapp-backend/internal/middleware"
	"chatapp-backend/internal/util"
)

// Deps are the collaborators built in main. Zero values are usable.
type Deps struct {
	Log      logrus.FieldLogger
	DB       hh.Pinger
	Registry *prometheus.Registry
	Clock    util.Clock
}

// App holds the router and the full middleware chain around it.
type App struct {
	Router  *mux.Router
	Handler http.Handler

	cfg *config.Config
	log logrus.FieldLogger
}

// New wires routes and middleware. The CORS policy is taken from cfg once
// and shared read-only by every request.
func New(cfg *config.Config, deps Deps) *App {
	if deps.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		deps.Log = l
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
		deps.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	r := mux.NewRouter()
	RegisterRoutes(r, RegisterDeps{
		DB:       deps.DB,
		Gatherer: deps.Registry,
		Metrics:  middleware.NewMetrics(metricsNamespace(cfg.AppName), deps.Registry),
		Clock:    deps.Clock,
	})

	// outermost first: request id, access log, panic recovery, CORS, routes
	var h http.Handler = r
	h = middleware.CORS(cfg.CORS)(h)
	h = chimw.Recoverer(h)
	h = middleware.Logging(deps.Log)(h)
	h = middleware.RequestID(h)

	return &App{Router: r, Handler: h, cfg: cfg, log: deps.Log}
}

// Run listens on APP_PORT until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+a.cfg.AppPort)
	if err != nil {
		return errors.Wrapf(err, "listen on :%s", a.cfg.AppPort)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      a.Handler,
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", ln.Addr().String()).Info("server running")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, "http server")
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}
	return nil
}

// metricsNamespace maps appName onto the Prometheus name charset
// [a-zA-Z_][a-zA-Z0-9_]*.
func metricsNamespace(appName string) string {
	out := make([]rune, 0, len(appName)+1)
	if appName != "" && appName[0] >= '0' && appName[0] <= '9' {
		out = append(out, '_')
	}
	for _, c := range appName {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
