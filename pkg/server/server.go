// Package server serves the greeting page over HTTP.
//
// Routes:
//
//	GET /              the interactive page
//	GET /tree.svg      the tree alone
//	GET /layout.json   the layout snapshot
//	GET /messages      the message list as a JSON array
//	GET /api/messages  alias of /messages
//	GET /healthz       liveness probe
//
// The artifact routes accept style, static, snow and seed query
// parameters. The silhouette can be swapped at runtime with
// [Server.Reload], for example from a [Watcher].
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/yuletree/pkg/buildinfo"
	"github.com/matzehuels/yuletree/pkg/config"
	yerrors "github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/observability"
	"github.com/matzehuels/yuletree/pkg/pipeline"
	"github.com/matzehuels/yuletree/pkg/render"
	"github.com/matzehuels/yuletree/pkg/silhouette"
)

const defaultShutdownTimeout = 10 * time.Second

// Server renders scenes on request. It is safe for concurrent use.
type Server struct {
	runner *pipeline.Runner
	base   pipeline.Options
	spec   atomic.Pointer[silhouette.Spec]
	logger *log.Logger
	router chi.Router
}

// New creates a server rendering with runner. base supplies the defaults
// for every request; its Spec is the initial silhouette. A nil logger
// discards output.
func New(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) (*Server, error) {
	if runner == nil {
		return nil, yerrors.New(yerrors.ErrCodeInvalidInput, "server needs a runner")
	}
	if err := base.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		runner: runner,
		base:   base,
		logger: logger.WithPrefix("http"),
	}
	spec := base.Spec
	s.spec.Store(&spec)
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	r.Get("/", s.handleArtifact(render.FormatHTML))
	r.Get("/tree.svg", s.handleArtifact(render.FormatSVG))
	r.Get("/layout.json", s.handleArtifact(render.FormatJSON))
	r.Get("/messages", s.handleMessages)
	r.Get("/api/messages", s.handleMessages)
	r.Get("/healthz", s.handleHealth)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, yerrors.New(yerrors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Spec returns the silhouette currently served.
func (s *Server) Spec() silhouette.Spec { return *s.spec.Load() }

// SetSpec validates spec and serves it from the next request on.
func (s *Server) SetSpec(spec silhouette.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	s.spec.Store(&spec)
	return nil
}

// Reload loads the silhouette file at path and serves it. On failure the
// previous silhouette stays in place.
func (s *Server) Reload(ctx context.Context, path string) error {
	spec, err := silhouette.Load(path)
	if err == nil {
		err = s.SetSpec(spec)
	}
	observability.Server().OnReload(ctx, path, err)
	if err != nil {
		return err
	}
	s.logger.Info("silhouette reloaded", "path", path, "name", spec.Name)
	return nil
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener, cfg config.ServerConfig) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on cfg.Addr and calls [Server.Serve].
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Addr)
	if err != nil {
		return yerrors.Wrap(yerrors.ErrCodeInvalidConfig, err, "listen on %s", cfg.Addr)
	}
	return s.Serve(ctx, ln, cfg)
}

func (s *Server) handleArtifact(f render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.requestOptions(r, f)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		res, err := s.runner.Render(r.Context(), opts)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		w.Header().Set("Content-Type", f.ContentType())
		if res.HasHit(f) {
			w.Header().Set("X-Cache", "HIT")
		} else {
			w.Header().Set("X-Cache", "MISS")
		}
		w.Write(res.Artifacts[f])
	}
}

// requestOptions copies the base options, applies the current silhouette
// and the query overrides.
func (s *Server) requestOptions(r *http.Request, f render.Format) (pipeline.Options, error) {
	opts := s.base
	opts.Spec = s.Spec()
	opts.Formats = []string{string(f)}

	q := r.URL.Query()
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("static"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, yerrors.Wrap(yerrors.ErrCodeInvalidInput, err, "static=%q", v)
		}
		opts.Static = b
	}
	if v := q.Get("snow"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, yerrors.Wrap(yerrors.ErrCodeInvalidInput, err, "snow=%q", v)
		}
		opts.Snow = b
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, yerrors.Wrap(yerrors.ErrCodeInvalidInput, err, "seed=%q", v)
		}
		opts.Scene.Layout.Seed = seed
	}
	return opts, nil
}

// handleMessages lists the messages. A failing store yields an empty
// array, never an error status.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Messages(r.Context()))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"version":    buildinfo.Version,
		"silhouette": s.Spec().Name,
	})
}

func statusFor(err error) int {
	switch yerrors.GetCode(err) {
	case yerrors.ErrCodeInvalidInput, yerrors.ErrCodeInvalidFormat,
		yerrors.ErrCodeInvalidStyle, yerrors.ErrCodeInvalidSilhouette:
		return http.StatusBadRequest
	case yerrors.ErrCodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: yerrors.UserMessage(err), Code: string(yerrors.GetCode(err))})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
