// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET /healthz
//	GET /v1/layouts
//	GET /v1/layouts/{name}/render
//	GET /v1/layouts/{name}/transform
//	GET /v1/layouts/{name}/convert?x=..&y=..
//	GET /v1/layouts/{name}/specs/{section}
//
// Render parameters are passed as query values (see [ParseOptions]) and
// fall back to the server defaults.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/combview/pkg/buildinfo"
	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/geometry"
	"github.com/matzehuels/combview/pkg/observability"
	"github.com/matzehuels/combview/pkg/pipeline"
)

// Response headers set by the render route.
const (
	HeaderRenderID  = "X-Render-ID"
	HeaderTransform = "X-Transform"
	HeaderCache     = "X-Cache"
)

// requestTimeout bounds a single request.
const requestTimeout = 60 * time.Second

// Server serves renders of the layouts known to its runner.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
}

// New creates a server. defaults supplies render parameters missing from
// a request.
func New(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, defaults: defaults, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/render", s.handleRender)
			r.Get("/transform", s.handleTransform)
			r.Get("/convert", s.handleConvert)
			r.Get("/specs/{section}", s.handleSpecs)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr, "version", buildinfo.Version)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.runner.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"layouts": names})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := ParseOptions(r.URL.Query(), s.defaults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Render(r.Context(), chi.URLParam(r, "name"), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	t, err := json.Marshal(res.Transform)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cacheStatus := "miss"
	if res.CacheHit {
		cacheStatus = "hit"
	}
	h := w.Header()
	h.Set("Content-Type", res.Format.ContentType())
	h.Set(HeaderRenderID, res.RenderID)
	h.Set(HeaderTransform, string(t))
	h.Set(HeaderCache, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	opts, err := ParseOptions(r.URL.Query(), s.defaults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.runner.Transform(r.Context(), chi.URLParam(r, "name"), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// convertResponse is the body of the convert route.
type convertResponse struct {
	X         float64            `json:"x"`
	Y         float64            `json:"y"`
	Col       int                `json:"col"`
	Row       int                `json:"row"`
	Inside    bool               `json:"inside"`
	Transform geometry.Transform `json:"transform"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := requiredFloat(q, "x")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	y, err := requiredFloat(q, "y")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := ParseOptions(q, s.defaults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.runner.Transform(r.Context(), chi.URLParam(r, "name"), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	col, row := geometry.ConvertToImageCoordinates(t, x, y)
	writeJSON(w, http.StatusOK, convertResponse{
		X: x, Y: y,
		Col: col, Row: row,
		Inside:    t.Contains(t.PhysicalToImage(x, y)),
		Transform: t,
	})
}

func (s *Server) handleSpecs(w http.ResponseWriter, r *http.Request) {
	v, err := s.runner.Specs(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "section"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidName, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeLayoutNotFound:
		return http.StatusNotFound
	case errors.ErrCodeLayoutParse, errors.ErrCodeInvalidLayout, errors.ErrCodeDegenerateLayout:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(code),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		observability.HTTP().OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(ctx); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnResponse(ctx, r.Method, route, status, d)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", d)
	})
}
