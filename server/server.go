// Package server publishes a documentation site over HTTP: the rendered
// reference pages, the sidebar as JSON or YAML, health and metrics.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/oasnav/config"
	"github.com/vitalvas/oasnav/pages"
	"github.com/vitalvas/oasnav/sidebar"
)

// Server serves the current site. The site can be replaced at any time
// with SetSite or Reload; in-flight requests keep the site they started
// with.
type Server struct {
	router  chi.Router
	site    atomic.Pointer[pages.Site]
	cfg     config.ServerConfig
	log     *slog.Logger
	metrics *Metrics
}

// New creates a server for site. A nil site answers 503 until one is set.
func New(cfg config.ServerConfig, site *pages.Site, log *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		log:     log,
		metrics: NewMetrics(),
	}
	if site != nil {
		s.SetSite(site)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	pageCache := "no-cache"
	if s.cfg.CacheMaxAge > 0 {
		pageCache = "public, max-age=" + strconv.Itoa(int(s.cfg.CacheMaxAge/time.Second))
	}

	r := chi.NewRouter()
	r.Use(RequestID(false))
	r.Use(Instrument(s.metrics))
	r.Use(RequestLogger(s.log))
	r.Use(Recovery(s.log))
	r.Use(middleware.GetHead)
	r.Use(SecurityHeaders())
	r.Use(CacheControl(
		CacheRule{ContentType: "text/html", Value: pageCache},
		CacheRule{ContentType: "application/json", Value: "no-cache"},
		CacheRule{ContentType: "application/yaml", Value: "no-cache"},
	))

	r.Get("/healthz", s.handleHealth)
	r.Get("/sidebar.json", s.handleSidebarJSON)
	r.Get("/sidebar.yaml", s.handleSidebarYAML)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/*", s.handlePage)

	s.router = r
}

// Site returns the site currently served.
func (s *Server) Site() *pages.Site {
	return s.site.Load()
}

// SetSite replaces the site served. A nil site takes the server back to
// answering 503.
func (s *Server) SetSite(site *pages.Site) {
	s.site.Store(site)
	if site != nil {
		s.metrics.buildSucceeded(site.Len())
	}
}

// Reload rebuilds the site from configs and swaps it in. On failure the
// previous site keeps being served and the error is returned.
func (s *Server) Reload(ctx context.Context, configs []sidebar.Config) error {
	site, err := BuildSite(ctx, configs)
	if err != nil {
		s.metrics.buildFailed()
		s.log.Error("site rebuild failed, keeping previous site", "error", err)
		return err
	}

	s.SetSite(site)
	s.log.Info("site rebuilt", "schemas", len(site.Groups), "pages", site.Len())
	return nil
}

// BuildSite loads the document of every configuration, in order, and
// builds the site.
func BuildSite(ctx context.Context, configs []sidebar.Config) (*pages.Site, error) {
	schemas := make([]sidebar.Schema, 0, len(configs))
	for _, cfg := range configs {
		schema, err := sidebar.LoadSchema(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", cfg.Schema, err)
		}
		schemas = append(schemas, schema)
	}
	return pages.Build(schemas)
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	site := s.Site()

	status := http.StatusOK
	body := map[string]any{"status": "ok"}
	if site == nil {
		status = http.StatusServiceUnavailable
		body["status"] = "starting"
	} else {
		body["schemas"] = len(site.Groups)
		body["pages"] = site.Len()
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, status, body)
}

func (s *Server) handleSidebarJSON(w http.ResponseWriter, _ *http.Request) {
	site, ok := s.currentSite(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, site.Groups)
}

func (s *Server) handleSidebarYAML(w http.ResponseWriter, _ *http.Request) {
	site, ok := s.currentSite(w)
	if !ok {
		return
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(site.Groups); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	_ = enc.Close()

	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	site, ok := s.currentSite(w)
	if !ok {
		return
	}

	href := sidebar.StripLeadingAndTrailingSlashes(chi.URLParam(r, "*"))
	if href == "" {
		hrefs := site.Hrefs()
		if len(hrefs) == 0 {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.Redirect(w, r, "/"+hrefs[0], http.StatusFound)
		return
	}

	var buf bytes.Buffer
	if err := site.Render(&buf, href); err != nil {
		if errors.Is(err, pages.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error("render page", "href", href, "request_id", RequestIDFromContext(r.Context()), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) currentSite(w http.ResponseWriter) (*pages.Site, bool) {
	site := s.Site()
	if site == nil {
		http.Error(w, "site not built yet", http.StatusServiceUnavailable)
		return nil, false
	}
	return site, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
