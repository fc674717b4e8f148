// Package api provides the HTTP server for clawd-guide.
//
// Routes:
//
//	ANY /health*   → {"status":"setup-required"}
//	ANY /*         → setup guide page (rendered template or fallback page)
//
// Every response is 200; an unreadable template is answered with the
// fallback page, not an error status.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/clawdbot/clawd-guide/internal/config"
	"github.com/clawdbot/clawd-guide/internal/guide"
	"github.com/clawdbot/clawd-guide/internal/metrics"
)

// shutdownTimeout bounds how long in-flight requests get once Run's
// context is cancelled.
const shutdownTimeout = 5 * time.Second

// Server is the clawd-guide HTTP server.
type Server struct {
	cfg     *config.Config
	loader  guide.Loader
	metrics *metrics.Collector
	handler http.Handler

	// Out receives the startup line. Defaults to io.Discard when nil.
	Out io.Writer
}

// NewServer creates a Server with all routes registered.
func NewServer(cfg *config.Config, loader guide.Loader, mc *metrics.Collector) *Server {
	s := &Server{
		cfg:     cfg,
		loader:  loader,
		metrics: mc,
	}
	s.handler = http.HandlerFunc(s.handle)
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on addr (e.g. "0.0.0.0:18789") and serves until ctx is
// cancelled, then shuts down gracefully. A bind failure is returned as is.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler: s.handler,
		// Bound header reads and idle keep-alives; the body is never read.
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	out := s.Out
	if out == nil {
		out = io.Discard
	}
	port := s.cfg.Port
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}
	fmt.Fprintf(out, "Setup guide available on port %d.\n", port)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handle serves every request directly, with no ServeMux in front, so paths
// are never cleaned or redirected. /health is matched on the path as sent:
// /health/../x is a health check, /%68ealth is not.
func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.EscapedPath(), "/health") {
		s.handleHealth(w, r)
		return
	}
	s.handleGuide(w, r)
}

// ─────────────────────────────────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealth()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "setup-required",
	})
}

// ─────────────────────────────────────────────────────────────────────────
// Guide
// ─────────────────────────────────────────────────────────────────────────

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	var html string
	tmpl, err := s.loader.Load(r.Context())
	if err != nil {
		html = guide.Fallback(s.cfg.MissingReason)
	} else {
		html = guide.Render(tmpl, s.cfg.AuthChoice, s.cfg.MissingReason)
	}
	s.metrics.RecordGuide(err != nil)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html)
}
