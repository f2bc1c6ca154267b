// Package admind exposes a read-only admin surface (status, health and
// Prometheus metrics) over an IRC server.
package admind

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kennydo/mochizuki"
)

// Server wraps an IRC server with an HTTP admin surface.
type Server struct {
	*mochizuki.Server

	echoServer *echo.Echo
	onceSetup  sync.Once
}

// New creates an admin surface over the given IRC server.
func New(s *mochizuki.Server) *Server {
	return &Server{Server: s}
}

func (s *Server) setup() {
	s.onceSetup.Do(func() {
		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())
		s.route(e)
		s.echoServer = e
	})
}

func (s *Server) route(e *echo.Echo) {
	e.GET("/healthz", s.handleHealthz)
	e.GET("/status", s.handleStatus)
	e.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(mochizuki.MetricsRegistry, promhttp.HandlerOpts{})))
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) handleStatus(c echo.Context) error {
	snapshot := s.Stats()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"server":            s.Name(),
		"created":           s.Created(),
		"uptime_seconds":    int64(snapshot.Uptime.Seconds()),
		"clients":           s.ClientCount(),
		"connections":       snapshot.Connections,
		"max_connections":   snapshot.MaxConnections,
		"messages_sent":     snapshot.MessagesSent,
		"messages_received": snapshot.MessagesReceived,
	})
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	s.setup()
	return s.echoServer
}

// StartAdminServer starts the HTTP listener on the given address. It blocks
// until the server shuts down.
func (s *Server) StartAdminServer(addr string) error {
	s.setup()
	return s.echoServer.Start(addr)
}

// StopAdminServer gracefully shuts the HTTP listener down.
func (s *Server) StopAdminServer(ctx context.Context) error {
	if s.echoServer == nil {
		return nil
	}
	return s.echoServer.Shutdown(ctx)
}
