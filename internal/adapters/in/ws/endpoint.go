// Package ws serves the live-update WebSocket endpoints. Each connection
// joins exactly one realtime group and receives every event delivered to it.
package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// ErrEndpointClosed is returned for upgrades attempted after Shutdown.
var ErrEndpointClosed = errors.New("subscription endpoint is shut down")

// Config tunes every connection served by an Endpoint.
type Config struct {
	// SendBuffer is the number of frames queued per connection before events
	// are dropped for it.
	SendBuffer   int
	WriteTimeout time.Duration
	PingInterval time.Duration
}

// DefaultConfig returns the settings used for zero Config fields.
func DefaultConfig() Config {
	return Config{
		SendBuffer:   64,
		WriteTimeout: 5 * time.Second,
		PingInterval: 30 * time.Second,
	}
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used by Register.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// Endpoint upgrades viewer requests and keeps their connections subscribed.
type Endpoint struct {
	registry *realtime.GroupRegistry
	cfg      Config
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu       sync.Mutex
	stopping bool
	stop     chan struct{}
	sessions sync.WaitGroup
}

// NewEndpoint creates an Endpoint that subscribes connections in registry.
func NewEndpoint(registry *realtime.GroupRegistry, cfg Config, logger *slog.Logger) *Endpoint {
	defaults := DefaultConfig()
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = defaults.SendBuffer
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaults.PingInterval
	}

	return &Endpoint{
		registry: registry,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		logger: logger.With("component", "ws_endpoint"),
		stop:   make(chan struct{}),
	}
}

// Register mounts the dashboard and route-detail endpoints. The trailing
// slash is optional on both.
func (e *Endpoint) Register(router EchoRouter) {
	router.GET("/ws/dashboard", e.Dashboard)
	router.GET("/ws/dashboard/", e.Dashboard)
	router.GET("/ws/routes/:id", e.Route)
	router.GET("/ws/routes/:id/", e.Route)
}

// Dashboard subscribes the caller to every route mutation.
func (e *Endpoint) Dashboard(c echo.Context) error {
	return e.subscribe(c, realtime.Dashboard)
}

// Route subscribes the caller to one route and its orders.
func (e *Endpoint) Route(c echo.Context) error {
	id, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "route id must be a positive integer",
		})
	}
	return e.subscribe(c, realtime.RouteGroup(id))
}

// Shutdown closes every open connection with a going-away frame and waits
// for their cleanup to finish or for ctx to expire.
func (e *Endpoint) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	if !e.stopping {
		e.stopping = true
		close(e.stop)
	}
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.sessions.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Endpoint) subscribe(c echo.Context, group realtime.Group) error {
	if !e.acquire() {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{
			Code:    http.StatusServiceUnavailable,
			Message: ErrEndpointClosed.Error(),
		})
	}
	defer e.sessions.Done()

	// membership precedes the handshake so that nothing committed after the
	// client sees 101 is missed
	s := newSession(group, e.registry, e.cfg, e.logger)
	s.join()

	conn, err := e.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.abandon()
		// the upgrader has already written the error response
		e.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "group", group, "error", err)
		return nil
	}

	s.run(conn, e.stop)
	return nil
}

// acquire registers a session unless Shutdown has started.
func (e *Endpoint) acquire() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopping {
		return false
	}
	e.sessions.Add(1)
	return true
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
