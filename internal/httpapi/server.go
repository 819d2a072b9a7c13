// Package httpapi exposes the sprint, card, notification and weekly use
// cases over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Subscriber hands out per-channel push streams.
type Subscriber interface {
	Subscribe(channel string) (<-chan []byte, func())
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the use cases the handlers call.
type Deps struct {
	Sprints       service.SprintService
	Cards         service.CardService
	Todos         service.TodoService
	Users         service.UserService
	Notifications service.NotificationService
	Weekly        service.WeeklyService
	Push          Subscriber
	DB            Pinger
	Clock         service.Clock
	Logger        *slog.Logger
}

type Options struct {
	JWTSecret   []byte
	CORSOrigins []string
	// PingInterval spaces the keep-alive frames of the push stream.
	PingInterval time.Duration
}

type handler struct {
	Deps
	pingInterval time.Duration
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(d Deps, o Options) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if o.PingInterval <= 0 {
		o.PingInterval = 25 * time.Second
	}
	h := &handler{Deps: d, pingInterval: o.PingInterval}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Logger), corsMiddleware(o.CORSOrigins))

	r.GET("/api/healthz", h.health)

	api := r.Group("/api", JWTAuth(o.JWTSecret, d.Users))
	api.GET("/sprints/:id/next", h.nextSprint)
	api.POST("/sprints/:id/finalize", h.finalizeSprint)

	api.POST("/cards", h.createCard)
	api.PUT("/cards/:id", h.updateCard)
	api.DELETE("/cards/:id", h.deleteCard)
	api.GET("/cards/:id/todos", h.listTodos)
	api.POST("/cards/:id/todos", h.createTodo)
	api.PATCH("/todos/:id", h.updateTodo)
	api.DELETE("/todos/:id", h.deleteTodo)

	api.GET("/notifications", h.listNotifications)
	api.GET("/notifications/unread-count", h.unreadCounts)
	api.GET("/notifications/stream", h.stream)
	api.POST("/notifications/read-all", h.markAllRead)
	api.POST("/notifications/:id/read", h.markRead)

	api.GET("/weekly/status", h.weekStatus)
	api.POST("/weekly/close", h.closeWeek)
	api.POST("/weekly/open", h.openWeek)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (h *handler) health(c *gin.Context) {
	if h.DB != nil {
		if err := h.DB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Server runs the router until its context ends.
type Server struct {
	http   *http.Server
	logger *slog.Logger
}

func NewServer(addr string, h http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is done, then drains connections for up to ten
// seconds.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
