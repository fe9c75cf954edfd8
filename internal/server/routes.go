package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/lporras/gedeon/internal/errors"
)

func (s *Server) registerRoutes() {
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(apperrors.Middleware())

	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Schedule management
	s.echo.GET("/api/schedules/:scheduleID/entries", s.handleListEntries)
	s.echo.POST("/api/schedules/:scheduleID/entries", s.handleAddEntry)
	s.echo.DELETE("/api/schedules/:scheduleID/entries/:entryID", s.handleRemoveEntry)
	s.echo.PUT("/api/schedules/:scheduleID/entries/order", s.handleReorder)
	s.echo.POST("/api/schedules/:scheduleID/scriptures", s.handleCreateScriptureEntry)

	// Presenter control
	s.echo.POST("/api/schedules/:scheduleID/present", s.handlePresent)
	s.echo.POST("/api/schedules/:scheduleID/navigate", s.handleNavigate)
	s.echo.POST("/api/schedules/:scheduleID/black", s.handleBlack)
	s.echo.GET("/api/schedules/:scheduleID/presenter", s.handlePresenterState)

	// Catalog search and bible browser
	s.echo.GET("/api/songs", s.handleSearchSongs)
	s.echo.GET("/api/scriptures", s.handleSearchScriptures)
	s.echo.GET("/api/bibles/:version/books", s.handleBibleBooks)
	s.echo.GET("/api/bibles/:version/books/:book/chapters", s.handleBibleChapters)
	s.echo.GET("/api/bibles/:version/books/:book/chapters/:chapter/verses", s.handleBibleVerses)

	// Display WebSocket (public)
	s.echo.GET("/ws/display/:scheduleID", s.handleDisplaySocket)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
