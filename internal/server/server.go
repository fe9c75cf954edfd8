package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lporras/gedeon/internal/app"
	"github.com/lporras/gedeon/internal/bible"
	"github.com/lporras/gedeon/internal/broadcast"
	"github.com/lporras/gedeon/internal/config"
	"github.com/lporras/gedeon/internal/domain"
)

// appService is the slice of the application layer the HTTP surface needs.
type appService interface {
	GetSchedule(ctx context.Context, scheduleID uuid.UUID) (*domain.Schedule, error)
	ListEntries(ctx context.Context, scheduleID uuid.UUID) ([]app.EntrySummary, error)
	AddEntry(ctx context.Context, scheduleID uuid.UUID, kind string, itemID uuid.UUID) (*app.EntrySummary, error)
	RemoveEntry(ctx context.Context, scheduleID, entryID uuid.UUID) error
	Reorder(ctx context.Context, scheduleID uuid.UUID, orderedIDs []uuid.UUID) error

	PresentEntry(ctx context.Context, scheduleID, entryID uuid.UUID) (any, error)
	Navigate(ctx context.Context, scheduleID uuid.UUID, slideIndex int) (*domain.NavigateCommand, error)
	BlackScreen(ctx context.Context, scheduleID uuid.UUID) *domain.BlackCommand
	PresenterState(scheduleID uuid.UUID) (domain.PresentationState, bool)

	SearchSongs(ctx context.Context, query string) ([]domain.Song, error)
	SearchScriptures(ctx context.Context, query string) ([]domain.Scripture, error)
	BibleBooks(version string) ([]string, error)
	BibleChapters(version, bookTitle string) ([]int, error)
	BibleVerses(version, bookTitle string, chapterNum int) ([]bible.Verse, error)
	CreateScriptureEntry(ctx context.Context, scheduleID uuid.UUID, version, bookTitle string, chapterNum int, verseNums []int) (*app.EntrySummary, error)
}

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app          appService
	hub          *broadcast.Hub
	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, svc appService, hub *broadcast.Hub, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          svc,
		hub:          hub,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
