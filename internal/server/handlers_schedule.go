package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lporras/gedeon/internal/domain"
	apperrors "github.com/lporras/gedeon/internal/errors"
)

// mapDomainError translates domain sentinels into structured HTTP errors.
func mapDomainError(err error, message string) error {
	switch {
	case errors.Is(err, domain.ErrScheduleNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrSongNotFound),
		errors.Is(err, domain.ErrScriptureNotFound),
		errors.Is(err, domain.ErrImageNotFound):
		return apperrors.NotFoundError(err.Error())
	case errors.Is(err, domain.ErrUnknownItemKind),
		errors.Is(err, domain.ErrDuplicateReorder):
		return apperrors.ValidationError(err.Error())
	case errors.Is(err, domain.ErrNoActiveEntry),
		errors.Is(err, domain.ErrSlideOutOfRange):
		return apperrors.InvalidStateError(err.Error())
	default:
		return apperrors.InternalError(message, err)
	}
}

func scheduleIDParam(c echo.Context) (uuid.UUID, error) {
	raw := c.Param("scheduleID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid schedule ID").WithField("schedule_id", raw)
	}
	return id, nil
}

func (s *Server) handleListEntries(c echo.Context) error {
	scheduleID, err := scheduleIDParam(c)
	if err != nil {
		return err
	}

	entries, err := s.app.ListEntries(c.Request().Context(), scheduleID)
	if err != nil {
		return mapDomainError(err, "failed to list entries")
	}

	if err := c.JSON(http.StatusOK, entries); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type addEntryRequest struct {
	ItemKind string    `json:"item_kind"`
	ItemID   uuid.UUID `json:"item_id"`
}

func (s *Server) handleAddEntry(c echo.Context) error {
	scheduleID, err := scheduleIDParam(c)
	if err != nil {
		return err
	}

	var req addEntryRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.ItemID == uuid.Nil {
		return apperrors.ValidationError("item_id is required")
	}

	summary, err := s.app.AddEntry(c.Request().Context(), scheduleID, req.ItemKind, req.ItemID)
	if err != nil {
		return mapDomainError(err, "failed to add entry")
	}

	if err := c.JSON(http.StatusCreated, summary); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleRemoveEntry(c echo.Context) error {
	scheduleID, err := scheduleIDParam(c)
	if err != nil {
		return err
	}

	entryIDStr := c.Param("entryID")
	entryID, err := uuid.Parse(entryIDStr)
	if err != nil {
		return apperrors.ValidationError("invalid entry ID").WithField("entry_id", entryIDStr)
	}

	if err := s.app.RemoveEntry(c.Request().Context(), scheduleID, entryID); err != nil {
		return mapDomainError(err, "failed to remove entry")
	}

	return c.NoContent(http.StatusNoContent)
}

type reorderRequest struct {
	EntryIDs []uuid.UUID `json:"entry_ids"`
}

func (s *Server) handleReorder(c echo.Context) error {
	scheduleID, err := scheduleIDParam(c)
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.EntryIDs) == 0 {
		return apperrors.ValidationError("entry_ids must not be empty")
	}

	if err := s.app.Reorder(c.Request().Context(), scheduleID, req.EntryIDs); err != nil {
		return mapDomainError(err, "failed to reorder entries")
	}

	if err := c.JSON(http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type createScriptureRequest struct {
	Version string `json:"version"`
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verses  []int  `json:"verses"`
}

func (s *Server) handleCreateScriptureEntry(c echo.Context) error {
	scheduleID, err := scheduleIDParam(c)
	if err != nil {
		return err
	}

	var req createScriptureRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Book == "" || req.Chapter < 1 {
		return apperrors.ValidationError("book and chapter are required")
	}
	if len(req.Verses) == 0 {
		return apperrors.ValidationError("verses must not be empty")
	}

	summary, err := s.app.CreateScriptureEntry(c.Request().Context(), scheduleID, req.Version, req.Book, req.Chapter, req.Verses)
	if err != nil {
		return mapDomainError(err, "failed to create scripture entry")
	}

	if err := c.JSON(http.StatusCreated, summary); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
