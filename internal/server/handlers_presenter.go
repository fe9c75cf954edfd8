package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/lporras/gedeon/internal/errors"
)

type presentRequest struct {
	EntryID uuid.UUID `json:"entry_id"`
}

func (s *Server) handlePresent(c echo.Context) error {
	scheduleID, err := scheduleIDParam(c)
	if err != nil {
		return err
	}

	var req presentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.EntryID == uuid.Nil {
		return apperrors.ValidationError("entry_id is required")
	}

	payload, err := s.app.PresentEntry(c.Request().Context(), scheduleID, req.EntryID)
	if err != nil {
		return mapDomainError(err, "failed to present entry")
	}

	if err := c.JSON(http.StatusOK, payload); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type navigateRequest struct {
	SlideIndex int `json:"slide_index"`
}

func (s *Server) handleNavigate(c echo.Context) error {
	scheduleID, err := scheduleIDParam(c)
	if err != nil {
		return err
	}

	var req navigateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	payload, err := s.app.Navigate(c.Request().Context(), scheduleID, req.SlideIndex)
	if err != nil {
		return mapDomainError(err, "failed to navigate")
	}

	if err := c.JSON(http.StatusOK, payload); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleBlack(c echo.Context) error {
	scheduleID, err := scheduleIDParam(c)
	if err != nil {
		return err
	}

	payload := s.app.BlackScreen(c.Request().Context(), scheduleID)

	if err := c.JSON(http.StatusOK, payload); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// presenterStateResponse is the read model for displays reconnecting
// mid-service and for the control UI's initial render.
type presenterStateResponse struct {
	ScheduleID    uuid.UUID  `json:"schedule_id"`
	ActiveEntryID *uuid.UUID `json:"active_entry_id,omitempty"`
	SlideIndex    int        `json:"slide_index"`
	ChunkCount    int        `json:"chunk_count"`
	Blacked       bool       `json:"blacked"`
	Seq           uint64     `json:"seq"`
}

func (s *Server) handlePresenterState(c echo.Context) error {
	scheduleID, err := scheduleIDParam(c)
	if err != nil {
		return err
	}

	state, ok := s.app.PresenterState(scheduleID)
	if !ok {
		return apperrors.NotFoundError("no presentation state for schedule").
			WithField("schedule_id", scheduleID.String())
	}

	resp := presenterStateResponse{
		ScheduleID:    state.ScheduleID,
		ActiveEntryID: state.ActiveEntryID,
		SlideIndex:    state.SlideIndex,
		ChunkCount:    state.ChunkCount,
		Blacked:       state.Blacked,
		Seq:           state.Seq,
	}
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
