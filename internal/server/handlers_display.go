package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/lporras/gedeon/internal/domain"
	"github.com/lporras/gedeon/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Displays are public screens addressed by schedule ID; any origin may
	// connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleDisplaySocket(c echo.Context) error {
	scheduleID, err := scheduleIDParam(c)
	if err != nil {
		return err
	}

	log := logging.WithSchedule(scheduleID.String())

	// Reject unknown schedules before upgrading. Existence only: a dangling
	// entry in the schedule must not lock displays out.
	ctx := c.Request().Context()
	if _, err := s.app.GetSchedule(ctx, scheduleID); err != nil {
		if errors.Is(err, domain.ErrScheduleNotFound) {
			return c.String(http.StatusNotFound, "Schedule not found")
		}
		log.Error("Failed to load schedule for display", "error", err)
		return c.String(http.StatusInternalServerError, "Internal error")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	topic := domain.TopicFor(scheduleID)
	if err := s.hub.Register(topic, conn); err != nil {
		log.Warn("Failed to register display", "topic", topic, "error", err)
		return nil
	}

	// Read pump, blocks until the connection closes. Displays never send
	// application messages; the loop only detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.hub.Unregister(topic, conn)

	return nil //nolint:nilerr // ReadMessage err is block-scoped; outer err is nil
}
