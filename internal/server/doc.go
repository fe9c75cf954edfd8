// Package server implements the HTTP server using Echo framework.
//
// Routes: schedule management (entries CRUD + reorder), presenter control
// (present/navigate/black), catalog search, bible browser, display WebSocket.
// Handlers split by domain: handlers_schedule.go, handlers_presenter.go,
// handlers_catalog.go, handlers_display.go, handlers_health.go.
package server
