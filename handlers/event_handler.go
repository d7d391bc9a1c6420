package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"game-with-you/internal/status"
	"game-with-you/services"
)

type EventHandler struct {
	events *services.EventService
	logger *slog.Logger
}

func NewEventHandler(events *services.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: events, logger: logger}
}

func (h *EventHandler) List(e *core.RequestEvent) error {
	events, err := h.events.List(e.Request.Context())
	if err != nil {
		return apiError(h.logger, "list events", err)
	}
	return e.JSON(http.StatusOK, map[string]any{"events": events})
}

func (h *EventHandler) Create(e *core.RequestEvent) error {
	var req services.CreateEventInput
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, err := h.events.Create(e.Request.Context(), req)
	if err != nil {
		return apiError(h.logger, "create event", err)
	}
	return e.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Edit(e *core.RequestEvent) error {
	var req services.EditEventInput
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, err := h.events.Edit(e.Request.Context(), e.Request.PathValue("id"), req)
	if err != nil {
		return apiError(h.logger, "edit event", err)
	}
	return e.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(e *core.RequestEvent) error {
	err := h.events.Delete(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil && !errors.Is(err, status.ErrNotFound) {
		return apiError(h.logger, "delete event", err)
	}
	return e.NoContent(http.StatusNoContent)
}

func (h *EventHandler) Join(e *core.RequestEvent) error {
	var req struct {
		Pseudo string `json:"pseudo"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, joined, err := h.events.Join(e.Request.Context(), e.Request.PathValue("id"), req.Pseudo)
	if err != nil {
		return apiError(h.logger, "join event", err)
	}
	return e.JSON(http.StatusOK, map[string]any{
		"event":  event,
		"joined": joined,
	})
}

func (h *EventHandler) Slots(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, map[string]any{"slots": h.events.Slots()})
}
