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

type TicketHandler struct {
	tickets *services.TicketService
	matcher *services.Matcher
	logger  *slog.Logger
}

func NewTicketHandler(tickets *services.TicketService, matcher *services.Matcher, logger *slog.Logger) *TicketHandler {
	return &TicketHandler{
		tickets: tickets,
		matcher: matcher,
		logger:  logger,
	}
}

func (h *TicketHandler) List(e *core.RequestEvent) error {
	tickets, err := h.tickets.List(e.Request.Context())
	if err != nil {
		return apiError(h.logger, "list tickets", err)
	}
	return e.JSON(http.StatusOK, map[string]any{"tickets": tickets})
}

func (h *TicketHandler) Create(e *core.RequestEvent) error {
	var req services.CreateTicketInput
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ticket, err := h.tickets.Create(e.Request.Context(), req)
	if err != nil {
		return apiError(h.logger, "create ticket", err)
	}
	return e.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) Edit(e *core.RequestEvent) error {
	var req services.EditTicketInput
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ticket, err := h.tickets.Edit(e.Request.Context(), e.Request.PathValue("id"), req)
	if err != nil {
		return apiError(h.logger, "edit ticket", err)
	}
	return e.JSON(http.StatusOK, ticket)
}

// Delete succeeds when the ticket is already gone.
func (h *TicketHandler) Delete(e *core.RequestEvent) error {
	err := h.tickets.Delete(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil && !errors.Is(err, status.ErrNotFound) {
		return apiError(h.logger, "delete ticket", err)
	}
	return e.NoContent(http.StatusNoContent)
}

// ProposeSession answers a ticket with the joiner's slots. A match turns the
// ticket into an event.
func (h *TicketHandler) ProposeSession(e *core.RequestEvent) error {
	var req struct {
		Pseudo string   `json:"pseudo"`
		Dates  []string `json:"dates"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	event, err := h.matcher.ProposeSessionForTicket(e.Request.Context(), e.Request.PathValue("id"), req.Pseudo, req.Dates)
	if err != nil {
		return apiError(h.logger, "propose session", err)
	}
	return e.JSON(http.StatusCreated, event)
}
