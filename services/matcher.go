package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"game-with-you/internal/status"
	"game-with-you/models"
	"game-with-you/monitoring"
	"game-with-you/store"
)

// Matcher turns a ticket into an event when a joiner shares one of its slots.
type Matcher struct {
	store  store.Store
	logger *slog.Logger
}

func NewMatcher(s store.Store, logger *slog.Logger) *Matcher {
	return &Matcher{store: s, logger: logger}
}

// ProposeSession converts ticket into an event scheduled on the first ticket
// slot the joiner also selected. Nothing is written on a validation error.
func (m *Matcher) ProposeSession(ctx context.Context, ticket models.Ticket, joinerPseudo string, joinerDates []string) (models.Event, error) {
	event, err := m.propose(ctx, ticket, joinerPseudo, joinerDates)
	monitoring.TrackMatch(err)

	switch {
	case err == nil:
		m.logger.Info("session created",
			"ticket_id", ticket.ID,
			"event_id", event.ID,
			"jeu", event.Jeu,
			"date", event.Date,
		)
	case status.IsValidation(err):
		m.logger.Debug("session proposal rejected", "ticket_id", ticket.ID, "reason", err)
	default:
		m.logger.Error("session proposal failed", "ticket_id", ticket.ID, "error", err)
	}
	return event, err
}

// ProposeSessionForTicket loads the ticket by id before proposing. Input is
// checked first so an empty form never touches the store.
func (m *Matcher) ProposeSessionForTicket(ctx context.Context, ticketID, joinerPseudo string, joinerDates []string) (models.Event, error) {
	if _, _, err := checkJoiner(joinerPseudo, joinerDates); err != nil {
		monitoring.TrackMatch(err)
		return models.Event{}, err
	}
	ticket, err := m.store.GetTicket(ctx, ticketID)
	if err != nil {
		monitoring.TrackMatch(err)
		return models.Event{}, fmt.Errorf("load ticket: %w", err)
	}
	return m.ProposeSession(ctx, ticket, joinerPseudo, joinerDates)
}

func (m *Matcher) propose(ctx context.Context, ticket models.Ticket, joinerPseudo string, joinerDates []string) (models.Event, error) {
	pseudo, dates, err := checkJoiner(joinerPseudo, joinerDates)
	if err != nil {
		return models.Event{}, err
	}

	slot, ok := ChooseSlot(ticket.Dates, dates)
	if !ok {
		return models.Event{}, status.ErrNoCommonSlot
	}

	event := models.Event{
		Jeu:          ticket.Jeu,
		Date:         slot,
		Createur:     ticket.Pseudo,
		Participants: models.Participants{ticket.Pseudo, pseudo}.Dedupe(),
	}
	created, err := m.store.ConvertTicket(ctx, ticket.ID, event)
	if err != nil {
		return models.Event{}, fmt.Errorf("convert ticket %s: %w", ticket.ID, err)
	}
	return created, nil
}

func checkJoiner(pseudo string, dates []string) (string, []string, error) {
	pseudo = strings.TrimSpace(pseudo)
	if pseudo == "" {
		return "", nil, status.ErrMissingPseudo
	}
	dates = models.CleanList(dates)
	if len(dates) == 0 {
		return "", nil, status.ErrNoDatesSelected
	}
	return pseudo, dates, nil
}

// ChooseSlot returns the first ticket date that the joiner also picked.
func ChooseSlot(ticketDates, joinerDates []string) (string, bool) {
	for _, d := range ticketDates {
		if slices.Contains(joinerDates, d) {
			return d, true
		}
	}
	return "", false
}
