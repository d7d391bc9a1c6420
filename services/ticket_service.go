package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"game-with-you/models"
	"game-with-you/store"
)

type TicketService struct {
	store  store.Store
	logger *slog.Logger
}

func NewTicketService(s store.Store, logger *slog.Logger) *TicketService {
	return &TicketService{store: s, logger: logger}
}

// CreateTicketInput carries the ticket form. Dates may come as a list or as
// one slot per line in DatesText; both are merged in that order.
type CreateTicketInput struct {
	Pseudo    string   `json:"pseudo"`
	Jeu       string   `json:"jeu"`
	Dates     []string `json:"dates"`
	DatesText string   `json:"dates_text"`
}

type EditTicketInput struct {
	Pseudo    *string  `json:"pseudo"`
	Jeu       *string  `json:"jeu"`
	Dates     []string `json:"dates"`
	DatesText *string  `json:"dates_text"`
}

func (s *TicketService) List(ctx context.Context) ([]models.Ticket, error) {
	return s.store.ListTickets(ctx)
}

func (s *TicketService) Create(ctx context.Context, in CreateTicketInput) (models.Ticket, error) {
	dates := append(append([]string(nil), in.Dates...), models.ParseDates(in.DatesText)...)
	ticket := models.Ticket{Pseudo: in.Pseudo, Jeu: in.Jeu, Dates: dates}.Normalize()
	if err := ticket.Validate(); err != nil {
		return models.Ticket{}, err
	}

	created, err := s.store.InsertTicket(ctx, ticket)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("insert ticket: %w", err)
	}
	s.logger.Info("ticket created", "ticket_id", created.ID, "pseudo", created.Pseudo, "jeu", created.Jeu)
	return created, nil
}

// Edit applies the given fields. The edited ticket must still be complete.
func (s *TicketService) Edit(ctx context.Context, id string, in EditTicketInput) (models.Ticket, error) {
	patch := models.TicketPatch{Pseudo: trimmed(in.Pseudo), Jeu: trimmed(in.Jeu)}
	if in.Dates != nil || in.DatesText != nil {
		patch.Dates = models.CleanList(in.Dates)
		if in.DatesText != nil {
			patch.Dates = append(patch.Dates, models.ParseDates(*in.DatesText)...)
		}
	}

	current, err := s.store.GetTicket(ctx, id)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("load ticket: %w", err)
	}
	if err := current.Apply(patch).Normalize().Validate(); err != nil {
		return models.Ticket{}, err
	}

	updated, err := s.store.UpdateTicket(ctx, id, patch)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("update ticket: %w", err)
	}
	s.logger.Info("ticket edited", "ticket_id", id)
	return updated, nil
}

func (s *TicketService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTicket(ctx, id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	s.logger.Info("ticket deleted", "ticket_id", id)
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

