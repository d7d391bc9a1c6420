package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"game-with-you/config"
	"game-with-you/internal/status"
	"game-with-you/models"
	"game-with-you/store"
)

type EventService struct {
	store  store.Store
	slots  config.SlotCatalog
	logger *slog.Logger
}

func NewEventService(s store.Store, slots config.SlotCatalog, logger *slog.Logger) *EventService {
	return &EventService{store: s, slots: slots, logger: logger}
}

// EventView is an event plus the slot the edit form starts on.
type EventView struct {
	models.Event
	FormDate string `json:"form_date"`
}

type CreateEventInput struct {
	Jeu          string   `json:"jeu"`
	Date         string   `json:"date"`
	Createur     string   `json:"createur"`
	Participants []string `json:"participants"`
}

// EditEventInput takes participants as the comma separated text of the form.
type EditEventInput struct {
	Jeu          *string `json:"jeu"`
	Date         *string `json:"date"`
	Participants *string `json:"participants"`
}

func (s *EventService) List(ctx context.Context) ([]EventView, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{Event: e, FormDate: s.FormDate(e.Date)})
	}
	return views, nil
}

func (s *EventService) Slots() config.SlotCatalog {
	return s.slots
}

// FormDate returns date when it is a catalog slot, else the first slot.
func (s *EventService) FormDate(date string) string {
	return s.slots.Default(date)
}

// Create schedules an event directly. The creator always comes first among
// the participants.
func (s *EventService) Create(ctx context.Context, in CreateEventInput) (models.Event, error) {
	participants := append(models.Participants{strings.TrimSpace(in.Createur)}, in.Participants...)
	event := models.Event{
		Jeu:          in.Jeu,
		Date:         in.Date,
		Createur:     in.Createur,
		Participants: participants,
	}.Normalize()
	event.Participants = event.Participants.Dedupe()
	if err := event.Validate(); err != nil {
		return models.Event{}, err
	}

	created, err := s.store.InsertEvent(ctx, event)
	if err != nil {
		return models.Event{}, fmt.Errorf("insert event: %w", err)
	}
	s.logger.Info("event created", "event_id", created.ID, "jeu", created.Jeu, "date", created.Date)
	return created, nil
}

func (s *EventService) Edit(ctx context.Context, id string, in EditEventInput) (models.Event, error) {
	patch := models.EventPatch{Jeu: trimmed(in.Jeu), Date: trimmed(in.Date)}
	if in.Participants != nil {
		patch.Participants = models.ParseParticipantsText(*in.Participants)
	}

	current, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return models.Event{}, fmt.Errorf("load event: %w", err)
	}
	if err := current.Apply(patch).Normalize().Validate(); err != nil {
		return models.Event{}, err
	}

	updated, err := s.store.UpdateEvent(ctx, id, patch)
	if err != nil {
		return models.Event{}, fmt.Errorf("update event: %w", err)
	}
	s.logger.Info("event edited", "event_id", id)
	return updated, nil
}

// Join adds pseudo to the participants. changed is false when the name was
// already listed.
func (s *EventService) Join(ctx context.Context, id, pseudo string) (models.Event, bool, error) {
	pseudo = strings.TrimSpace(pseudo)
	if pseudo == "" {
		return models.Event{}, false, status.ErrMissingPseudo
	}

	event, changed, err := s.store.AppendParticipant(ctx, id, pseudo)
	if err != nil {
		return models.Event{}, false, fmt.Errorf("join event: %w", err)
	}
	if changed {
		s.logger.Info("participant joined", "event_id", id, "pseudo", pseudo)
	}
	return event, changed, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.Info("event deleted", "event_id", id)
	return nil
}
