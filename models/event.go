package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"game-with-you/internal/status"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Event is a scheduled session, usually born from a ticket.
type Event struct {
	ID           string       `json:"id,omitempty"`
	Jeu          string       `json:"jeu" validate:"required"`
	Date         string       `json:"date" validate:"required"`
	Createur     string       `json:"createur" validate:"required"`
	Participants Participants `json:"participants" validate:"required,min=1,dive,required"`
}

type EventPatch struct {
	Jeu          *string      `json:"jeu,omitempty"`
	Date         *string      `json:"date,omitempty"`
	Participants Participants `json:"participants,omitempty"`
}

func (e Event) Normalize() Event {
	e.Jeu = strings.TrimSpace(e.Jeu)
	e.Date = strings.TrimSpace(e.Date)
	e.Createur = strings.TrimSpace(e.Createur)
	e.Participants = Participants(CleanList(e.Participants))
	return e
}

func (e Event) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", status.ErrMissingFields, err)
	}
	return nil
}

func (e Event) Apply(p EventPatch) Event {
	if p.Jeu != nil {
		e.Jeu = *p.Jeu
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Participants != nil {
		e.Participants = append(Participants(nil), p.Participants...)
	}
	return e
}
