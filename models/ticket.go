package models

import (
	"fmt"
	"strings"

	"game-with-you/internal/status"
)

// Ticket is a request to play a game at one of several candidate slots.
type Ticket struct {
	ID     string   `json:"id,omitempty"`
	Pseudo string   `json:"pseudo" validate:"required"`
	Jeu    string   `json:"jeu" validate:"required"`
	Dates  []string `json:"dates" validate:"required,min=1,dive,required"`
}

// TicketPatch holds the editable ticket fields. Nil fields are left untouched.
type TicketPatch struct {
	Pseudo *string  `json:"pseudo,omitempty"`
	Jeu    *string  `json:"jeu,omitempty"`
	Dates  []string `json:"dates,omitempty"`
}

// Normalize trims every field and drops blank dates.
func (t Ticket) Normalize() Ticket {
	t.Pseudo = strings.TrimSpace(t.Pseudo)
	t.Jeu = strings.TrimSpace(t.Jeu)
	t.Dates = CleanList(t.Dates)
	return t
}

func (t Ticket) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", status.ErrMissingFields, err)
	}
	return nil
}

// Apply merges the patch into a copy of t.
func (t Ticket) Apply(p TicketPatch) Ticket {
	if p.Pseudo != nil {
		t.Pseudo = *p.Pseudo
	}
	if p.Jeu != nil {
		t.Jeu = *p.Jeu
	}
	if p.Dates != nil {
		t.Dates = append([]string(nil), p.Dates...)
	}
	return t
}

// ParseDates splits the one-slot-per-line text of the ticket form.
func ParseDates(text string) []string {
	return CleanList(strings.Split(text, "\n"))
}

// CleanList trims every entry and drops the empty ones, keeping order.
func CleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
