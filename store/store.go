// Package store persists tickets and events.
//
// Two backends implement Store: PocketBaseStore keeps records in PocketBase
// collections, FileStore keeps them in two JSON array files. Both key records
// by a generated id, never by position, and both persist every mutation before
// returning.
package store

import (
	"context"

	"game-with-you/models"
)

const (
	TicketsCollection = "tickets"
	EventsCollection  = "events"
)

type Store interface {
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetTicket(ctx context.Context, id string) (models.Ticket, error)
	GetEvent(ctx context.Context, id string) (models.Event, error)

	InsertTicket(ctx context.Context, t models.Ticket) (models.Ticket, error)
	InsertEvent(ctx context.Context, e models.Event) (models.Event, error)
	UpdateTicket(ctx context.Context, id string, patch models.TicketPatch) (models.Ticket, error)
	UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (models.Event, error)

	// DeleteTicket and DeleteEvent return status.ErrNotFound when the record is absent.
	DeleteTicket(ctx context.Context, id string) error
	DeleteEvent(ctx context.Context, id string) error

	// AppendParticipant adds name to the event unless it is already listed.
	// The returned bool reports whether anything was written.
	AppendParticipant(ctx context.Context, eventID, name string) (models.Event, bool, error)

	// ConvertTicket removes the ticket and stores the event as one step.
	ConvertTicket(ctx context.Context, ticketID string, e models.Event) (models.Event, error)
}
