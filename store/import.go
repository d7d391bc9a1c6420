package store

import (
	"context"
	"fmt"

	"game-with-you/models"
)

type ImportResult struct {
	Tickets int
	Events  int
	// Skipped counts records that failed validation after normalizing.
	Skipped int
}

// ReadFiles decodes a pair of exported JSON files without rewriting them.
// Legacy content is accepted the same way NewFileStore accepts it. Ids are
// cleared because the receiving store assigns its own.
func ReadFiles(ticketsPath, eventsPath string) ([]models.Ticket, []models.Event, error) {
	s := &FileStore{
		ticketsPath: ticketsPath,
		eventsPath:  eventsPath,
		newID:       func() string { return "" },
	}

	tickets, _, err := s.loadTickets()
	if err != nil {
		return nil, nil, err
	}
	events, _, err := s.loadEvents()
	if err != nil {
		return nil, nil, err
	}

	for i := range tickets {
		tickets[i].ID = ""
	}
	for i := range events {
		events[i].ID = ""
	}
	return tickets, events, nil
}

// Import normalizes and validates each record, then inserts tickets then
// events into dst, keeping file order. Invalid records are skipped and
// counted. It stops at the first store failure and reports how far it got.
func Import(ctx context.Context, dst Store, tickets []models.Ticket, events []models.Event) (ImportResult, error) {
	var res ImportResult
	for i, t := range tickets {
		t = t.Normalize()
		if err := t.Validate(); err != nil {
			res.Skipped++
			continue
		}
		if _, err := dst.InsertTicket(ctx, t); err != nil {
			return res, fmt.Errorf("import ticket %d: %w", i+1, err)
		}
		res.Tickets++
	}
	for i, e := range events {
		e = e.Normalize()
		e.Participants = e.Participants.Dedupe()
		if err := e.Validate(); err != nil {
			res.Skipped++
			continue
		}
		if _, err := dst.InsertEvent(ctx, e); err != nil {
			return res, fmt.Errorf("import event %d: %w", i+1, err)
		}
		res.Events++
	}
	return res, nil
}
