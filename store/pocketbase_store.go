package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"game-with-you/internal/status"
	"game-with-you/models"
	"game-with-you/monitoring"
)

const pocketBaseBackend = "pocketbase"

// PocketBaseStore keeps tickets and events in PocketBase collections.
type PocketBaseStore struct {
	app core.App
}

func NewPocketBaseStore(app core.App) *PocketBaseStore {
	return &PocketBaseStore{app: app}
}

// EnsureCollections creates the tickets and events collections when missing.
func EnsureCollections(app core.App) error {
	if _, err := app.FindCollectionByNameOrId(TicketsCollection); err != nil {
		tickets := core.NewBaseCollection(TicketsCollection)
		tickets.Fields.Add(
			&core.TextField{Name: "pseudo"},
			&core.TextField{Name: "jeu"},
			&core.JSONField{Name: "dates"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		if err := app.Save(tickets); err != nil {
			return fmt.Errorf("create %s collection: %w", TicketsCollection, err)
		}
	}

	if _, err := app.FindCollectionByNameOrId(EventsCollection); err != nil {
		events := core.NewBaseCollection(EventsCollection)
		events.Fields.Add(
			&core.TextField{Name: "jeu"},
			&core.TextField{Name: "date"},
			&core.TextField{Name: "createur"},
			&core.JSONField{Name: "participants"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		if err := app.Save(events); err != nil {
			return fmt.Errorf("create %s collection: %w", EventsCollection, err)
		}
	}
	return nil
}

func (s *PocketBaseStore) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	records, err := s.list(ctx, TicketsCollection)
	if err != nil {
		return nil, s.track(TicketsCollection, "list", err)
	}
	tickets := make([]models.Ticket, 0, len(records))
	for _, r := range records {
		t, err := recordToTicket(r)
		if err != nil {
			return nil, s.track(TicketsCollection, "list", err)
		}
		tickets = append(tickets, t)
	}
	monitoring.TrackList(TicketsCollection, len(tickets))
	return tickets, s.track(TicketsCollection, "list", nil)
}

func (s *PocketBaseStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	records, err := s.list(ctx, EventsCollection)
	if err != nil {
		return nil, s.track(EventsCollection, "list", err)
	}
	events := make([]models.Event, 0, len(records))
	for _, r := range records {
		e, err := recordToEvent(r)
		if err != nil {
			return nil, s.track(EventsCollection, "list", err)
		}
		events = append(events, e)
	}
	monitoring.TrackList(EventsCollection, len(events))
	return events, s.track(EventsCollection, "list", nil)
}

func (s *PocketBaseStore) GetTicket(ctx context.Context, id string) (models.Ticket, error) {
	r, err := s.find(ctx, s.app, TicketsCollection, id)
	if err != nil {
		return models.Ticket{}, s.track(TicketsCollection, "get", err)
	}
	t, err := recordToTicket(r)
	return t, s.track(TicketsCollection, "get", err)
}

func (s *PocketBaseStore) GetEvent(ctx context.Context, id string) (models.Event, error) {
	r, err := s.find(ctx, s.app, EventsCollection, id)
	if err != nil {
		return models.Event{}, s.track(EventsCollection, "get", err)
	}
	e, err := recordToEvent(r)
	return e, s.track(EventsCollection, "get", err)
}

func (s *PocketBaseStore) InsertTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	r, err := s.newRecord(s.app, TicketsCollection)
	if err != nil {
		return models.Ticket{}, s.track(TicketsCollection, "insert", err)
	}
	fillTicket(r, t)
	if err := s.app.SaveWithContext(ctx, r); err != nil {
		return models.Ticket{}, s.track(TicketsCollection, "insert", unavailable(err))
	}
	t.ID = r.Id
	return t, s.track(TicketsCollection, "insert", nil)
}

func (s *PocketBaseStore) InsertEvent(ctx context.Context, e models.Event) (models.Event, error) {
	created, err := s.insertEvent(ctx, s.app, e)
	return created, s.track(EventsCollection, "insert", err)
}

func (s *PocketBaseStore) UpdateTicket(ctx context.Context, id string, patch models.TicketPatch) (models.Ticket, error) {
	r, err := s.find(ctx, s.app, TicketsCollection, id)
	if err != nil {
		return models.Ticket{}, s.track(TicketsCollection, "update", err)
	}
	current, err := recordToTicket(r)
	if err != nil {
		return models.Ticket{}, s.track(TicketsCollection, "update", err)
	}
	updated := current.Apply(patch)
	fillTicket(r, updated)
	if err := s.app.SaveWithContext(ctx, r); err != nil {
		return models.Ticket{}, s.track(TicketsCollection, "update", unavailable(err))
	}
	return updated, s.track(TicketsCollection, "update", nil)
}

func (s *PocketBaseStore) UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (models.Event, error) {
	r, err := s.find(ctx, s.app, EventsCollection, id)
	if err != nil {
		return models.Event{}, s.track(EventsCollection, "update", err)
	}
	current, err := recordToEvent(r)
	if err != nil {
		return models.Event{}, s.track(EventsCollection, "update", err)
	}
	updated := current.Apply(patch)
	fillEvent(r, updated)
	if err := s.app.SaveWithContext(ctx, r); err != nil {
		return models.Event{}, s.track(EventsCollection, "update", unavailable(err))
	}
	return updated, s.track(EventsCollection, "update", nil)
}

func (s *PocketBaseStore) DeleteTicket(ctx context.Context, id string) error {
	return s.track(TicketsCollection, "delete", s.delete(ctx, TicketsCollection, id))
}

func (s *PocketBaseStore) DeleteEvent(ctx context.Context, id string) error {
	return s.track(EventsCollection, "delete", s.delete(ctx, EventsCollection, id))
}

func (s *PocketBaseStore) AppendParticipant(ctx context.Context, eventID, name string) (models.Event, bool, error) {
	r, err := s.find(ctx, s.app, EventsCollection, eventID)
	if err != nil {
		return models.Event{}, false, s.track(EventsCollection, "append_participant", err)
	}
	e, err := recordToEvent(r)
	if err != nil {
		return models.Event{}, false, s.track(EventsCollection, "append_participant", err)
	}

	participants, changed := e.Participants.With(name)
	if !changed {
		return e, false, s.track(EventsCollection, "append_participant", nil)
	}
	e.Participants = participants
	r.Set("participants", e.Participants)
	if err := s.app.SaveWithContext(ctx, r); err != nil {
		return models.Event{}, false, s.track(EventsCollection, "append_participant", unavailable(err))
	}
	return e, true, s.track(EventsCollection, "append_participant", nil)
}

func (s *PocketBaseStore) ConvertTicket(ctx context.Context, ticketID string, e models.Event) (models.Event, error) {
	var created models.Event
	err := s.app.RunInTransaction(func(txApp core.App) error {
		ticket, err := s.find(ctx, txApp, TicketsCollection, ticketID)
		if err != nil {
			return err
		}
		if err := txApp.DeleteWithContext(ctx, ticket); err != nil {
			return unavailable(err)
		}
		created, err = s.insertEvent(ctx, txApp, e)
		return err
	})
	if err != nil && !errors.Is(err, status.ErrNotFound) && !errors.Is(err, status.ErrStorageUnavailable) {
		err = unavailable(err)
	}
	return created, s.track(TicketsCollection, "convert", err)
}

func (s *PocketBaseStore) list(ctx context.Context, collection string) ([]*core.Record, error) {
	records := []*core.Record{}
	err := s.app.RecordQuery(collection).
		OrderBy("rowid ASC").
		WithContext(ctx).
		All(&records)
	if err != nil {
		return nil, unavailable(err)
	}
	return records, nil
}

func (s *PocketBaseStore) find(ctx context.Context, app core.App, collection, id string) (*core.Record, error) {
	r, err := app.FindRecordById(collection, id, func(q *dbx.SelectQuery) error {
		q.WithContext(ctx)
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(collection, id)
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return r, nil
}

func (s *PocketBaseStore) delete(ctx context.Context, collection, id string) error {
	r, err := s.find(ctx, s.app, collection, id)
	if err != nil {
		return err
	}
	if err := s.app.DeleteWithContext(ctx, r); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *PocketBaseStore) newRecord(app core.App, collection string) (*core.Record, error) {
	c, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		return nil, unavailable(err)
	}
	return core.NewRecord(c), nil
}

func (s *PocketBaseStore) insertEvent(ctx context.Context, app core.App, e models.Event) (models.Event, error) {
	r, err := s.newRecord(app, EventsCollection)
	if err != nil {
		return models.Event{}, err
	}
	fillEvent(r, e)
	if err := app.SaveWithContext(ctx, r); err != nil {
		return models.Event{}, unavailable(err)
	}
	e.ID = r.Id
	if e.Participants == nil {
		e.Participants = models.Participants{}
	}
	return e, nil
}

func (s *PocketBaseStore) track(collection, op string, err error) error {
	return monitoring.TrackStoreOperation(pocketBaseBackend, collection, op, err)
}

func fillTicket(r *core.Record, t models.Ticket) {
	r.Set("pseudo", t.Pseudo)
	r.Set("jeu", t.Jeu)
	if t.Dates == nil {
		t.Dates = []string{}
	}
	r.Set("dates", t.Dates)
}

func fillEvent(r *core.Record, e models.Event) {
	r.Set("jeu", e.Jeu)
	r.Set("date", e.Date)
	r.Set("createur", e.Createur)
	if e.Participants == nil {
		e.Participants = models.Participants{}
	}
	r.Set("participants", e.Participants)
}

func recordToTicket(r *core.Record) (models.Ticket, error) {
	t := models.Ticket{
		ID:     r.Id,
		Pseudo: r.GetString("pseudo"),
		Jeu:    r.GetString("jeu"),
		Dates:  []string{},
	}
	if err := unmarshalField(r, "dates", &t.Dates); err != nil {
		return models.Ticket{}, fmt.Errorf("%w: ticket %s dates: %w", status.ErrStorageUnavailable, r.Id, err)
	}
	if t.Dates == nil {
		t.Dates = []string{}
	}
	return t, nil
}

// recordToEvent accepts both the array and the legacy string-literal encoding of participants.
func recordToEvent(r *core.Record) (models.Event, error) {
	e := models.Event{
		ID:           r.Id,
		Jeu:          r.GetString("jeu"),
		Date:         r.GetString("date"),
		Createur:     r.GetString("createur"),
		Participants: models.Participants{},
	}
	if err := unmarshalField(r, "participants", &e.Participants); err != nil {
		return models.Event{}, fmt.Errorf("%w: event %s participants: %w", status.ErrStorageUnavailable, r.Id, err)
	}
	return e, nil
}

// unmarshalField leaves dst untouched when the field holds nothing.
func unmarshalField(r *core.Record, key string, dst any) error {
	if r.GetString(key) == "" {
		return nil
	}
	return r.UnmarshalJSONField(key, dst)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", status.ErrStorageUnavailable, err)
}
