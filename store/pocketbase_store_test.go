package store

import (
	"context"
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-with-you/internal/status"
	"game-with-you/models"
)

func setupPocketBaseStore(t *testing.T) (*PocketBaseStore, *tests.TestApp) {
	t.Helper()
	app, err := tests.NewTestApp()
	require.NoError(t, err)
	t.Cleanup(app.Cleanup)

	require.NoError(t, EnsureCollections(app))
	return NewPocketBaseStore(app), app
}

func TestEnsureCollections_Idempotent(t *testing.T) {
	_, app := setupPocketBaseStore(t)

	require.NoError(t, EnsureCollections(app))

	c, err := app.FindCollectionByNameOrId(EventsCollection)
	require.NoError(t, err)
	assert.NotNil(t, c.Fields.GetByName("participants"))
}

func TestPocketBaseStore_InsertListOrder(t *testing.T) {
	s, _ := setupPocketBaseStore(t)
	ctx := context.Background()

	var saved []models.Ticket
	for _, jeu := range []string{"Chess", "Go", "Catan"} {
		created, err := s.InsertTicket(ctx, models.Ticket{Pseudo: "Alice", Jeu: jeu, Dates: []string{"Mon-AM", "Tue-PM"}})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		saved = append(saved, created)
	}

	tickets, err := s.ListTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, tickets)

	got, err := s.GetTicket(ctx, saved[1].ID)
	require.NoError(t, err)
	assert.Equal(t, saved[1], got)
}

func TestPocketBaseStore_DeleteAndNotFound(t *testing.T) {
	s, _ := setupPocketBaseStore(t)
	ctx := context.Background()

	tk, err := s.InsertTicket(ctx, models.Ticket{Pseudo: "Alice", Jeu: "Chess", Dates: []string{"Mon-AM"}})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTicket(ctx, tk.ID))
	assert.ErrorIs(t, s.DeleteTicket(ctx, tk.ID), status.ErrNotFound)

	_, err = s.GetEvent(ctx, "missing")
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestPocketBaseStore_UpdateEvent(t *testing.T) {
	s, _ := setupPocketBaseStore(t)
	ctx := context.Background()

	ev, err := s.InsertEvent(ctx, models.Event{Jeu: "Chess", Date: "Tue-PM", Createur: "Alice", Participants: models.Participants{"Alice", "Bob"}})
	require.NoError(t, err)

	jeu := "Go"
	updated, err := s.UpdateEvent(ctx, ev.ID, models.EventPatch{Jeu: &jeu})
	require.NoError(t, err)
	assert.Equal(t, "Go", updated.Jeu)
	assert.Equal(t, models.Participants{"Alice", "Bob"}, updated.Participants)

	_, err = s.UpdateEvent(ctx, "missing", models.EventPatch{Jeu: &jeu})
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestPocketBaseStore_AppendParticipant(t *testing.T) {
	s, _ := setupPocketBaseStore(t)
	ctx := context.Background()

	ev, err := s.InsertEvent(ctx, models.Event{Jeu: "Chess", Date: "Tue-PM", Createur: "Alice", Participants: models.Participants{"Alice", "Bob"}})
	require.NoError(t, err)

	_, changed, err := s.AppendParticipant(ctx, ev.ID, "Alice")
	require.NoError(t, err)
	assert.False(t, changed)

	_, changed, err = s.AppendParticipant(ctx, ev.ID, "Carol")
	require.NoError(t, err)
	assert.True(t, changed)
	_, changed, err = s.AppendParticipant(ctx, ev.ID, "Carol")
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := s.GetEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Participants{"Alice", "Bob", "Carol"}, got.Participants)
}

func TestPocketBaseStore_LegacyParticipantsString(t *testing.T) {
	s, app := setupPocketBaseStore(t)
	ctx := context.Background()

	c, err := app.FindCollectionByNameOrId(EventsCollection)
	require.NoError(t, err)
	r := core.NewRecord(c)
	r.Set("jeu", "Go")
	r.Set("date", "Wed-AM")
	r.Set("createur", "Bob")
	r.Set("participants", "['Bob', 'Carol']")
	require.NoError(t, app.Save(r))

	ev, err := s.GetEvent(ctx, r.Id)
	require.NoError(t, err)
	assert.Equal(t, models.Participants{"Bob", "Carol"}, ev.Participants)

	got, changed, err := s.AppendParticipant(ctx, r.Id, "Dan")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.Participants{"Bob", "Carol", "Dan"}, got.Participants)

	stored, err := app.FindRecordById(EventsCollection, r.Id)
	require.NoError(t, err)
	assert.JSONEq(t, `["Bob","Carol","Dan"]`, stored.GetString("participants"))
}

func TestPocketBaseStore_ConvertTicket(t *testing.T) {
	s, _ := setupPocketBaseStore(t)
	ctx := context.Background()

	tk, err := s.InsertTicket(ctx, models.Ticket{Pseudo: "Alice", Jeu: "Chess", Dates: []string{"Mon-AM", "Tue-PM"}})
	require.NoError(t, err)

	ev, err := s.ConvertTicket(ctx, tk.ID, models.Event{Jeu: "Chess", Date: "Tue-PM", Createur: "Alice", Participants: models.Participants{"Alice", "Bob"}})
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)

	tickets, err := s.ListTickets(ctx)
	require.NoError(t, err)
	assert.Empty(t, tickets)

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Event{ev}, events)

	_, err = s.ConvertTicket(ctx, tk.ID, models.Event{Jeu: "Chess", Date: "Tue-PM", Createur: "Alice", Participants: models.Participants{"Alice", "Dan"}})
	assert.ErrorIs(t, err, status.ErrNotFound)

	events, err = s.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestPocketBaseStore_CorruptParticipantsIsUnavailable(t *testing.T) {
	s, app := setupPocketBaseStore(t)
	ctx := context.Background()

	c, err := app.FindCollectionByNameOrId(EventsCollection)
	require.NoError(t, err)
	r := core.NewRecord(c)
	r.Set("jeu", "Go")
	r.Set("date", "Wed-AM")
	r.Set("createur", "Bob")
	r.Set("participants", 42)
	require.NoError(t, app.Save(r))

	_, err = s.GetEvent(ctx, r.Id)
	assert.ErrorIs(t, err, status.ErrStorageUnavailable)
	assert.ErrorIs(t, err, status.ErrInvalidParticipantsEncoding)

	_, err = s.ListEvents(ctx)
	assert.ErrorIs(t, err, status.ErrStorageUnavailable)
}
