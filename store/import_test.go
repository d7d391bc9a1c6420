package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-with-you/models"
)

func TestReadFilesAndImport(t *testing.T) {
	src := t.TempDir()
	ticketsPath := filepath.Join(src, "tickets.json")
	eventsPath := filepath.Join(src, "events.json")

	legacyTickets := []byte(`[{"pseudo": "Alice", "jeu": "Chess", "dates": ["Mon-AM"]}]`)
	require.NoError(t, os.WriteFile(ticketsPath, legacyTickets, 0o644))
	require.NoError(t, os.WriteFile(eventsPath, []byte(`[
    {"jeu": "Go", "date": "Wed-AM", "createur": "Bob", "participants": "['Bob', 'Carol']"},
    {"id": "keep-out", "jeu": "Catan", "date": "Thu-PM", "createur": "Dan", "participants": ["Dan"]}
]`), 0o644))

	tickets, events, err := ReadFiles(ticketsPath, eventsPath)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	require.Len(t, events, 2)
	assert.Empty(t, events[1].ID)
	assert.Equal(t, models.Participants{"Bob", "Carol"}, events[0].Participants)

	data, err := os.ReadFile(ticketsPath)
	require.NoError(t, err)
	assert.Equal(t, legacyTickets, data, "source files are left untouched")

	dst, _ := setupFileStore(t)
	ctx := context.Background()
	res, err := Import(ctx, dst, tickets, events)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Tickets: 1, Events: 2}, res)

	imported, err := dst.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, "Go", imported[0].Jeu)
	assert.NotEmpty(t, imported[1].ID)
	assert.NotEqual(t, "keep-out", imported[1].ID)
}

func TestImport_SkipsInvalidRecords(t *testing.T) {
	dst, _ := setupFileStore(t)
	ctx := context.Background()

	tickets := []models.Ticket{
		{Pseudo: " Alice ", Jeu: "Chess", Dates: []string{"Mon-AM", " "}},
		{Pseudo: "Bob", Jeu: "Go", Dates: []string{" ", ""}},
		{Pseudo: "", Jeu: "Catan", Dates: []string{"Tue-PM"}},
	}
	events := []models.Event{
		{Jeu: "Go", Date: "Wed-AM", Createur: "Bob", Participants: models.Participants{"Bob", "Bob", "Carol"}},
		{Jeu: "Go", Date: "Wed-AM", Createur: "Bob", Participants: models.Participants{}},
	}

	res, err := Import(ctx, dst, tickets, events)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Tickets: 1, Events: 1, Skipped: 3}, res)

	stored, err := dst.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Alice", stored[0].Pseudo)
	assert.Equal(t, []string{"Mon-AM"}, stored[0].Dates)

	storedEvents, err := dst.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, storedEvents, 1)
	assert.Equal(t, models.Participants{"Bob", "Carol"}, storedEvents[0].Participants)
}
