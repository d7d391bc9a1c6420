package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"game-with-you/internal/status"
	"game-with-you/models"
	"game-with-you/monitoring"
)

const fileBackend = "file"

// FileStore keeps tickets and events in two pretty-printed JSON array files.
// A missing file is an empty collection; a file that cannot be read or parsed
// makes every call fail with status.ErrStorageUnavailable.
type FileStore struct {
	mu          sync.Mutex
	ticketsPath string
	eventsPath  string
	newID       func() string
}

// fileEvent lets the loader see how participants were encoded on disk.
type fileEvent struct {
	models.Event
	Participants json.RawMessage `json:"participants"`
}

// NewFileStore opens the two files and migrates legacy content: records
// without an id get one, string-encoded participants are rewritten as arrays.
func NewFileStore(ticketsPath, eventsPath string) (*FileStore, error) {
	s := &FileStore{
		ticketsPath: ticketsPath,
		eventsPath:  eventsPath,
		newID:       func() string { return uuid.NewString() },
	}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.readTickets(); err != nil {
		return err
	}
	_, err := s.readEvents()
	return err
}

// readTickets loads the tickets file and persists any migration right away,
// so ids handed out by a read stay valid for later calls even when the file
// was replaced after open.
func (s *FileStore) readTickets() ([]models.Ticket, error) {
	tickets, dirty, err := s.loadTickets()
	if err != nil || !dirty {
		return tickets, err
	}
	if err := s.save(s.ticketsPath, tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *FileStore) readEvents() ([]models.Event, error) {
	events, dirty, err := s.loadEvents()
	if err != nil || !dirty {
		return events, err
	}
	if err := s.save(s.eventsPath, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *FileStore) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.readTickets()
	monitoring.TrackList(TicketsCollection, len(tickets))
	return tickets, s.track(TicketsCollection, "list", err)
}

func (s *FileStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.readEvents()
	monitoring.TrackList(EventsCollection, len(events))
	return events, s.track(EventsCollection, "list", err)
}

func (s *FileStore) GetTicket(ctx context.Context, id string) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, _, err := s.findTicket(id)
	return t, s.track(TicketsCollection, "get", err)
}

func (s *FileStore) GetEvent(ctx context.Context, id string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _, err := s.findEvent(id)
	return e, s.track(EventsCollection, "get", err)
}

func (s *FileStore) InsertTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.readTickets()
	if err != nil {
		return models.Ticket{}, s.track(TicketsCollection, "insert", err)
	}
	t.ID = s.newID()
	tickets = append(tickets, t)
	if err := s.save(s.ticketsPath, tickets); err != nil {
		return models.Ticket{}, s.track(TicketsCollection, "insert", err)
	}
	return t, s.track(TicketsCollection, "insert", nil)
}

func (s *FileStore) InsertEvent(ctx context.Context, e models.Event) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.readEvents()
	if err != nil {
		return models.Event{}, s.track(EventsCollection, "insert", err)
	}
	e.ID = s.newID()
	events = append(events, e)
	if err := s.save(s.eventsPath, events); err != nil {
		return models.Event{}, s.track(EventsCollection, "insert", err)
	}
	return e, s.track(EventsCollection, "insert", nil)
}

func (s *FileStore) UpdateTicket(ctx context.Context, id string, patch models.TicketPatch) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.readTickets()
	if err != nil {
		return models.Ticket{}, s.track(TicketsCollection, "update", err)
	}
	i := indexTicket(tickets, id)
	if i < 0 {
		return models.Ticket{}, s.track(TicketsCollection, "update", notFound(TicketsCollection, id))
	}
	tickets[i] = tickets[i].Apply(patch)
	return tickets[i], s.track(TicketsCollection, "update", s.save(s.ticketsPath, tickets))
}

func (s *FileStore) UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.readEvents()
	if err != nil {
		return models.Event{}, s.track(EventsCollection, "update", err)
	}
	i := indexEvent(events, id)
	if i < 0 {
		return models.Event{}, s.track(EventsCollection, "update", notFound(EventsCollection, id))
	}
	events[i] = events[i].Apply(patch)
	return events[i], s.track(EventsCollection, "update", s.save(s.eventsPath, events))
}

func (s *FileStore) DeleteTicket(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.readTickets()
	if err != nil {
		return s.track(TicketsCollection, "delete", err)
	}
	i := indexTicket(tickets, id)
	if i < 0 {
		return s.track(TicketsCollection, "delete", notFound(TicketsCollection, id))
	}
	tickets = append(tickets[:i], tickets[i+1:]...)
	return s.track(TicketsCollection, "delete", s.save(s.ticketsPath, tickets))
}

func (s *FileStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.readEvents()
	if err != nil {
		return s.track(EventsCollection, "delete", err)
	}
	i := indexEvent(events, id)
	if i < 0 {
		return s.track(EventsCollection, "delete", notFound(EventsCollection, id))
	}
	events = append(events[:i], events[i+1:]...)
	return s.track(EventsCollection, "delete", s.save(s.eventsPath, events))
}

func (s *FileStore) AppendParticipant(ctx context.Context, eventID, name string) (models.Event, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.readEvents()
	if err != nil {
		return models.Event{}, false, s.track(EventsCollection, "append_participant", err)
	}
	i := indexEvent(events, eventID)
	if i < 0 {
		return models.Event{}, false, s.track(EventsCollection, "append_participant", notFound(EventsCollection, eventID))
	}

	participants, changed := events[i].Participants.With(name)
	if !changed {
		return events[i], false, s.track(EventsCollection, "append_participant", nil)
	}
	events[i].Participants = participants
	if err := s.save(s.eventsPath, events); err != nil {
		return models.Event{}, false, s.track(EventsCollection, "append_participant", err)
	}
	return events[i], true, s.track(EventsCollection, "append_participant", nil)
}

// ConvertTicket writes the events file first and rolls it back when the
// tickets file cannot be rewritten.
func (s *FileStore) ConvertTicket(ctx context.Context, ticketID string, e models.Event) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.readTickets()
	if err != nil {
		return models.Event{}, s.track(TicketsCollection, "convert", err)
	}
	i := indexTicket(tickets, ticketID)
	if i < 0 {
		return models.Event{}, s.track(TicketsCollection, "convert", notFound(TicketsCollection, ticketID))
	}
	events, err := s.readEvents()
	if err != nil {
		return models.Event{}, s.track(TicketsCollection, "convert", err)
	}

	e.ID = s.newID()
	previous := events
	if err := s.save(s.eventsPath, append(append([]models.Event{}, events...), e)); err != nil {
		return models.Event{}, s.track(TicketsCollection, "convert", err)
	}

	remaining := append(append([]models.Ticket{}, tickets[:i]...), tickets[i+1:]...)
	if err := s.save(s.ticketsPath, remaining); err != nil {
		if rbErr := s.save(s.eventsPath, previous); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("rollback events: %w", rbErr))
		}
		return models.Event{}, s.track(TicketsCollection, "convert", err)
	}
	return e, s.track(TicketsCollection, "convert", nil)
}

func (s *FileStore) findTicket(id string) (models.Ticket, int, error) {
	tickets, err := s.readTickets()
	if err != nil {
		return models.Ticket{}, -1, err
	}
	i := indexTicket(tickets, id)
	if i < 0 {
		return models.Ticket{}, -1, notFound(TicketsCollection, id)
	}
	return tickets[i], i, nil
}

func (s *FileStore) findEvent(id string) (models.Event, int, error) {
	events, err := s.readEvents()
	if err != nil {
		return models.Event{}, -1, err
	}
	i := indexEvent(events, id)
	if i < 0 {
		return models.Event{}, -1, notFound(EventsCollection, id)
	}
	return events[i], i, nil
}

// loadTickets reports dirty when a record needed an id.
func (s *FileStore) loadTickets() ([]models.Ticket, bool, error) {
	tickets := []models.Ticket{}
	if err := readJSON(s.ticketsPath, &tickets); err != nil {
		return nil, false, err
	}
	dirty := false
	for i := range tickets {
		if tickets[i].ID == "" {
			tickets[i].ID = s.newID()
			dirty = true
		}
	}
	return tickets, dirty, nil
}

// loadEvents reports dirty when a record needed an id or had string-encoded participants.
func (s *FileStore) loadEvents() ([]models.Event, bool, error) {
	raw := []fileEvent{}
	if err := readJSON(s.eventsPath, &raw); err != nil {
		return nil, false, err
	}

	dirty := false
	events := make([]models.Event, 0, len(raw))
	for _, r := range raw {
		e := r.Event
		var participants models.Participants
		if len(r.Participants) > 0 {
			if err := json.Unmarshal(r.Participants, &participants); err != nil {
				return nil, false, fmt.Errorf("%w: read %s: %w", status.ErrStorageUnavailable, s.eventsPath, err)
			}
			if bytes.HasPrefix(bytes.TrimSpace(r.Participants), []byte(`"`)) {
				dirty = true
			}
		}
		e.Participants = participants
		if e.ID == "" {
			e.ID = s.newID()
			dirty = true
		}
		events = append(events, e)
	}
	return events, dirty, nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", status.ErrStorageUnavailable, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: parse %s: %w", status.ErrStorageUnavailable, path, err)
	}
	return nil
}

// save replaces path atomically through a temp file in the same directory.
func (s *FileStore) save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", status.ErrStorageUnavailable, path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", status.ErrStorageUnavailable, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", status.ErrStorageUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", status.ErrStorageUnavailable, path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", status.ErrStorageUnavailable, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", status.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", status.ErrStorageUnavailable, path, err)
	}
	return nil
}

func (s *FileStore) track(collection, op string, err error) error {
	return monitoring.TrackStoreOperation(fileBackend, collection, op, err)
}

func indexTicket(tickets []models.Ticket, id string) int {
	for i, t := range tickets {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func indexEvent(events []models.Event, id string) int {
	for i, e := range events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func notFound(collection, id string) error {
	return fmt.Errorf("%s %q: %w", collection, id, status.ErrNotFound)
}
