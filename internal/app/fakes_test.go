package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lporras/gedeon/internal/domain"
)

// In-memory fakes for the repository interfaces. They mirror the PostgreSQL
// semantics the service relies on: append at position=count, gap-tolerant
// removal, all-or-nothing reorder with partial lists moved to the front,
// scripture cascade.

type fakeStore struct {
	mu         sync.Mutex
	schedules  map[uuid.UUID]domain.Schedule
	entries    map[uuid.UUID]domain.Entry
	songs      map[uuid.UUID]domain.Song
	scriptures map[uuid.UUID]domain.Scripture
	images     map[uuid.UUID]domain.ScheduleImage
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		schedules:  make(map[uuid.UUID]domain.Schedule),
		entries:    make(map[uuid.UUID]domain.Entry),
		songs:      make(map[uuid.UUID]domain.Song),
		scriptures: make(map[uuid.UUID]domain.Scripture),
		images:     make(map[uuid.UUID]domain.ScheduleImage),
	}
}

func (f *fakeStore) addSchedule(name string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.schedules[id] = domain.Schedule{ID: id, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	return id
}

func (f *fakeStore) addSong(title, content string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.songs[id] = domain.Song{ID: id, Title: title, Content: content}
	return id
}

func (f *fakeStore) addImage(title, url string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.images[id] = domain.ScheduleImage{ID: id, Title: title, URL: url}
	return id
}

func (f *fakeStore) scheduleEntries(scheduleID uuid.UUID) []domain.Entry {
	var entries []domain.Entry
	for _, e := range f.entries {
		if e.ScheduleID == scheduleID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })
	return entries
}

func (f *fakeStore) GetSchedule(_ context.Context, id uuid.UUID) (*domain.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.schedules[id]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}
	return &s, nil
}

func (f *fakeStore) ListEntries(_ context.Context, scheduleID uuid.UUID) ([]domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scheduleEntries(scheduleID), nil
}

func (f *fakeStore) GetEntry(_ context.Context, scheduleID, entryID uuid.UUID) (*domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryID]
	if !ok || e.ScheduleID != scheduleID {
		return nil, domain.ErrEntryNotFound
	}
	return &e, nil
}

func (f *fakeStore) AddEntry(_ context.Context, scheduleID uuid.UUID, kind domain.ItemKind, itemID uuid.UUID) (*domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.schedules[scheduleID]; !ok {
		return nil, domain.ErrScheduleNotFound
	}
	e := domain.Entry{
		ID:         uuid.New(),
		ScheduleID: scheduleID,
		Kind:       kind,
		ItemID:     itemID,
		Position:   len(f.scheduleEntries(scheduleID)),
		CreatedAt:  time.Now(),
	}
	f.entries[e.ID] = e
	return &e, nil
}

func (f *fakeStore) RemoveEntry(_ context.Context, scheduleID, entryID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryID]
	if !ok || e.ScheduleID != scheduleID {
		return domain.ErrEntryNotFound
	}
	delete(f.entries, entryID)
	if e.Kind == domain.KindScripture {
		delete(f.scriptures, e.ItemID)
	}
	return nil
}

func (f *fakeStore) Reorder(_ context.Context, scheduleID uuid.UUID, orderedIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	listed := make(map[uuid.UUID]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if e, ok := f.entries[id]; !ok || e.ScheduleID != scheduleID {
			return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
		}
		listed[id] = struct{}{}
	}

	// Listed entries move to the front; the rest keep their relative order.
	var rest []domain.Entry
	for _, e := range f.entries {
		if e.ScheduleID != scheduleID {
			continue
		}
		if _, ok := listed[e.ID]; !ok {
			rest = append(rest, e)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Position < rest[j].Position })

	index := 0
	for _, id := range orderedIDs {
		e := f.entries[id]
		e.Position = index
		f.entries[id] = e
		index++
	}
	for _, e := range rest {
		e.Position = index
		f.entries[e.ID] = e
		index++
	}
	return nil
}

func (f *fakeStore) GetSong(_ context.Context, id uuid.UUID) (*domain.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.songs[id]
	if !ok {
		return nil, domain.ErrSongNotFound
	}
	return &s, nil
}

func (f *fakeStore) SearchSongs(_ context.Context, query string, limit int) ([]domain.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Song
	for _, s := range f.songs {
		if len(out) >= limit {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) GetScripture(_ context.Context, id uuid.UUID) (*domain.Scripture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.scriptures[id]
	if !ok {
		return nil, domain.ErrScriptureNotFound
	}
	return &s, nil
}

func (f *fakeStore) SearchScriptures(_ context.Context, query string, limit int) ([]domain.Scripture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Scripture
	for _, s := range f.scriptures {
		if len(out) >= limit {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) CreateScripture(_ context.Context, s *domain.Scripture) (*domain.Scripture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := *s
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	f.scriptures[created.ID] = created
	return &created, nil
}

func (f *fakeStore) GetImage(_ context.Context, id uuid.UUID) (*domain.ScheduleImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	img, ok := f.images[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	return &img, nil
}

// capturingBroadcaster records every published payload per topic.
type capturingBroadcaster struct {
	mu       sync.Mutex
	payloads map[string][][]byte
}

func newCapturingBroadcaster() *capturingBroadcaster {
	return &capturingBroadcaster{payloads: make(map[string][][]byte)}
}

func (b *capturingBroadcaster) Publish(_ context.Context, topic string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payloads[topic] = append(b.payloads[topic], payload)
	return nil
}

func (b *capturingBroadcaster) published(topic string) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]byte(nil), b.payloads[topic]...)
}
