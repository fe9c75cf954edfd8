package presenter

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lporras/gedeon/internal/domain"
)

// Store keeps at most one PresentationState per schedule, get-or-create keyed
// by schedule ID. A single mutex serializes mutations; every operation is a
// bounded in-memory update, so finer locking buys nothing.
type Store struct {
	mu     sync.Mutex
	states map[uuid.UUID]*domain.PresentationState
}

func NewStore() *Store {
	return &Store{states: make(map[uuid.UUID]*domain.PresentationState)}
}

// caller must hold s.mu.
func (s *Store) getOrCreate(scheduleID uuid.UUID) *domain.PresentationState {
	st, ok := s.states[scheduleID]
	if !ok {
		st = &domain.PresentationState{ScheduleID: scheduleID}
		s.states[scheduleID] = st
	}
	return st
}

// Present makes entryID the active entry at slide 0 and clears any blackout.
// chunkCount is 0 for image items. The caller has already resolved the entry,
// so Present cannot fail.
func (s *Store) Present(scheduleID, entryID uuid.UUID, chunkCount int) domain.PresentationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.getOrCreate(scheduleID)
	id := entryID
	st.ActiveEntryID = &id
	st.SlideIndex = 0
	st.ChunkCount = chunkCount
	st.Blacked = false
	st.Seq++
	return *st
}

// NavigateTo moves the active entry to the zero-based slide index and clears
// any blackout, matching what displays render on navigate_to. It rejects
// rather than clamps an out-of-range index: clamping would let the operator's
// slide number drift from what was broadcast.
func (s *Store) NavigateTo(scheduleID uuid.UUID, index int) (domain.PresentationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[scheduleID]
	if !ok || st.ActiveEntryID == nil {
		return domain.PresentationState{}, domain.ErrNoActiveEntry
	}
	if index < 0 || index >= st.ChunkCount {
		return domain.PresentationState{}, fmt.Errorf("%w: index %d, %d slides", domain.ErrSlideOutOfRange, index, st.ChunkCount)
	}

	st.SlideIndex = index
	st.Blacked = false
	st.Seq++
	return *st, nil
}

// Black flags the schedule as blacked out. Active entry and slide index are
// kept so a future un-black could resume in place.
func (s *Store) Black(scheduleID uuid.UUID) domain.PresentationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.getOrCreate(scheduleID)
	st.Blacked = true
	st.Seq++
	return *st
}

// Snapshot returns a copy of the schedule's state for read-model queries
// (display reconnection). ok is false when no command has touched the
// schedule yet.
func (s *Store) Snapshot(scheduleID uuid.UUID) (domain.PresentationState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[scheduleID]
	if !ok {
		return domain.PresentationState{}, false
	}
	return *st, true
}
