package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Schedule is an ordered service plan assembled by an operator.
type Schedule struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry is a positioned reference from a schedule to one content item.
// Position is a monotonic ordering key, unique within a schedule; removal
// leaves gaps, ordering reads sort by position.
type Entry struct {
	ID         uuid.UUID
	ScheduleID uuid.UUID
	Kind       ItemKind
	ItemID     uuid.UUID
	Position   int
	CreatedAt  time.Time
}

// ScheduleRepository persists schedules and their entries.
type ScheduleRepository interface {
	GetSchedule(ctx context.Context, id uuid.UUID) (*Schedule, error)
	ListEntries(ctx context.Context, scheduleID uuid.UUID) ([]Entry, error)
	GetEntry(ctx context.Context, scheduleID, entryID uuid.UUID) (*Entry, error)
	// AddEntry appends the entry at position = current entry count.
	AddEntry(ctx context.Context, scheduleID uuid.UUID, kind ItemKind, itemID uuid.UUID) (*Entry, error)
	// RemoveEntry deletes the entry and, for scripture entries, the owned
	// scripture row in the same transaction. Remaining positions keep gaps.
	RemoveEntry(ctx context.Context, scheduleID, entryID uuid.UUID) error
	// Reorder assigns position = index for each id, atomically. Every id must
	// belong to the schedule or nothing is written.
	Reorder(ctx context.Context, scheduleID uuid.UUID, orderedIDs []uuid.UUID) error
}

// SongRepository reads the shared song catalog.
type SongRepository interface {
	GetSong(ctx context.Context, id uuid.UUID) (*Song, error)
	SearchSongs(ctx context.Context, query string, limit int) ([]Song, error)
}

// ScriptureRepository manages passage records built from the bible browser.
type ScriptureRepository interface {
	GetScripture(ctx context.Context, id uuid.UUID) (*Scripture, error)
	SearchScriptures(ctx context.Context, query string, limit int) ([]Scripture, error)
	CreateScripture(ctx context.Context, s *Scripture) (*Scripture, error)
}

// ImageRepository reads the shared image catalog.
type ImageRepository interface {
	GetImage(ctx context.Context, id uuid.UUID) (*ScheduleImage, error)
}
