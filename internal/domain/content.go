package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemKind tags the polymorphic content an entry points at.
type ItemKind string

const (
	KindSong      ItemKind = "song"
	KindScripture ItemKind = "scripture"
	KindImage     ItemKind = "image"
)

// ParseItemKind validates an item kind received from a client.
func ParseItemKind(s string) (ItemKind, error) {
	switch ItemKind(s) {
	case KindSong, KindScripture, KindImage:
		return ItemKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownItemKind, s)
	}
}

// Song is a hymn or worship song from the shared catalog.
type Song struct {
	ID        uuid.UUID
	Title     string
	Author    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Scripture is a bible passage. Scriptures referenced by schedule entries are
// ephemeral: they are created for one entry and destroyed with it.
type Scripture struct {
	ID           uuid.UUID
	BookID       string
	ChapterNum   int
	VerseFrom    int
	VerseTo      int // 0 when the passage is a single verse
	BibleVersion string
	Content      string
	CreatedAt    time.Time
}

// Reference renders the human-readable passage reference, e.g.
// "Juan 3 : 16 - 18 NVI".
func (s Scripture) Reference() string {
	if s.VerseTo > 0 && s.VerseTo != s.VerseFrom {
		return fmt.Sprintf("%s %d : %d - %d %s", s.BookID, s.ChapterNum, s.VerseFrom, s.VerseTo, s.BibleVersion)
	}
	return fmt.Sprintf("%s %d : %d %s", s.BookID, s.ChapterNum, s.VerseFrom, s.BibleVersion)
}

// ScheduleImage is a full-screen image slide (announcement, background).
type ScheduleImage struct {
	ID        uuid.UUID
	Title     string
	URL       string
	CreatedAt time.Time
}

// Presentable is the resolved, read-only view of any content an entry can
// reference. Body is empty for image kinds; ImageURL is empty for text kinds.
type Presentable struct {
	Kind     ItemKind
	Title    string
	Body     string
	ImageURL string
}

// IsImage reports whether the item has no text sub-slides.
func (p Presentable) IsImage() bool {
	return p.Kind == KindImage
}
