package domain

import "github.com/google/uuid"

// PresentationState is the per-schedule authoritative record of what the
// displays should be showing. It is ephemeral: created lazily on the first
// presentation command and lost on restart.
//
// SlideIndex is the zero-based chunk index and is only meaningful while
// ActiveEntryID is set. Seq increases by one on every mutation so that a
// future wire format can let clients detect out-of-order delivery.
type PresentationState struct {
	ScheduleID    uuid.UUID
	ActiveEntryID *uuid.UUID
	SlideIndex    int
	ChunkCount    int
	Blacked       bool
	Seq           uint64
}
